package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry, immutable once parsed. Prices use decimals;
// OldPrice above Price marks a discount.
type Product struct {
	ID          int             `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Price       decimal.Decimal `json:"price"`
	Colors      []string        `json:"colors"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Images      []string        `json:"images"`
}

// Discounted reports whether the list price exceeds the current price.
func (p Product) Discounted() bool {
	return p.OldPrice.GreaterThan(p.Price)
}

// ParseProducts maps raw sheet rows onto products. The first row is the
// header. Malformed cells degrade instead of failing the batch: bad IDs fall
// back to the row position, blank names and descriptions get placeholders,
// unparseable prices become zero and blank color lists collapse to Default.
func ParseProducts(values [][]any) []Product {
	if len(values) < 2 {
		return nil
	}

	rows := values[1:]
	products := make([]Product, 0, len(rows))
	for i, row := range rows {
		products = append(products, parseProductRow(row, i))
	}
	return products
}

func parseProductRow(row []any, index int) Product {
	id, err := strconv.Atoi(cell(row, 0))
	if err != nil || id == 0 {
		id = index + 1
	}

	slug := cell(row, 1)
	if slug == "" {
		slug = fmt.Sprintf("product-%d", index+1)
	}

	name := cell(row, 2)
	if name == "" {
		name = "Unnamed Product"
	}

	description := cell(row, 6)
	if description == "" {
		description = "No description available"
	}

	colors := splitList(cell(row, 5))
	if len(colors) == 0 {
		colors = []string{"Default"}
	}

	return Product{
		ID:          id,
		Slug:        slug,
		Name:        name,
		OldPrice:    parseDecimal(cell(row, 3)),
		Price:       parseDecimal(cell(row, 4)),
		Colors:      colors,
		Description: description,
		Features:    splitList(cell(row, 7)),
		Images:      splitList(cell(row, 8)),
	}
}

func cell(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func parseDecimal(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
