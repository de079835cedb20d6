package orders

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate folds raw ledger rows back into orders. Rows sharing an order id
// collapse into a single order with one item per row; order-level fields are
// taken from the first row seen for that id. Rows with a blank id are skipped.
// The result is sorted newest first; rows whose date cannot be parsed sort
// after every parseable one.
func Aggregate(values [][]any) []*Order {
	if len(values) <= 1 {
		return []*Order{}
	}

	byID := make(map[string]*Order)
	ordered := make([]*Order, 0)

	for _, row := range values[1:] {
		id := cellString(row, 0)
		if id == "" {
			continue
		}
		order, ok := byID[id]
		if !ok {
			order = &Order{
				OrderID:       id,
				OrderDate:     cellString(row, 1),
				CustomerName:  cellString(row, 2),
				Email:         cellString(row, 3),
				StreetAddress: cellString(row, 4),
				UnitNumber:    cellString(row, 5),
				PostalCode:    cellString(row, 6),
				TotalAmount:   cellDecimal(row, 11),
				Status:        cellStatus(row, 12),
			}
			byID[id] = order
			ordered = append(ordered, order)
		}
		order.Items = append(order.Items, Item{
			Name:     cellString(row, 7),
			Price:    cellDecimal(row, 8),
			Quantity: cellInt(row, 9),
			Color:    cellString(row, 10),
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		ti, iok := parseOrderDate(ordered[i].OrderDate)
		tj, jok := parseOrderDate(ordered[j].OrderDate)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
	return ordered
}

func parseOrderDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cellString(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprintf("%v", row[idx])
}

func cellStatus(row []any, idx int) string {
	if s := cellString(row, idx); s != "" {
		return s
	}
	return StatusUnknown
}

func cellDecimal(row []any, idx int) decimal.Decimal {
	d, err := decimal.NewFromString(cellString(row, idx))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func cellInt(row []any, idx int) int {
	d := cellDecimal(row, idx)
	return int(d.IntPart())
}
