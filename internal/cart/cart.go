package cart

import (
	"github.com/shopspring/decimal"

	"github.com/brewlinehq/storefront-backend/internal/catalog"
)

// Line is one cart entry. Name, price and image are snapshotted when the
// line is added and never re-synced with the catalog. Merge identity is
// (product id, color); removal and quantity updates address every line with
// the product id regardless of color, matching the cart screen's id-only key.
type Line struct {
	ProductID int             `json:"product_id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	Color     string          `json:"color,omitempty"`
}

// Cart is the ordered list of lines for one browsing session.
type Cart struct {
	Lines []Line `json:"lines"`
}

// TotalItems sums quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums snapshotted price times quantity across all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (c *Cart) addLine(product catalog.Product, quantity int, color string) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID && c.Lines[i].Color == color {
			c.Lines[i].Quantity += quantity
			return
		}
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	c.Lines = append(c.Lines, Line{
		ProductID: product.ID,
		Slug:      product.Slug,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     image,
		Color:     color,
	})
}

// removeLine drops every line with the given product id, any color.
func (c *Cart) removeLine(productID int) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

func (c *Cart) setQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.removeLine(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
		}
	}
}
