package orders

import (
	"fmt"
)

// Ledger row layout, one row per (order, line item) pair:
//
//	A order id   B order date   C customer name   D email
//	E street     F unit number  G postal code
//	H item name  I item price   J item quantity   K item color
//	L order total  M status
//
// Order-level columns repeat verbatim on every row of the same order; the
// status column is the only value the formatter computes rather than copies.
const rowWidth = 13

// FormatRows flattens a draft into ledger rows, one per line item. Drafts
// with no lines are rejected; that should have been caught upstream.
func FormatRows(draft *Draft, status string) ([][]any, error) {
	if draft == nil {
		return nil, fmt.Errorf("order draft required")
	}
	if len(draft.Lines) == 0 {
		return nil, fmt.Errorf("order %s has no line items", draft.OrderID)
	}
	if status == "" {
		status = StatusPending
	}

	rows := make([][]any, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		rows = append(rows, []any{
			draft.OrderID,
			draft.OrderDate,
			draft.CustomerName,
			draft.Email,
			draft.StreetAddress,
			draft.UnitNumber,
			draft.PostalCode,
			line.Name,
			line.Price.String(),
			line.Quantity,
			line.Color,
			draft.TotalAmount.String(),
			status,
		})
	}
	return rows, nil
}
