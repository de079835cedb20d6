package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values written to and read from the ledger.
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusUnknown = "Unknown"
)

// LineSnapshot freezes one cart line at draft time: name, unit price,
// quantity and color, never re-synced afterwards.
type LineSnapshot struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Color    string          `json:"color"`
}

// Draft is the client-held order between checkout submission and payment
// confirmation. The total is computed once at draft time and duplicated onto
// every persisted row; read-back never re-derives it.
type Draft struct {
	OrderID       string          `json:"order_id"`
	OrderDate     string          `json:"order_date"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	StreetAddress string          `json:"street_address"`
	UnitNumber    string          `json:"unit_number"`
	PostalCode    string          `json:"postal_code"`
	Lines         []LineSnapshot  `json:"lines"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Item is one line of an aggregated order as read back from the ledger.
type Item struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Color    string          `json:"color"`
}

// Order is the nested shape reconstructed from flat ledger rows.
type Order struct {
	OrderID       string          `json:"order_id"`
	OrderDate     string          `json:"order_date"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	StreetAddress string          `json:"street_address"`
	UnitNumber    string          `json:"unit_number"`
	PostalCode    string          `json:"postal_code"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
}

// NewOrderID generates a globally unique order identifier: millisecond
// timestamp plus a short random suffix, uppercased.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
