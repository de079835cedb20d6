package orders

import (
	"context"
	"fmt"

	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

// Ledger is the append-only sheet the storefront records orders in.
type Ledger interface {
	AppendRows(ctx context.Context, readRange string, rows [][]any) error
	ReadRows(ctx context.Context, readRange string) ([][]any, error)
}

// Service persists finalized orders to the ledger and reads them back for the
// account pages. Submission appends one row per line item; reads aggregate the
// rows into orders again.
type Service interface {
	Submit(ctx context.Context, draft *Draft, status string) error
	FetchAll(ctx context.Context) ([]*Order, error)
	FindByID(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	ledger    Ledger
	readRange string
	logg      *logger.Logger
}

// NewService builds the order service over the ledger.
func NewService(ledger Ledger, readRange string, logg *logger.Logger) (Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("order ledger required")
	}
	if readRange == "" {
		return nil, fmt.Errorf("orders range required")
	}
	return &service{ledger: ledger, readRange: readRange, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, draft *Draft, status string) error {
	rows, err := FormatRows(draft, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order draft")
	}
	if err := s.ledger.AppendRows(ctx, s.readRange, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to record order").
			WithDetails(map[string]any{"order_id": draft.OrderID})
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, draft.OrderID), "order recorded")
	}
	return nil
}

func (s *service) FetchAll(ctx context.Context) ([]*Order, error) {
	values, err := s.ledger.ReadRows(ctx, s.readRange)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to fetch orders").
			WithDetails(map[string]any{"upstream": err.Error()})
	}
	return Aggregate(values), nil
}

func (s *service) FindByID(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range all {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}
