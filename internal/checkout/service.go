package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewlinehq/storefront-backend/internal/cart"
	"github.com/brewlinehq/storefront-backend/internal/orders"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
	"github.com/brewlinehq/storefront-backend/pkg/stripe"
)

// Placeholder written into the ledger when the customer leaves an optional
// field blank, so every column stays populated.
const fieldPlaceholder = "N/A"

const orderDateLayout = "2006-01-02 15:04:05"

type paymentProcessor interface {
	CreateIntent(ctx context.Context, p stripe.IntentParams) (*stripe.Intent, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*stripe.Intent, error)
}

// CustomerInfo is the shipping and contact detail collected at checkout.
type CustomerInfo struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	StreetAddress string `json:"street_address" validate:"required"`
	UnitNumber    string `json:"unit_number"`
	PostalCode    string `json:"postal_code" validate:"required"`
}

// Service orchestrates the checkout flow: snapshot the cart into an order
// draft, raise a payment intent for it, and on successful payment record the
// order and drop the session state.
type Service interface {
	CreateDraft(ctx context.Context, sessionID string, info CustomerInfo) (*orders.Draft, error)
	PendingDraft(ctx context.Context, sessionID string) (*orders.Draft, error)
	CreateIntent(ctx context.Context, sessionID string) (*stripe.Intent, error)
	CompletePayment(ctx context.Context, sessionID, intentID, paymentMethodID string) (*orders.Order, error)
}

type service struct {
	carts    cart.Service
	drafts   orders.DraftRepo
	orders   orders.Service
	payments paymentProcessor
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the checkout orchestrator.
func NewService(carts cart.Service, drafts orders.DraftRepo, orderSvc orders.Service, payments paymentProcessor, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft repository required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment processor required")
	}
	return &service{
		carts:    carts,
		drafts:   drafts,
		orders:   orderSvc,
		payments: payments,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) CreateDraft(ctx context.Context, sessionID string, info CustomerInfo) (*orders.Draft, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := validateCustomer(info); err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(current.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	now := s.now()
	draft := &orders.Draft{
		OrderID:       orders.NewOrderID(now),
		OrderDate:     now.Format(orderDateLayout),
		CustomerName:  strings.TrimSpace(info.Name),
		Email:         strings.TrimSpace(info.Email),
		StreetAddress: strings.TrimSpace(info.StreetAddress),
		UnitNumber:    orBlank(info.UnitNumber),
		PostalCode:    strings.TrimSpace(info.PostalCode),
		TotalAmount:   current.TotalPrice(),
	}
	for _, line := range current.Lines {
		draft.Lines = append(draft.Lines, orders.LineSnapshot{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Color:    orBlank(line.Color),
		})
	}

	if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, draft.OrderID), "order draft created")
	}
	return draft, nil
}

func (s *service) PendingDraft(ctx context.Context, sessionID string) (*orders.Draft, error) {
	return s.drafts.Load(ctx, sessionID)
}

func (s *service) CreateIntent(ctx context.Context, sessionID string) (*stripe.Intent, error) {
	draft, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.CreateIntent(ctx, stripe.IntentParams{
		AmountCents:   toCents(draft.TotalAmount),
		OrderID:       draft.OrderID,
		CustomerEmail: draft.Email,
		CustomerName:  draft.CustomerName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create payment intent").
			WithDetails(map[string]any{"order_id": draft.OrderID})
	}
	return intent, nil
}

func (s *service) CompletePayment(ctx context.Context, sessionID, intentID, paymentMethodID string) (*orders.Order, error) {
	draft, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.ConfirmIntent(ctx, intentID, paymentMethodID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to confirm payment").
			WithDetails(map[string]any{"order_id": draft.OrderID})
	}
	if !intent.Succeeded() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment was not completed").
			WithDetails(map[string]any{
				"order_id": draft.OrderID,
				"status":   intent.Status,
				"reason":   intent.FailureReason,
			})
	}

	// The confirmed intent must be the one raised for this draft. Order id
	// and amount are checked only when the processor echoes them back.
	if intent.OrderID != "" && intent.OrderID != draft.OrderID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment does not match pending order")
	}
	if intent.AmountCents > 0 && intent.AmountCents != toCents(draft.TotalAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment amount does not match pending order")
	}

	if err := s.orders.Submit(ctx, draft, orders.StatusPaid); err != nil {
		return nil, err
	}

	// Session cleanup after the order is durably recorded. Failures here
	// leave stale keys behind for the TTL to reap, not a lost order.
	if err := s.carts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, draft.OrderID), "failed to clear cart after payment")
	}
	if err := s.drafts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, draft.OrderID), "failed to clear draft after payment")
	}

	order := &orders.Order{
		OrderID:       draft.OrderID,
		OrderDate:     draft.OrderDate,
		CustomerName:  draft.CustomerName,
		Email:         draft.Email,
		StreetAddress: draft.StreetAddress,
		UnitNumber:    draft.UnitNumber,
		PostalCode:    draft.PostalCode,
		TotalAmount:   draft.TotalAmount,
		Status:        orders.StatusPaid,
	}
	for _, line := range draft.Lines {
		order.Items = append(order.Items, orders.Item(line))
	}
	return order, nil
}

func validateCustomer(info CustomerInfo) error {
	missing := []string{}
	if strings.TrimSpace(info.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(info.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(info.StreetAddress) == "" {
		missing = append(missing, "street_address")
	}
	if strings.TrimSpace(info.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing customer details").
			WithDetails(map[string]any{"fields": missing})
	}
	if !strings.Contains(info.Email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	return nil
}

func orBlank(value string) string {
	if strings.TrimSpace(value) == "" {
		return fieldPlaceholder
	}
	return value
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
