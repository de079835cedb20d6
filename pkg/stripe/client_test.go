package stripe

import (
	"context"
	"testing"

	"github.com/stripe/stripe-go/v84"

	"github.com/brewlinehq/storefront-backend/pkg/config"
)

func TestNewClientValidatesKeyAgainstEnv(t *testing.T) {
	ctx := context.Background()

	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_live_abc", Env: "test"}, nil); err == nil {
		t.Fatal("live key should be rejected in test env")
	}
	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "", Env: "test"}, nil); err == nil {
		t.Fatal("missing key should be rejected")
	}
	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "weird"}, nil); err == nil {
		t.Fatal("unknown env should be rejected")
	}

	client, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "test", Currency: "SGD"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("unexpected environment %q", client.Environment())
	}
	if client.Currency() != "sgd" {
		t.Fatalf("currency should be lowercased, got %q", client.Currency())
	}
}

func TestCreateIntentCarriesOrderMetadata(t *testing.T) {
	fake := &fakeIntentAPI{
		intent: &stripe.PaymentIntent{
			ID:           "pi_123",
			ClientSecret: "pi_123_secret",
			Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		},
	}
	client := &Client{api: fake, environment: "test", currency: "sgd"}

	intent, err := client.CreateIntent(context.Background(), IntentParams{
		AmountCents:   4999,
		OrderID:       "ORD-1",
		CustomerEmail: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ID != "pi_123" || intent.ClientSecret != "pi_123_secret" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if got := *fake.createParams.Amount; got != 4999 {
		t.Fatalf("unexpected amount %d", got)
	}
	if got := fake.createParams.Metadata["order_id"]; got != "ORD-1" {
		t.Fatalf("order id metadata missing, got %q", got)
	}
	if got := fake.createParams.Metadata["customer_name"]; got != "Unknown" {
		t.Fatalf("blank customer name should default to Unknown, got %q", got)
	}
}

func TestConfirmIntentEchoesOrderBinding(t *testing.T) {
	fake := &fakeIntentAPI{
		intent: &stripe.PaymentIntent{
			ID:       "pi_123",
			Status:   stripe.PaymentIntentStatusSucceeded,
			Amount:   4999,
			Metadata: map[string]string{"order_id": "ORD-1"},
		},
	}
	client := &Client{api: fake, currency: "sgd"}

	intent, err := client.ConfirmIntent(context.Background(), "pi_123", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.OrderID != "ORD-1" {
		t.Fatalf("order id should be carried from metadata, got %q", intent.OrderID)
	}
	if intent.AmountCents != 4999 {
		t.Fatalf("amount should be carried, got %d", intent.AmountCents)
	}
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	client := &Client{api: &fakeIntentAPI{}, currency: "sgd"}
	if _, err := client.CreateIntent(context.Background(), IntentParams{AmountCents: 0}); err == nil {
		t.Fatal("zero amount should be rejected")
	}
}

func TestConfirmIntentReportsTerminalStatus(t *testing.T) {
	fake := &fakeIntentAPI{
		intent: &stripe.PaymentIntent{
			ID:     "pi_123",
			Status: stripe.PaymentIntentStatusSucceeded,
		},
	}
	client := &Client{api: fake, currency: "sgd"}

	intent, err := client.ConfirmIntent(context.Background(), "pi_123", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !intent.Succeeded() {
		t.Fatalf("expected succeeded status, got %q", intent.Status)
	}

	fake.intent.Status = stripe.PaymentIntentStatusRequiresPaymentMethod
	fake.intent.LastPaymentError = &stripe.Error{Msg: "card declined"}
	intent, err = client.ConfirmIntent(context.Background(), "pi_123", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Succeeded() {
		t.Fatal("declined intent should not report success")
	}
	if intent.FailureReason != "card declined" {
		t.Fatalf("expected failure reason, got %q", intent.FailureReason)
	}
}

type fakeIntentAPI struct {
	intent        *stripe.PaymentIntent
	createParams  *stripe.PaymentIntentCreateParams
	confirmParams *stripe.PaymentIntentConfirmParams
}

func (f *fakeIntentAPI) Create(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	f.createParams = params
	return f.intent, nil
}

func (f *fakeIntentAPI) Confirm(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	f.confirmParams = params
	return f.intent, nil
}
