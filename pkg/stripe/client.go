package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/brewlinehq/storefront-backend/pkg/config"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// Client wraps Stripe's API client plus env-specific metadata.
type Client struct {
	api         intentAPI
	environment string
	currency    string
}

type intentAPI interface {
	Create(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error)
	Confirm(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

// NewClient initializes Stripe once with the configured secrets and env.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	api := stripe.NewClient(apiKey)

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		api:         &paymentIntentAPI{api: api},
		environment: env,
		currency:    strings.ToLower(strings.TrimSpace(cfg.Currency)),
	}, nil
}

// Intent is the slice of a PaymentIntent the storefront cares about: the
// identifier, the client-side confirmation token, the terminal status, and
// the order binding carried in metadata so the charge can be checked
// against the draft it was created for.
type Intent struct {
	ID            string `json:"id"`
	ClientSecret  string `json:"client_secret"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	AmountCents   int64  `json:"-"`
}

// IntentParams describes the charge to create: amount in the smallest
// currency unit plus order metadata carried onto the intent.
type IntentParams struct {
	AmountCents   int64
	OrderID       string
	CustomerEmail string
	CustomerName  string
}

// CreateIntent creates a PaymentIntent for the order.
func (c *Client) CreateIntent(ctx context.Context, p IntentParams) (*Intent, error) {
	if c == nil || c.api == nil {
		return nil, errAPIKeyRequired
	}
	if p.AmountCents <= 0 {
		return nil, errors.New("intent amount must be positive")
	}

	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(p.AmountCents),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", p.OrderID)
	params.AddMetadata("customer_email", p.CustomerEmail)
	name := p.CustomerName
	if name == "" {
		name = "Unknown"
	}
	params.AddMetadata("customer_name", name)

	intent, err := c.api.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromPaymentIntent(intent), nil
}

// ConfirmIntent confirms the intent with the supplied payment method and
// reports the terminal status. A non-succeeded status is returned to the
// caller, not treated as a transport error.
func (c *Client) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error) {
	if c == nil || c.api == nil {
		return nil, errAPIKeyRequired
	}
	if strings.TrimSpace(intentID) == "" {
		return nil, errors.New("intent id is required")
	}

	params := &stripe.PaymentIntentConfirmParams{}
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}

	intent, err := c.api.Confirm(ctx, intentID, params)
	if err != nil {
		return nil, err
	}
	return fromPaymentIntent(intent), nil
}

// Succeeded reports whether the intent reached the terminal success status.
func (i *Intent) Succeeded() bool {
	return i != nil && i.Status == string(stripe.PaymentIntentStatusSucceeded)
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// Currency reports the charge currency configured for the storefront.
func (c *Client) Currency() string {
	if c == nil {
		return ""
	}
	return c.currency
}

func fromPaymentIntent(intent *stripe.PaymentIntent) *Intent {
	out := &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		OrderID:      intent.Metadata["order_id"],
		AmountCents:  intent.Amount,
	}
	if intent.LastPaymentError != nil {
		out.FailureReason = intent.LastPaymentError.Msg
	}
	return out
}

type paymentIntentAPI struct {
	api *stripe.Client
}

func (p *paymentIntentAPI) Create(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	return p.api.V1PaymentIntents.Create(ctx, params)
}

func (p *paymentIntentAPI) Confirm(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	return p.api.V1PaymentIntents.Confirm(ctx, id, params)
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
