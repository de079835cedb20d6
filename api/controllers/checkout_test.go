package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/stripe"
)

const checkoutBody = `{
	"name": "Alex Tan",
	"email": "alex@example.com",
	"street_address": "12 Clementi Ave",
	"unit_number": "#05-11",
	"postal_code": "120012"
}`

func TestCheckoutCreate(t *testing.T) {
	svc := &stubCheckout{draft: &ordersvc.Draft{OrderID: "ORD-1"}}
	handler := CheckoutCreate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", checkoutBody))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInfo.Email != "alex@example.com" {
		t.Fatalf("customer info not passed through: %+v", svc.lastInfo)
	}

	var envelope struct {
		Data ordersvc.Draft `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != "ORD-1" {
		t.Fatalf("unexpected draft %v", envelope.Data)
	}
}

func TestCheckoutCreateRejectsInvalidEmail(t *testing.T) {
	handler := CheckoutCreate(&stubCheckout{}, nil)

	body := `{"name":"A","email":"nope","street_address":"B","postal_code":"1"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutCreateEmptyCart(t *testing.T) {
	svc := &stubCheckout{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CheckoutCreate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", checkoutBody))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutDraft(t *testing.T) {
	handler := CheckoutDraft(&stubCheckout{draft: &ordersvc.Draft{OrderID: "ORD-1"}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/checkout/draft", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCheckoutDraftMissing(t *testing.T) {
	handler := CheckoutDraft(&stubCheckout{err: pkgerrors.New(pkgerrors.CodeNotFound, "no pending order")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/checkout/draft", ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestPaymentIntentCreate(t *testing.T) {
	svc := &stubCheckout{intent: &stripe.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	handler := PaymentIntentCreate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/payment/intent", ""))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data stripe.Intent `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ClientSecret != "pi_123_secret" {
		t.Fatalf("unexpected intent %v", envelope.Data)
	}
}

func TestPaymentConfirm(t *testing.T) {
	svc := &stubCheckout{order: &ordersvc.Order{OrderID: "ORD-1", Status: ordersvc.StatusPaid}}
	handler := PaymentConfirm(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/payment/confirm", `{"intent_id":"pi_123","payment_method_id":"pm_card"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data ordersvc.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != ordersvc.StatusPaid {
		t.Fatalf("unexpected order %v", envelope.Data)
	}
}

func TestPaymentConfirmRequiresIntentID(t *testing.T) {
	handler := PaymentConfirm(&stubCheckout{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/payment/confirm", `{}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPaymentConfirmDeclined(t *testing.T) {
	svc := &stubCheckout{err: pkgerrors.New(pkgerrors.CodeDependency, "payment was not completed")}
	handler := PaymentConfirm(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/payment/confirm", `{"intent_id":"pi_123"}`))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
