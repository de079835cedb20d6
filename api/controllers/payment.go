package controllers

import (
	"net/http"

	"github.com/brewlinehq/storefront-backend/api/middleware"
	"github.com/brewlinehq/storefront-backend/api/responses"
	"github.com/brewlinehq/storefront-backend/api/validators"
	checkoutsvc "github.com/brewlinehq/storefront-backend/internal/checkout"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

type confirmPaymentRequest struct {
	IntentID        string `json:"intent_id" validate:"required,max=255"`
	PaymentMethodID string `json:"payment_method_id" validate:"omitempty,max=255"`
}

// PaymentIntentCreate raises a payment intent for the session's pending
// order and hands the client secret back to the browser.
func PaymentIntentCreate(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		intent, err := svc.CreateIntent(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, intent)
	}
}

// PaymentConfirm finalizes payment for the pending order. On success the
// order is recorded and the session's cart and draft are dropped.
func PaymentConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CompletePayment(r.Context(), sessionID, payload.IntentID, payload.PaymentMethodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
