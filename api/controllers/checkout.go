package controllers

import (
	"net/http"

	"github.com/brewlinehq/storefront-backend/api/middleware"
	"github.com/brewlinehq/storefront-backend/api/responses"
	"github.com/brewlinehq/storefront-backend/api/validators"
	checkoutsvc "github.com/brewlinehq/storefront-backend/internal/checkout"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Email         string `json:"email" validate:"required,email,max=254"`
	StreetAddress string `json:"street_address" validate:"required,max=240"`
	UnitNumber    string `json:"unit_number" validate:"omitempty,max=40"`
	PostalCode    string `json:"postal_code" validate:"required,max=16"`
}

// CheckoutCreate snapshots the session's cart into an order draft.
func CheckoutCreate(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.CreateDraft(r.Context(), sessionID, checkoutsvc.CustomerInfo{
			Name:          payload.Name,
			Email:         payload.Email,
			StreetAddress: payload.StreetAddress,
			UnitNumber:    payload.UnitNumber,
			PostalCode:    payload.PostalCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

// CheckoutDraft returns the session's pending order, if any.
func CheckoutDraft(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		draft, err := svc.PendingDraft(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}
