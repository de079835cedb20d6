package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewlinehq/storefront-backend/api/responses"
	"github.com/brewlinehq/storefront-backend/api/validators"
	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

// OrdersList returns recorded orders, newest first. An optional ?limit=
// caps the page; 0 means everything.
func OrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.FetchAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(orders) > limit {
			orders = orders[:limit]
		}
		responses.WriteSuccess(w, orders)
	}
}

func OrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := validators.SanitizeString(chi.URLParam(r, "orderId"), 64)
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id required"))
			return
		}

		order, err := svc.FindByID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
