package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewlinehq/storefront-backend/api/responses"
	"github.com/brewlinehq/storefront-backend/api/validators"
	"github.com/brewlinehq/storefront-backend/internal/catalog"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

const maxQueryLen = 120

// ProductsList serves the catalog as an explicit load state: loaded, empty,
// or error. A failed sheet fetch is reported inside the state payload so the
// storefront can render its error view instead of a blank page; the failure
// itself still lands in the log.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := validators.QueryString(r, "q", maxQueryLen)
		category := validators.QueryString(r, "category", maxQueryLen)
		discounted := validators.QueryString(r, "discounted", 8) == "true"

		var (
			products []catalog.Product
			err      error
		)
		switch {
		case query != "":
			products, err = svc.Search(r.Context(), query)
		case category != "":
			products, err = svc.ByCategory(r.Context(), category)
		case discounted:
			products, err = svc.DiscountedOnly(r.Context())
		default:
			products, err = svc.List(r.Context())
		}

		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "catalog fetch failed", err)
			}
			responses.WriteSuccess(w, catalog.Errored("Unable to load products right now. Please try again later."))
			return
		}
		responses.WriteSuccess(w, catalog.Loaded(products))
	}
}

// ProductDetail serves a single product by its URL slug.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), maxQueryLen)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug required"))
			return
		}

		product, err := svc.FindBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
