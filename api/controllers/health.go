package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/brewlinehq/storefront-backend/api/responses"
	"github.com/brewlinehq/storefront-backend/pkg/config"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

const envHeader = "X-Brewline-Env"

const readinessTimeout = 5 * time.Second

// Pinger is the health-check surface a backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency and reports the first failure
// set. A nil pinger is skipped so the endpoint degrades with partial wiring
// in development.
func HealthReady(cfg *config.Config, logg *logger.Logger, store, ledger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var errs error
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("redis: %w", err))
			}
		}
		if ledger != nil {
			if err := ledger.Ping(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("sheets: %w", err))
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
