package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/invisimart/storefront-web/api/responses"
	"github.com/invisimart/storefront-web/pkg/config"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Invisimart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the dependencies this tier needs to serve traffic:
// the upstream API, and Redis when a cart or idempotency backend uses it.
// Nil pingers are skipped so the handler works in every configuration.
func HealthReady(cfg *config.Config, logg *logger.Logger, upstream pinger, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Invisimart-Env", cfg.App.Env)

		var err error
		if upstream != nil {
			if pingErr := upstream.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if redis != nil {
			if pingErr := redis.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
