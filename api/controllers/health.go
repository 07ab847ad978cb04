package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/universe-backend/api/responses"
	"github.com/angelmondragon/universe-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
)

const (
	envHeader = "X-UniVerse-Env"

	checkOK       = "ok"
	checkFailed   = "failed"
	checkDisabled = "disabled"
)

// Pinger is implemented by the document store and the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the configured dependencies. A nil pinger is reported as
// disabled and does not fail readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx := r.Context()
		checks := map[string]string{
			"store": ping(ctx, store),
			"redis": ping(ctx, redis),
		}
		for name, state := range checks {
			if state == checkFailed {
				err := pkgerrors.New(pkgerrors.CodeDependency, name+" unavailable").WithDetails(checks)
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return checkDisabled
	}
	if err := p.Ping(ctx); err != nil {
		return checkFailed
	}
	return checkOK
}
