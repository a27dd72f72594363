package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/Mostafa3001hamdy/ELEX-Main/api/responses"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
	pkgerrors "github.com/Mostafa3001hamdy/ELEX-Main/pkg/errors"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

const (
	envHeader    = "X-Elex-Env"
	readyTimeout = 2 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured backend. Any failure answers 503 with the failing names.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers map[string]storage.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		names := make([]string, 0, len(pingers))
		for name := range pingers {
			names = append(names, name)
		}
		sort.Strings(names)

		failed := map[string]string{}
		for _, name := range names {
			p := pingers[name]
			if p == nil {
				continue
			}
			if err := p.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "backend not ready").WithDetails(failed))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status":   "ready",
			"backends": names,
			"storage":  cfg.Storage.NormalizedDriver(),
		})
	}
}
