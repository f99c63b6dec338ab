package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	pkgredis "github.com/wanderstay/wanderstay-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WanderStay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores so load balancers stop routing to an
// instance whose database or cache is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = pingStatus(ctx, logg, "database", dbP.Ping, &healthy)
		if redisP != nil {
			checks["redis"] = pingStatus(ctx, logg, "redis", redisP.Ping, &healthy)
		}

		w.Header().Set("X-WanderStay-Env", cfg.App.Env)
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": readiness(healthy),
			"checks": checks,
		})
	}
}

func pingStatus(ctx context.Context, logg *logger.Logger, name string, ping func(context.Context) error, healthy *bool) string {
	if err := ping(ctx); err != nil {
		*healthy = false
		if logg != nil {
			logg.Error(ctx, "readiness check failed: "+name, err)
		}
		return "down"
	}
	return "ok"
}

func readiness(healthy bool) string {
	if healthy {
		return "ready"
	}
	return "degraded"
}
