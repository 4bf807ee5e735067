package controllers

import (
	"net/http"

	"github.com/pitlanehq/garage-backend/api/responses"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/pitlanehq/garage-backend/pkg/redis"
	"github.com/pitlanehq/garage-backend/pkg/types"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Garage-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.HealthReport{Status: "live"})
	}
}

// HealthReady reports degraded dependencies with a 503 so load balancers can
// pull the instance.
func HealthReady(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Garage-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if dbClient == nil {
			checks["db"] = "unavailable"
			healthy = false
		} else if err := dbClient.Ping(ctx); err != nil {
			checks["db"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.db", err)
			}
		}

		if redisClient == nil {
			checks["redis"] = "unavailable"
			healthy = false
		} else if err := redisClient.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(ctx, "health.redis", err)
			}
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !healthy {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, httpStatus, types.HealthReport{
			Status: status,
			Checks: checks,
		})
	}
}
