package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (gorm DB, RedisClient, EventBus, S3Store and TemporalClient all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the dependencies checked by the health endpoint.
// Database is mandatory; a nil optional checker is reported as "disabled".
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Storage  HealthChecker
	Temporal HealthChecker
}

const (
	componentOK          = "ok"
	componentUnreachable = "unreachable"
	componentDisabled    = "disabled"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
	Storage  string `json:"storage"`
	Temporal string `json:"temporal"`
}

// HealthHandler returns an http.HandlerFunc that checks every configured
// HealthChecker and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: componentOK}
		checkStatus := func(c HealthChecker) string {
			if c == nil {
				return componentDisabled
			}
			if err := c.Ping(ctx); err != nil {
				resp.Status = "degraded"
				return componentUnreachable
			}
			return componentOK
		}

		resp.Database = checkStatus(checks.Database)
		if resp.Database == componentDisabled {
			resp.Status = "degraded"
			resp.Database = componentUnreachable
		}
		resp.Redis = checkStatus(checks.Redis)
		resp.EventBus = checkStatus(checks.EventBus)
		resp.Storage = checkStatus(checks.Storage)
		resp.Temporal = checkStatus(checks.Temporal)

		status := http.StatusOK
		if resp.Status != componentOK {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
