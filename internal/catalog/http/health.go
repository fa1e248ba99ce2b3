package http

import (
	"net/http"
	"time"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dbsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, dbsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Ready when the database service answers its own readiness probe.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dbsdk.HealthResponse
//	@Failure		503	{object}	dbsdk.HealthResponse
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db *dbsdk.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dbsdk.HealthChecks{Upstream: "ok"}
		status, code := "ok", http.StatusOK

		if _, err := db.Readyz(r.Context()); err != nil {
			checks.Upstream = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, dbsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
