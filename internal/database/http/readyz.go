package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// migrationVersioner is implemented by drivers that track schema versions.
type migrationVersioner interface {
	MigrationVersion() (uint, bool, error)
}

// ReadyzHandler reports 503 when the database is unreachable or the schema
// was left dirty by a failed migration.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dbsdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if mv, ok := st.(migrationVersioner); ok {
			v, dirty, err := mv.MigrationVersion()
			switch {
			case err != nil:
				checks.Migrations = "error: " + err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
			case dirty:
				checks.Migrations = fmt.Sprintf("dirty at version %d", v)
				status, code = "degraded", http.StatusServiceUnavailable
			default:
				checks.Migrations = fmt.Sprintf("version %d", v)
			}
		}

		httpx.WriteJSON(w, code, dbsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
