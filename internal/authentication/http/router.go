package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ltplabs/ecatalog/internal/authentication/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/metricsx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// Router holds shared dependencies for the authentication handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	db           *dbsdk.Client
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService *service.AuthService
}

// NewRouter builds the router. db is only used by /readyz and may be nil.
func NewRouter(
	svc *service.AuthService,
	verifier jwtx.Verifier,
	db *dbsdk.Client,
	logger *slog.Logger,
	buildVersion string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		db:           db,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		AuthService:  svc,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metricsx.HTTPMiddleware,
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	h := &AuthHandler{AuthService: r.AuthService, Verifier: r.verifier}

	// Credential guessing is limited per IP and per target email.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/users/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /livez", r.livez())
	r.Mux.Handle("GET /readyz", r.readyz())
	r.Mux.Handle("GET /metrics", metricsx.Handler())
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) livez() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, dbsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(r.startTime).String(),
			Version: r.buildVersion,
		})
	}
}

func (r *Router) readyz() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		resp := dbsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(r.startTime).String(),
			Version: r.buildVersion,
			Checks:  &dbsdk.HealthChecks{Upstream: "ok"},
		}
		if r.db != nil {
			if _, err := r.db.Readyz(req.Context()); err != nil {
				slogx.FromContext(req.Context()).Warn("database service not ready", "error", err)
				resp.Status = "unavailable"
				resp.Checks.Upstream = err.Error()
				httpx.WriteJSON(w, http.StatusServiceUnavailable, resp)
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
