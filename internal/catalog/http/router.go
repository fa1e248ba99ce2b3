package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ltplabs/ecatalog/api/catalog" // Swagger docs
	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/metricsx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// Router is the public face of the catalog. It forwards /api/... to the
// database service and /api/auth/... to the authentication service.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	db       *dbsdk.Client
	auth     *dbsdk.Client
	verifier jwtx.Verifier
	hasher   *cryptox.Hasher
}

func NewRouter(
	db, auth *dbsdk.Client,
	verifier jwtx.Verifier,
	hasher *cryptox.Hasher,
	logger *slog.Logger,
	buildVersion string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		db:           db,
		auth:         auth,
		verifier:     verifier,
		hasher:       hasher,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metricsx.HTTPMiddleware,
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPedidos()
	r.registerClientes()
	r.registerAdmin()
	r.registerLogs()
	r.registerDemos()
	r.registerImages()
	r.registerViews()
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			LTP Labs e-Catalog API
//	@version		0.1.0
//	@description	Public gateway of the demo catalog. Routes under /api/{pedidos,clientes,admin,logs,demos,docker-images,views}
//	@description	are forwarded to the database service; /api/auth and /api/users to the authentication service.
//
//	@contact.name	LTP Labs
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT issued by POST /api/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// public chains a lenient per-IP limit.
func (r *Router) public(h http.Handler) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(httpx.LenientLimit))
}

// authenticated requires any valid token.
func (r *Router) authenticated(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

// admin requires a token with the admin role.
func (r *Router) admin(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(jwtx.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

// owner requires a valid token whose subject matches the path value
// named param. Admins may access any id.
func (r *Router) owner(param string, h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireOwnerOrRole(param, jwtx.RoleAdmin),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

func (r *Router) dbProxy() *Proxy {
	return &Proxy{Client: r.db, Rewrite: apiToDB}
}

// collection registers both spellings of a collection root.
func (r *Router) collection(method, path string, h http.Handler) {
	r.Mux.Handle(method+" "+path, h)
	r.Mux.Handle(method+" "+path+"/{$}", h)
}

func (r *Router) registerPedidos() {
	proxy := r.dbProxy()
	resolve := &ResolveHandler{DB: r.db}

	r.Mux.Handle("GET /api/pedidos/all", r.admin(proxy))
	r.Mux.Handle("GET /api/pedidos/pending", r.admin(proxy))
	r.Mux.Handle("GET /api/pedidos/approved", r.admin(proxy))
	r.Mux.Handle("GET /api/pedidos/rejected", r.admin(proxy))
	r.Mux.Handle("GET /api/pedidos/by-cliente/{cliente_id}", r.owner("cliente_id", proxy))
	r.Mux.Handle("GET /api/pedidos/{id}", r.authenticated(proxy))
	r.collection("POST", "/api/pedidos", r.authenticated(proxy))
	r.Mux.Handle("POST /api/pedidos/{id}/approve", r.admin(http.HandlerFunc(resolve.HandleApprove)))
	r.Mux.Handle("POST /api/pedidos/{id}/reject", r.admin(http.HandlerFunc(resolve.HandleReject)))
	r.Mux.Handle("DELETE /api/pedidos/{id}", r.admin(proxy))
}

func (r *Router) registerClientes() {
	proxy := r.dbProxy()
	h := &ClientesHandler{DB: r.db, Hasher: r.hasher, Proxy: proxy}

	r.Mux.Handle("GET /api/clientes/all", r.admin(proxy))
	r.Mux.Handle("GET /api/clientes/active", r.admin(proxy))
	r.Mux.Handle("GET /api/clientes/expired", r.admin(proxy))
	r.Mux.Handle("GET /api/clientes/by-email/{email}", r.admin(proxy))
	r.Mux.Handle("GET /api/clientes/{id}", r.owner("id", proxy))
	r.collection("POST", "/api/clientes", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/clientes/{id}", r.admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("POST /api/clientes/{id}/extend", r.admin(proxy))
	r.Mux.Handle("DELETE /api/clientes/{id}", r.admin(proxy))
}

func (r *Router) registerAdmin() {
	proxy := r.dbProxy()

	r.Mux.Handle("GET /api/admin/all", r.admin(proxy))
	r.Mux.Handle("GET /api/admin/by-email/{email}", r.admin(proxy))
	r.Mux.Handle("GET /api/admin/{id}", r.admin(proxy))
}

func (r *Router) registerLogs() {
	proxy := r.dbProxy()

	r.Mux.Handle("GET /api/logs/all", r.admin(proxy))
	r.Mux.Handle("GET /api/logs/by-cliente/{cliente_id}", r.admin(proxy))
	r.Mux.Handle("GET /api/logs/by-demo/{demo_id}", r.admin(proxy))
	r.Mux.Handle("GET /api/logs/by-tipo/{tipo}", r.admin(proxy))
	r.Mux.Handle("GET /api/logs/stats/summary", r.admin(proxy))
	r.Mux.Handle("GET /api/logs/{id}", r.admin(proxy))
	r.collection("POST", "/api/logs", r.authenticated(proxy))
	r.Mux.Handle("DELETE /api/logs/{id}", r.admin(proxy))
}

func (r *Router) registerDemos() {
	proxy := r.dbProxy()

	r.Mux.Handle("GET /api/demos/all", r.public(proxy))
	r.Mux.Handle("GET /api/demos/active", r.public(proxy))
	r.Mux.Handle("GET /api/demos/by-vertical/{vertical}", r.public(proxy))
	r.Mux.Handle("GET /api/demos/by-horizontal/{horizontal}", r.public(proxy))
	r.Mux.Handle("GET /api/demos/{id}", r.public(proxy))
	r.Mux.Handle("POST /api/demos/create", r.admin(proxy))
	r.Mux.Handle("PUT /api/demos/{id}/update", r.admin(proxy))
	r.Mux.Handle("DELETE /api/demos/{id}/delete", r.admin(proxy))
}

func (r *Router) registerImages() {
	proxy := r.dbProxy()

	r.Mux.Handle("GET /api/docker-images/all", r.authenticated(proxy))
	r.Mux.Handle("GET /api/docker-images/by-name/{nome_imagem}", r.authenticated(proxy))
	r.Mux.Handle("GET /api/docker-images/{id}", r.authenticated(proxy))
	r.collection("POST", "/api/docker-images", r.admin(proxy))
	r.Mux.Handle("PUT /api/docker-images/{id}", r.admin(proxy))
	r.Mux.Handle("DELETE /api/docker-images/{id}", r.admin(proxy))
}

func (r *Router) registerViews() {
	proxy := r.dbProxy()

	r.Mux.Handle("GET /api/views/active-clients", r.admin(proxy))
	r.Mux.Handle("GET /api/views/active-demos", r.admin(proxy))
	r.Mux.Handle("GET /api/views/pending-requests", r.admin(proxy))
	r.Mux.Handle("GET /api/views/client-stats", r.admin(proxy))
	r.Mux.Handle("GET /api/views/client-stats/{cliente_id}", r.owner("cliente_id", proxy))
}

// registerAuth forwards to the authentication service unchanged. That
// service applies its own login rate limit.
func (r *Router) registerAuth() {
	proxy := &Proxy{Client: r.auth}

	r.Mux.Handle("POST /api/auth/login", proxy)
	r.Mux.Handle("POST /api/auth/validate", r.public(proxy))
	r.Mux.Handle("POST /api/auth/logout", r.public(proxy))
	r.Mux.Handle("GET /api/users/me", r.public(proxy))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.db))
	r.Mux.Handle("GET /metrics", metricsx.Handler())
}
