package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/metricsx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// Router holds shared dependencies for the database service handlers.
//
// The service sits on the internal network behind the catalog gateway and
// the authentication service, so routes carry no authentication of their own.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	RequestService *service.RequestService
	ClientService  *service.ClientService
	AdminService   *service.AdminService
	LogService     *service.LogService
	DemoService    *service.DemoService
	ImageService   *service.ImageService
	ViewService    *service.ViewService
}

func NewRouter(st store.Store, logger *slog.Logger, buildVersion string) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,

		RequestService: &service.RequestService{Store: st},
		ClientService:  &service.ClientService{Store: st},
		AdminService:   &service.AdminService{Store: st},
		LogService:     &service.LogService{Store: st},
		DemoService:    &service.DemoService{Store: st},
		ImageService:   &service.ImageService{Store: st},
		ViewService:    &service.ViewService{Store: st},
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
	r.registerSystem()
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handleCollection registers pattern both with and without the trailing
// slash, since callers use both spellings for collection roots.
func (r *Router) handleCollection(method, path string, h http.HandlerFunc) {
	r.Mux.HandleFunc(method+" "+path, h)
	r.Mux.HandleFunc(method+" "+path+"/{$}", h)
}

func (r *Router) registerPedidos() {
	h := &PedidosHandler{Service: r.RequestService}

	r.Mux.HandleFunc("GET /db/pedidos/all", h.HandleList)
	r.Mux.HandleFunc("GET /db/pedidos/pending", h.HandleListByStatus(domain.RequestPending))
	r.Mux.HandleFunc("GET /db/pedidos/approved", h.HandleListByStatus(domain.RequestApproved))
	r.Mux.HandleFunc("GET /db/pedidos/rejected", h.HandleListByStatus(domain.RequestRejected))
	r.Mux.HandleFunc("GET /db/pedidos/by-cliente/{cliente_id}", h.HandleListByCliente)
	r.Mux.HandleFunc("GET /db/pedidos/{id}", h.HandleGet)
	r.handleCollection("POST", "/db/pedidos", h.HandleCreate)
	r.Mux.HandleFunc("POST /db/pedidos/{id}/approve", h.HandleApprove)
	r.Mux.HandleFunc("POST /db/pedidos/{id}/reject", h.HandleReject)
	r.Mux.HandleFunc("DELETE /db/pedidos/{id}", h.HandleDelete)
}

func (r *Router) registerClientes() {
	h := &ClientesHandler{Service: r.ClientService}

	r.Mux.HandleFunc("GET /db/clientes/all", h.HandleList())
	r.Mux.HandleFunc("GET /db/clientes/active", h.HandleListActive())
	r.Mux.HandleFunc("GET /db/clientes/expired", h.HandleListExpired())
	r.Mux.HandleFunc("GET /db/clientes/by-email/{email}", h.HandleGetByEmail)
	r.Mux.HandleFunc("GET /db/clientes/by-email-with-password/{email}", h.HandleGetWithPassword)
	r.Mux.HandleFunc("GET /db/clientes/{id}", h.HandleGet)
	r.handleCollection("POST", "/db/clientes", h.HandleCreate)
	r.Mux.HandleFunc("PUT /db/clientes/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("POST /db/clientes/{id}/extend", h.HandleExtend)
	r.Mux.HandleFunc("DELETE /db/clientes/{id}", h.HandleDelete)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Service: r.AdminService}

	r.Mux.HandleFunc("GET /db/admin/all", h.HandleList)
	r.Mux.HandleFunc("GET /db/admin/by-email/{email}", h.HandleGetByEmail)
	r.Mux.HandleFunc("GET /db/admin/by-email-with-password/{email}", h.HandleGetWithPassword)
	r.Mux.HandleFunc("GET /db/admin/{id}", h.HandleGet)
	r.handleCollection("POST", "/db/admin", h.HandleCreate)
}

func (r *Router) registerLogs() {
	h := &LogsHandler{Service: r.LogService}

	r.Mux.HandleFunc("GET /db/logs/all", h.HandleList())
	r.Mux.HandleFunc("GET /db/logs/by-cliente/{cliente_id}", h.HandleListByCliente())
	r.Mux.HandleFunc("GET /db/logs/by-demo/{demo_id}", h.HandleListByDemo())
	r.Mux.HandleFunc("GET /db/logs/by-tipo/{tipo}", h.HandleListByTipo())
	r.Mux.HandleFunc("GET /db/logs/stats/summary", h.HandleStats)
	r.Mux.HandleFunc("GET /db/logs/{id}", h.HandleGet)
	r.handleCollection("POST", "/db/logs", h.HandleCreate)
	r.Mux.HandleFunc("DELETE /db/logs/{id}", h.HandleDelete)
}

func (r *Router) registerDemos() {
	h := &DemosHandler{Service: r.DemoService}

	r.Mux.HandleFunc("GET /db/demos/all", h.HandleList())
	r.Mux.HandleFunc("GET /db/demos/active", h.HandleListActive())
	r.Mux.HandleFunc("GET /db/demos/by-vertical/{vertical}", h.HandleListByVertical())
	r.Mux.HandleFunc("GET /db/demos/by-horizontal/{horizontal}", h.HandleListByHorizontal())
	r.Mux.HandleFunc("GET /db/demos/{id}", h.HandleGet)
	r.Mux.HandleFunc("POST /db/demos/create", h.HandleCreate)
	r.Mux.HandleFunc("PUT /db/demos/{id}/update", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /db/demos/{id}/delete", h.HandleDelete)
}

func (r *Router) registerImages() {
	h := &ImagesHandler{Service: r.ImageService}

	r.Mux.HandleFunc("GET /db/docker-images/all", h.HandleList)
	r.Mux.HandleFunc("GET /db/docker-images/by-name/{nome_imagem}", h.HandleListByName)
	r.Mux.HandleFunc("GET /db/docker-images/{id}", h.HandleGet)
	r.handleCollection("POST", "/db/docker-images", h.HandleCreate)
	r.Mux.HandleFunc("PUT /db/docker-images/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /db/docker-images/{id}", h.HandleDelete)
}

func (r *Router) registerViews() {
	h := &ViewsHandler{Service: r.ViewService}
	pedidos := &PedidosHandler{Service: r.RequestService}

	r.Mux.HandleFunc("GET /db/views/active-clients", h.HandleActiveClients)
	r.Mux.HandleFunc("GET /db/views/active-demos", h.HandleActiveDemos)
	r.Mux.HandleFunc("GET /db/views/pending-requests", pedidos.HandlePendingView)
	r.Mux.HandleFunc("GET /db/views/client-stats", h.HandleClientStats)
	r.Mux.HandleFunc("GET /db/views/client-stats/{cliente_id}", h.HandleClientStatsByID)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", metricsx.Handler())
}
