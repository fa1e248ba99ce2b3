package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// ViewsHandler serves the read-only reporting views under /db/views.
type ViewsHandler struct {
	Service *service.ViewService
}

func (h *ViewsHandler) HandleActiveClients(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ActiveClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientesAtivos(list))
}

func (h *ViewsHandler) HandleActiveDemos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ActiveDemos(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDemosAtivas(list))
}

func (h *ViewsHandler) HandleClientStats(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ClientStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientesStats(list))
}

func (h *ViewsHandler) HandleClientStatsByID(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.ClientStatsByID(r.Context(), r.PathValue("cliente_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClienteStats(st))
}
