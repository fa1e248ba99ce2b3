package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// PedidosHandler serves /db/pedidos.
type PedidosHandler struct {
	Service *service.RequestService
}

func (h *PedidosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedidos(list))
}

// HandleListByStatus returns a handler for one of the status filters.
func (h *PedidosHandler) HandleListByStatus(status domain.RequestStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.Service.ListByStatus(r.Context(), status)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPedidos(list))
	}
}

func (h *PedidosHandler) HandleListByCliente(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListByClient(r.Context(), r.PathValue("cliente_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedidos(list))
}

func (h *PedidosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedido(p))
}

func (h *PedidosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreatePedidoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.ClienteID == "" {
		writeBadRequest(w, "cliente_id is required")
		return
	}

	p, err := h.Service.Create(r.Context(), req.ClienteID, domain.RequestKind(req.TipoPedido))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPedido(p))
}

// HandleApprove approves a pending request. Renewals extend the client's
// access by 30 days unless nova_data_expiracao is given.
func (h *PedidosHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeResolve(w, r)
	if !ok {
		return
	}

	expiresAt, err := parseOptionalTime("nova_data_expiracao", req.NovaDataExpiracao)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	p, err := h.Service.Approve(r.Context(), r.PathValue("id"), req.AdminID, expiresAt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedido(p))
}

func (h *PedidosHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeResolve(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Reject(r.Context(), r.PathValue("id"), req.AdminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedido(p))
}

func (h *PedidosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePendingView serves the pending queue joined with client details.
func (h *PedidosHandler) HandlePendingView(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Pending(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPedidosPendentes(list))
}

func decodeResolve(w http.ResponseWriter, r *http.Request) (dbsdk.ResolvePedidoRequest, bool) {
	var req dbsdk.ResolvePedidoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return req, false
	}
	if req.AdminID == "" {
		writeBadRequest(w, "admin_id is required")
		return req, false
	}
	return req, true
}
