package http

import (
	"net/http"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// ClientesHandler serves /db/clientes.
type ClientesHandler struct {
	Service *service.ClientService
}

func (h *ClientesHandler) list(fn func(*service.ClientService, *http.Request) ([]domain.Client, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := fn(h.Service, r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClientes(list))
	}
}

func (h *ClientesHandler) HandleList() http.HandlerFunc {
	return h.list(func(s *service.ClientService, r *http.Request) ([]domain.Client, error) {
		return s.List(r.Context())
	})
}

func (h *ClientesHandler) HandleListActive() http.HandlerFunc {
	return h.list(func(s *service.ClientService, r *http.Request) ([]domain.Client, error) {
		return s.ListActive(r.Context())
	})
}

func (h *ClientesHandler) HandleListExpired() http.HandlerFunc {
	return h.list(func(s *service.ClientService, r *http.Request) ([]domain.Client, error) {
		return s.ListExpired(r.Context())
	})
}

func (h *ClientesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCliente(c))
}

func (h *ClientesHandler) HandleGetByEmail(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCliente(c))
}

// HandleGetWithPassword includes password_hash. Only the authentication
// service should call it.
func (h *ClientesHandler) HandleGetWithPassword(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dbsdk.ClienteWithPassword{Cliente: toCliente(c), PasswordHash: c.PasswordHash})
}

func (h *ClientesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreateClienteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	in := service.NewClient{
		Name:         req.Nome,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		CreatedBy:    req.CriadoPor,
	}
	if req.DataRegisto != "" {
		t, err := dbsdk.ParseTime(req.DataRegisto)
		if err != nil {
			writeBadRequest(w, "data_registo is not a valid date")
			return
		}
		in.RegisteredAt = t
	}
	t, err := dbsdk.ParseTime(req.DataExpiracao)
	if err != nil {
		writeBadRequest(w, "data_expiracao is required and must be a date")
		return
	}
	in.ExpiresAt = t

	c, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCliente(c))
}

func (h *ClientesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.UpdateClienteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	expiresAt, err := parseOptionalTime("data_expiracao", req.DataExpiracao)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	c, err := h.Service.Update(r.Context(), r.PathValue("id"), domain.ClientPatch{
		Name:         req.Nome,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCliente(c))
}

// extendResponse keeps the message shape the frontend shows after a manual
// renewal.
type extendResponse struct {
	Message           string        `json:"message"`
	NovaDataExpiracao string        `json:"nova_data_expiracao"`
	Cliente           dbsdk.Cliente `json:"cliente"`
}

// HandleExtend sets a new expiration. The date may come in the body or, as
// older clients send it, in the query string.
func (h *ClientesHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("nova_data_expiracao")
	if raw == "" {
		var req dbsdk.ExtendClienteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		raw = req.NovaDataExpiracao
	}

	expiresAt, err := parseOptionalTime("nova_data_expiracao", &raw)
	if err != nil || expiresAt == nil {
		writeBadRequest(w, "nova_data_expiracao is required and must be a date")
		return
	}

	c, err := h.Service.Extend(r.Context(), r.PathValue("id"), *expiresAt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, extendResponse{
		Message:           "Acesso renovado com sucesso",
		NovaDataExpiracao: expiresAt.UTC().Format(time.RFC3339),
		Cliente:           toCliente(c),
	})
}

func (h *ClientesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
