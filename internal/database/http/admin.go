package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// AdminHandler serves /db/admin.
type AdminHandler struct {
	Service *service.AdminService
}

func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]dbsdk.Admin, len(list))
	for i, a := range list {
		out[i] = toAdmin(a)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdmin(a))
}

func (h *AdminHandler) HandleGetByEmail(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdmin(a))
}

func (h *AdminHandler) HandleGetWithPassword(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dbsdk.AdminWithPassword{Admin: toAdmin(a), PasswordHash: a.PasswordHash})
}

func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreateAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	a, err := h.Service.Create(r.Context(), req.Nome, req.Email, req.PasswordHash, req.Contacto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAdmin(a))
}
