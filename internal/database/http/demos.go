package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// DemosHandler serves /db/demos.
type DemosHandler struct {
	Service *service.DemoService
}

func (h *DemosHandler) list(fn func(r *http.Request) ([]domain.Demo, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := fn(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDemos(list))
	}
}

func (h *DemosHandler) HandleList() http.HandlerFunc {
	return h.list(func(r *http.Request) ([]domain.Demo, error) {
		return h.Service.List(r.Context())
	})
}

func (h *DemosHandler) HandleListActive() http.HandlerFunc {
	return h.list(func(r *http.Request) ([]domain.Demo, error) {
		return h.Service.ListActive(r.Context())
	})
}

func (h *DemosHandler) HandleListByVertical() http.HandlerFunc {
	return h.list(func(r *http.Request) ([]domain.Demo, error) {
		return h.Service.ListByVertical(r.Context(), r.PathValue("vertical"))
	})
}

func (h *DemosHandler) HandleListByHorizontal() http.HandlerFunc {
	return h.list(func(r *http.Request) ([]domain.Demo, error) {
		return h.Service.ListByHorizontal(r.Context(), r.PathValue("horizontal"))
	})
}

func (h *DemosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDemo(d))
}

func (h *DemosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreateDemoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	d, err := h.Service.Create(r.Context(), domain.Demo{
		Name:              req.Nome,
		Description:       req.Descricao,
		URL:               req.URL,
		Status:            domain.DemoStatus(req.Estado),
		Vertical:          req.Vertical,
		Horizontal:        req.Horizontal,
		Keywords:          req.Keywords,
		ProjectCode:       req.CodigoProjeto,
		SalesContactName:  req.ComercialNome,
		SalesContact:      req.ComercialContacto,
		SalesContactPhoto: req.ComercialFotoURL,
		CreatedBy:         req.CriadoPor,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDemo(d))
}

func (h *DemosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.UpdateDemoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	patch := domain.DemoPatch{
		Name:              req.Nome,
		Description:       req.Descricao,
		URL:               req.URL,
		Vertical:          req.Vertical,
		Horizontal:        req.Horizontal,
		Keywords:          req.Keywords,
		ProjectCode:       req.CodigoProjeto,
		SalesContactName:  req.ComercialNome,
		SalesContact:      req.ComercialContacto,
		SalesContactPhoto: req.ComercialFotoURL,
	}
	if req.Estado != nil {
		status := domain.DemoStatus(*req.Estado)
		patch.Status = &status
	}

	d, err := h.Service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDemo(d))
}

func (h *DemosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
