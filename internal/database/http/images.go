package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// ImagesHandler serves /db/docker-images.
type ImagesHandler struct {
	Service *service.ImageService
}

func (h *ImagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDockerImages(list))
}

func (h *ImagesHandler) HandleListByName(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListByName(r.Context(), r.PathValue("nome_imagem"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDockerImages(list))
}

func (h *ImagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	img, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDockerImage(img))
}

func (h *ImagesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreateDockerImageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	img, err := h.Service.Create(r.Context(), domain.Image{
		Name:        req.NomeImagem,
		Version:     req.VersaoImagem,
		URL:         req.URL,
		Description: req.Descricao,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDockerImage(img))
}

func (h *ImagesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.UpdateDockerImageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	img, err := h.Service.Update(r.Context(), r.PathValue("id"), domain.ImagePatch{
		Name:        req.NomeImagem,
		Version:     req.VersaoImagem,
		URL:         req.URL,
		Description: req.Descricao,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDockerImage(img))
}

func (h *ImagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
