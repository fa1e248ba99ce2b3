package http

import (
	"errors"
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto HTTP.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, dbsdk.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		httpx.WriteError(w, http.StatusBadRequest, dbsdk.CodeInvalidState, err.Error())
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, dbsdk.CodeValidation, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, dbsdk.CodeAlreadyExists, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dbsdk.CodeServerError, "internal error")
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, dbsdk.CodeValidation, desc)
}
