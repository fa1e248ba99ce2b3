package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// ResolveHandler serves approve and reject. The acting admin defaults to
// the token subject when the body does not name one.
type ResolveHandler struct {
	DB *dbsdk.Client
}

type resolveFunc func(ctx context.Context, id string, in dbsdk.ResolvePedidoRequest) (*dbsdk.Pedido, error)

// HandleApprove godoc
//
//	@Summary		Approve a pending request
//	@Description	Approves the request. Renewals extend the client's access by 30 days unless nova_data_expiracao is given.
//	@Tags			Pedidos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Request ID"
//	@Param			body	body		dbsdk.ResolvePedidoRequest	false	"Acting admin and optional new expiration"
//	@Success		200		{object}	dbsdk.Pedido
//	@Failure		400		{object}	httpx.ErrorResponse	"already resolved or invalid admin"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		503		{object}	httpx.ErrorResponse
//	@Router			/api/pedidos/{id}/approve [post].
func (h *ResolveHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.DB.ApprovePedido)
}

// HandleReject godoc
//
//	@Summary		Reject a pending request
//	@Tags			Pedidos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Request ID"
//	@Param			body	body		dbsdk.ResolvePedidoRequest	false	"Acting admin"
//	@Success		200		{object}	dbsdk.Pedido
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/pedidos/{id}/reject [post].
func (h *ResolveHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.DB.RejectPedido)
}

func (h *ResolveHandler) resolve(w http.ResponseWriter, r *http.Request, fn resolveFunc) {
	var in dbsdk.ResolvePedidoRequest
	if err := decodeOptionalJSON(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}
	if in.AdminID == "" {
		in.AdminID = httpx.UserIDFromContext(r.Context())
	}

	p, err := fn(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// decodeOptionalJSON decodes the body into v when there is one.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
