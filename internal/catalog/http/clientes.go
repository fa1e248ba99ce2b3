package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// MinPasswordLength is enforced on client passwords set through the gateway.
const MinPasswordLength = 8

// CreateClienteInput is the gateway's client creation body. Unlike the
// database service it takes a plaintext password.
type CreateClienteInput struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	DataExpiracao string `json:"data_expiracao"`
	CriadoPor     string `json:"criado_por,omitempty"`
}

// ClientesHandler hashes passwords before they leave the gateway.
type ClientesHandler struct {
	DB     *dbsdk.Client
	Hasher *cryptox.Hasher
	Proxy  *Proxy
	Now    func() time.Time
}

// HandleCreate godoc
//
//	@Summary		Create a client
//	@Description	Hashes the password, stamps data_registo with the current time and stores the client.
//	@Tags			Clientes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		CreateClienteInput	true	"Client"
//	@Success		201		{object}	dbsdk.Cliente
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure or duplicate email"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Router			/api/clientes/ [post].
func (h *ClientesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateClienteInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}
	if len(in.Password) < MinPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, "password must have at least 8 characters")
		return
	}

	hash, err := h.Hasher.Hash(in.Password)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	createdBy := in.CriadoPor
	if createdBy == "" {
		createdBy = httpx.UserIDFromContext(r.Context())
	}

	c, err := h.DB.CreateCliente(r.Context(), dbsdk.CreateClienteRequest{
		Nome:          strings.TrimSpace(in.Nome),
		Email:         strings.TrimSpace(in.Email),
		PasswordHash:  hash,
		DataRegisto:   dbsdk.FormatTime(h.now()),
		DataExpiracao: in.DataExpiracao,
		CriadoPor:     createdBy,
	})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// HandleUpdate forwards a partial update, replacing a plaintext "password"
// field with its hash. password_hash is never accepted from callers.
func (h *ClientesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}
	delete(fields, "password_hash")

	if raw, ok := fields["password"]; ok {
		var password string
		if err := json.Unmarshal(raw, &password); err != nil || len(password) < MinPasswordLength {
			httpx.WriteError(w, http.StatusBadRequest, KindBadRequest, "password must have at least 8 characters")
			return
		}
		hash, err := h.Hasher.Hash(password)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		encoded, _ := json.Marshal(hash)
		fields["password_hash"] = encoded
		delete(fields, "password")
	}

	body, err := json.Marshal(fields)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	r.Header.Set("Content-Type", "application/json")
	h.Proxy.forward(w, r, body)
}

func (h *ClientesHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
