package http

import (
	"errors"
	"net/http"

	"github.com/ltplabs/ecatalog/internal/authentication/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// AuthHandler serves the login flow.
type AuthHandler struct {
	AuthService *service.AuthService
	Verifier    jwtx.Verifier
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, res)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Credenciais inválidas")
	case errors.Is(err, service.ErrAccessExpired):
		httpx.WriteError(w, http.StatusForbidden, "access_expired", "O acesso do cliente expirou")
	case dbsdk.IsUnavailable(err):
		httpx.WriteError(w, http.StatusServiceUnavailable, dbsdk.CodeServiceUnavailable, "database service unavailable")
	default:
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, dbsdk.CodeServerError, "internal error")
	}
}

// HandleValidate reports whether a token is valid. An invalid token is a
// normal answer, not an error.
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	raw, hasBearer := httpx.BearerToken(r)
	if err := httpx.DecodeJSON(r, &req); err != nil && !hasBearer {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Token == "" {
		req.Token = raw
	}

	claims, err := h.Verifier.Verify(req.Token)
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, validateResponse{Valid: false})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, validateResponse{
		Valid:  true,
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	})
}

// HandleLogout acknowledges a logout. Tokens are stateless; a valid bearer
// token only adds an audit entry.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if raw, ok := httpx.BearerToken(r); ok {
		if claims, err := h.Verifier.Verify(raw); err == nil {
			h.AuthService.Logout(r.Context(), claims)
		}
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logout efetuado com sucesso"})
}

// HandleMe returns the caller's identity from its token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing claims")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, service.UserFromClaims(claims))
}
