package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/httpx"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "server_error")
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"x","extra":1}`))
	require.NoError(t, httpx.DecodeJSON(req, &v))
	require.Equal(t, "x", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.Error(t, httpx.DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	require.Error(t, httpx.DecodeJSON(req, &v))
}

func TestAuthnAndRole(t *testing.T) {
	h, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "")
	require.NoError(t, err)

	sign := func(role string) string {
		raw, err := h.Sign(jwtx.NewAccessClaims("user-1", role, "", "", "", time.Hour, time.Now()))
		require.NoError(t, err)
		return raw
	}

	var seen string
	protected := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = httpx.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
		httpx.AuthnMiddleware(h),
		httpx.RequireRole(jwtx.RoleAdmin),
	)

	call := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/pedidos/1/approve", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing token", func(t *testing.T) {
		rec := call("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)
	})

	t.Run("client role is forbidden", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, call("Bearer "+sign(jwtx.RoleClient)).Code)
	})

	t.Run("admin passes with subject in context", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, call("bearer "+sign(jwtx.RoleAdmin)).Code)
		require.Equal(t, "user-1", seen)
	})
}

func TestClaimsFromContextEmpty(t *testing.T) {
	_, ok := httpx.ClaimsFromContext(context.Background())
	require.False(t, ok)
}

func TestRequireOwnerOrRole(t *testing.T) {
	h, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "")
	require.NoError(t, err)

	sign := func(sub, role string) string {
		raw, err := h.Sign(jwtx.NewAccessClaims(sub, role, "", "", "", time.Hour, time.Now()))
		require.NoError(t, err)
		return "Bearer " + raw
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/clientes/{id}", httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		httpx.AuthnMiddleware(h),
		httpx.RequireOwnerOrRole("id", jwtx.RoleAdmin),
	))

	call := func(path, authz string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", authz)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, call("/api/clientes/c-1", sign("c-1", jwtx.RoleClient)))
	require.Equal(t, http.StatusForbidden, call("/api/clientes/c-2", sign("c-1", jwtx.RoleClient)))
	require.Equal(t, http.StatusNoContent, call("/api/clientes/c-2", sign("a-1", jwtx.RoleAdmin)))
}
