package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(roles, roleFromContext(r.Context())) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("WWW-Authenticate",
				`Bearer error="insufficient_scope", scope="`+strings.Join(roles, " ")+`"`)
			WriteError(w, http.StatusForbidden, "forbidden", "requires role "+strings.Join(roles, " or "))
		})
	}
}

// RequireOwnerOrRole lets the request through when the authenticated role is
// one of roles, or when the path value named param equals the token subject.
// It must run after AuthnMiddleware on a handler registered with a pattern
// that declares param.
func RequireOwnerOrRole(param string, roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if slices.Contains(roles, roleFromContext(ctx)) {
				next.ServeHTTP(w, r)
				return
			}

			if sub := UserIDFromContext(ctx); sub != "" && r.PathValue(param) == sub {
				next.ServeHTTP(w, r)
				return
			}

			WriteError(w, http.StatusForbidden, "forbidden", "resource belongs to another account")
		})
	}
}
