// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"
	"strings"

	"github.com/putrawardana/warungsaji/pkg/auth"
	"github.com/putrawardana/warungsaji/pkg/middleware"
	"github.com/putrawardana/warungsaji/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of
// the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := middleware.RoleFromCtx(r.Context())
			if role == "" || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest blocks requests that already carry a valid token (login endpoint).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token != "" && token != header {
			if _, err := auth.ValidateToken(token); err == nil {
				response.Error(w, http.StatusConflict, "Already authenticated")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
