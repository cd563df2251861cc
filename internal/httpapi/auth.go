package httpapi

import (
	"net/http"
	"strings"

	"github.com/fundrazor/fundrazor/internal/auth"
)

// requireToken guards write/read endpoints marked auth-required. When no token
// is configured the check is disabled (local development mode).
func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || presented != token {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "missing or invalid bearer token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithActor(r.Context(), "api-token")))
		})
	}
}
