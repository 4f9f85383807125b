package middleware

import (
	"net/http"

	"campus-experiment/clubdesk/internal/auth"
)

// IsLeaderMiddleware gates the roster mutation and distribution routes.
func IsLeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetSessionClaims(r.Context())
			if claims == nil || !claims.IsLeader() {
				http.Error(w, "Unauthorized. Need leader perms", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
