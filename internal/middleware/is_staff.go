package middleware

import (
	"net/http"

	"campus-experiment/clubdesk/internal/auth"
)

// IsStaffMiddleware gates the catalog administration routes.
func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetSessionClaims(r.Context())
			if claims == nil || !claims.Role.IsStaff() {
				http.Error(w, "Unauthorized. Need staff perms", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
