package api

import (
	"net/http"
	"strconv"
	"time"

	"campus-experiment/clubdesk/internal/auth"
	"campus-experiment/clubdesk/internal/constants"
)

// Handlers bundles the HTTP handlers with their service dependencies.
type Handlers struct {
	deps *Dependencies
}

func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}

// claimsFrom returns the session claims installed by the auth middleware.
func claimsFrom(r *http.Request) *auth.SessionClaims {
	return auth.GetSessionClaims(r.Context())
}

func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

// queryDate parses a YYYY-MM-DD query parameter. The second return is
// false when the parameter is absent or malformed.
func queryDate(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func requireDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "date query parameter is required (YYYY-MM-DD)")
		return "", false
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "date must be YYYY-MM-DD")
		return "", false
	}
	return date, true
}
