package api

import (
	"net/http"

	"campus-experiment/clubdesk/internal/models/dtos/requests"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
)

// GetPosition returns the persisted floating-button position, or the
// default center-right anchor when none is stored.
func (h *Handlers) GetPosition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		x, y, ok, err := h.deps.Repo.Prefs.LoadPosition(r.Context(), claims.UserID())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		if !ok {
			x, y = 1.0, 0.5
		}
		respondWithSuccess(w, http.StatusOK, &responses.PositionView{X: x, Y: y})
	}
}

// SavePosition persists the floating-button position.
func (h *Handlers) SavePosition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.SavePositionRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := h.deps.Repo.Prefs.SavePosition(r.Context(), claims.UserID(), req.X, req.Y); err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &responses.PositionView{X: req.X, Y: req.Y})
	}
}

// Logout clears every persisted preference for the caller.
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if err := h.deps.Repo.Prefs.ClearAll(r.Context(), claims.UserID()); err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct {
			LoggedOut bool `json:"logged_out"`
		}{LoggedOut: true})
	}
}
