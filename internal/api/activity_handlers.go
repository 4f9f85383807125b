package api

import (
	"net/http"

	"campus-experiment/clubdesk/internal/derive"
)

// GetActivity returns the caller's merged activity history.
func (h *Handlers) GetActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		q := r.URL.Query()
		criteria := derive.ActivityCriteria{
			Search: q.Get("search"),
			Kind:   q.Get("kind"),
			Status: q.Get("status"),
		}
		if from, ok := queryDate(r, "from"); ok {
			start := derive.StartOfDay(from)
			criteria.From = &start
		}
		if to, ok := queryDate(r, "to"); ok {
			end := derive.EndOfDay(to)
			criteria.To = &end
		}

		view, err := h.deps.Services.Activity.GetHistory(r.Context(), claims.UserID(), criteria)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}
