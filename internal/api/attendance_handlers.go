package api

import (
	"errors"
	"net/http"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models/dtos/requests"
	"campus-experiment/clubdesk/internal/session"
)

func rosterCriteria(r *http.Request) derive.RosterCriteria {
	q := r.URL.Query()
	return derive.RosterCriteria{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Role:      q.Get("role"),
		StaffOnly: queryBool(r, "staff_only"),
	}
}

// GetRoster returns the derived roster view for the caller's club and a
// date. The first request for a scope loads it; later ones serve the
// in-memory session so local edits survive re-filtering.
func (h *Handlers) GetRoster() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		date, ok := requireDate(w, r)
		if !ok {
			return
		}

		criteria := rosterCriteria(r)
		view, err := h.deps.Services.Attendance.View(claims.ClubID, date, criteria, queryBool(r, "staff_first"))
		var ce *session.CoordinatorError
		if errors.As(err, &ce) && ce.Code == constants.ErrCodeSessionMissing {
			if err := h.deps.Services.Attendance.LoadRoster(r.Context(), claims.ClubID, date); err != nil {
				respondWithDomainError(w, err)
				return
			}
			view, err = h.deps.Services.Attendance.View(claims.ClubID, date, criteria, queryBool(r, "staff_first"))
		}
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// RefreshRoster forces a reload of the scope, discarding any fetch still
// in flight for it.
func (h *Handlers) RefreshRoster() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		date, ok := requireDate(w, r)
		if !ok {
			return
		}
		if err := h.deps.Services.Attendance.LoadRoster(r.Context(), claims.ClubID, date); err != nil {
			respondWithDomainError(w, err)
			return
		}
		view, err := h.deps.Services.Attendance.View(claims.ClubID, date, rosterCriteria(r), queryBool(r, "staff_first"))
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// CreateSession opens the remote attendance session for a date.
func (h *Handlers) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.CreateSessionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Date == "" {
			respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "date is required")
			return
		}

		result, err := h.deps.Services.Attendance.CreateSession(r.Context(), claims.ClubID, req.Date)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		status := http.StatusCreated
		if result.Recovered {
			status = http.StatusOK
		}
		respondWithSuccess(w, status, result)
	}
}

// MarkEntry applies one local status edit.
func (h *Handlers) MarkEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		date, ok := requireDate(w, r)
		if !ok {
			return
		}
		var req requests.MarkEntryRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		status := constants.ParseAttendanceStatus(req.Status)
		if err := h.deps.Services.Attendance.Mark(r.Context(), claims.ClubID, date, req.EntryID, status, req.Note); err != nil {
			respondWithDomainError(w, err)
			return
		}
		view, err := h.deps.Services.Attendance.View(claims.ClubID, date, derive.RosterCriteria{}, false)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// BulkMark assigns one status to every entry the caller's filter shows.
func (h *Handlers) BulkMark() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		date, ok := requireDate(w, r)
		if !ok {
			return
		}
		var req requests.BulkMarkRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		criteria := derive.RosterCriteria{
			Search:    req.Search,
			Status:    req.Filter,
			Role:      req.Role,
			StaffOnly: req.StaffOnly,
		}
		changed, err := h.deps.Services.Attendance.BulkMark(r.Context(), claims.ClubID, date,
			constants.ParseAttendanceStatus(req.Status), criteria)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct {
			Changed int `json:"changed"`
		}{Changed: changed})
	}
}

// Commit flushes the pending edits to the campus API.
func (h *Handlers) Commit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		date, ok := requireDate(w, r)
		if !ok {
			return
		}

		result, err := h.deps.Services.Attendance.Commit(r.Context(), claims.ClubID, date)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, result)
	}
}
