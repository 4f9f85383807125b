package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	"campus-experiment/clubdesk/internal/providers"
	"campus-experiment/clubdesk/internal/session"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
		ErrorCode: code,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithDomainError maps provider and coordinator error kinds onto
// HTTP statuses. Anything unrecognized is a 502: from the client's point
// of view this service failed to get an answer, not the user.
func respondWithDomainError(w http.ResponseWriter, err error) {
	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		respondWithError(w, statusForCode(pe.Code), pe.Code, pe.Message)
		return
	}
	var ce *session.CoordinatorError
	if errors.As(err, &ce) {
		respondWithError(w, statusForCode(ce.Code), ce.Code, ce.Message)
		return
	}
	respondWithError(w, http.StatusBadGateway, constants.ErrCodeServer,
		constants.GetErrorMessage(constants.ErrCodeServer))
}

func statusForCode(code string) int {
	switch code {
	case constants.ErrCodeValidation, constants.ErrCodeNothingToCommit, constants.ErrCodeInsufficientFund:
		return http.StatusBadRequest
	case constants.ErrCodeNotFound:
		return http.StatusNotFound
	case constants.ErrCodeDuplicate, constants.ErrCodeSessionMissing,
		constants.ErrCodeCommitInFlight, constants.ErrCodeStaleFetch:
		return http.StatusConflict
	case constants.ErrCodeSessionReadOnly:
		return http.StatusForbidden
	case constants.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "malformed request body")
		return false
	}
	return true
}
