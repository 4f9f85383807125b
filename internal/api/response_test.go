package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	"campus-experiment/clubdesk/internal/providers"
	"campus-experiment/clubdesk/internal/session"
)

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		constants.ErrCodeValidation:       http.StatusBadRequest,
		constants.ErrCodeInsufficientFund: http.StatusBadRequest,
		constants.ErrCodeNothingToCommit:  http.StatusBadRequest,
		constants.ErrCodeNotFound:         http.StatusNotFound,
		constants.ErrCodeDuplicate:        http.StatusConflict,
		constants.ErrCodeSessionMissing:   http.StatusConflict,
		constants.ErrCodeCommitInFlight:   http.StatusConflict,
		constants.ErrCodeStaleFetch:       http.StatusConflict,
		constants.ErrCodeSessionReadOnly:  http.StatusForbidden,
		constants.ErrCodeRateLimited:      http.StatusTooManyRequests,
		constants.ErrCodeNetwork:          http.StatusBadGateway,
		constants.ErrCodeServer:           http.StatusBadGateway,
	}
	for code, want := range cases {
		if got := statusForCode(code); got != want {
			t.Errorf("statusForCode(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestRespondWithDomainErrorProviderEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithDomainError(rec, &providers.ProviderError{
		Code:    constants.ErrCodeDuplicate,
		Message: "session already exists",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var resp responses.APIResponse[any]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "error" || resp.ErrorCode != constants.ErrCodeDuplicate {
		t.Fatalf("envelope = %+v", resp)
	}
}

func TestRespondWithDomainErrorCoordinatorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithDomainError(rec, &session.CoordinatorError{
		Code:    constants.ErrCodeSessionReadOnly,
		Message: constants.GetErrorMessage(constants.ErrCodeSessionReadOnly),
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRespondWithSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithSuccess(rec, http.StatusCreated, &struct {
		ID int64 `json:"id"`
	}{ID: 9})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var resp responses.APIResponse[map[string]int64]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "success" || (*resp.Data)["id"] != 9 {
		t.Fatalf("envelope = %+v", resp)
	}
}
