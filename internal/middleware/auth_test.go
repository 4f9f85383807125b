package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/auth"
	"campus-experiment/clubdesk/internal/constants"
)

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetSessionClaims(r.Context())
		if claims == nil {
			t.Fatal("claims missing from context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	verifier := auth.NewTokenVerifier("secret", "clubdesk")
	handler := AuthMiddleware(verifier)(claimsEcho(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	verifier := auth.NewTokenVerifier("secret", "clubdesk")
	handler := AuthMiddleware(verifier)(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	verifier := auth.NewTokenVerifier("secret", "clubdesk")
	token, err := verifier.Sign(42, 7, constants.RoleMember, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	handler := AuthMiddleware(verifier)(claimsEcho(t))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRoleGates(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name    string
		role    constants.ClubRole
		gate    func(http.Handler) http.Handler
		allowed bool
	}{
		{"member blocked from leader routes", constants.RoleMember, IsLeaderMiddleware(), false},
		{"leader passes leader gate", constants.RoleLeader, IsLeaderMiddleware(), true},
		{"leader blocked from staff routes", constants.RoleLeader, IsStaffMiddleware(), false},
		{"staff passes both gates", constants.RoleStaff, IsStaffMiddleware(), true},
		{"admin passes staff gate", constants.RoleAdmin, IsStaffMiddleware(), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			claims := &auth.SessionClaims{ClubID: 7, Role: tc.role}
			req = req.WithContext(auth.SetSessionClaims(req.Context(), claims))

			rec := httptest.NewRecorder()
			tc.gate(ok).ServeHTTP(rec, req)

			wantStatus := http.StatusOK
			if !tc.allowed {
				wantStatus = http.StatusUnauthorized
			}
			if rec.Code != wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, wantStatus)
			}
		})
	}
}
