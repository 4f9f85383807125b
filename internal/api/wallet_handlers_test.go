package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/models/dtos"
	"campus-experiment/clubdesk/internal/services"
)

// Distribution covers exactly the members the leader's filter shows.
func TestDistributePointsTouchesOnlyStaffWhenFiltered(t *testing.T) {
	var awarded []int64
	provider := &stubProvider{
		members: func(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error) {
			return clubMembers(), nil
		},
		distribute: func(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error {
			awarded = memberIDs
			return nil
		},
	}
	cache := common.NewCacheService(time.Minute, time.Minute)
	t.Cleanup(func() { cache.Close() })
	attendance := services.NewAttendanceService(provider, cache, nil, time.Minute)
	wallet := services.NewWalletService(provider, cache, nil, attendance, time.Minute)

	h := NewHandlers(&Dependencies{Services: &Services{Wallet: wallet}})
	req := leaderRequest(http.MethodPost, "/api/v1/points/distribute",
		`{"amount":25,"reason":"cleanup crew","staff_only":true}`)
	rec := httptest.NewRecorder()
	h.DistributePoints()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !reflect.DeepEqual(awarded, []int64{1}) {
		t.Fatalf("awarded ids = %v, want only the staff entry", awarded)
	}
}
