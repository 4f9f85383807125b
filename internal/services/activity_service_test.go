package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models/dtos"
	"campus-experiment/clubdesk/internal/providers"
)

func historyProvider(base time.Time) *mockProvider {
	return &mockProvider{
		FetchMembershipApplicationsFunc: func(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
			return &dtos.ApplicationListResponse{Applications: []dtos.RawApplication{
				{ID: 1, ClubName: "Chess Club", Status: "APPROVED", CreatedAt: base},
			}}, nil
		},
		FetchClubApplicationsFunc: func(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
			return &dtos.ApplicationListResponse{Applications: []dtos.RawApplication{
				{ID: 2, ClubName: "Robotics", Status: "pending", CreatedAt: base.Add(3 * time.Hour)},
			}}, nil
		},
		FetchOrdersFunc: func(ctx context.Context, userID int64) (*dtos.OrderListResponse, error) {
			return &dtos.OrderListResponse{Orders: []dtos.RawOrder{
				{ID: 3, ItemName: "Club Hoodie", Points: 50, Status: "completed", CreatedAt: base.Add(time.Hour)},
			}}, nil
		},
		FetchEventRegistrationsFunc: func(ctx context.Context, userID int64) (*dtos.RegistrationListResponse, error) {
			return &dtos.RegistrationListResponse{Registrations: []dtos.RawRegistration{
				{ID: 4, EventName: "Spring Tournament", Status: "confirmed", CreatedAt: base.Add(2 * time.Hour)},
			}}, nil
		},
	}
}

func TestGetHistoryMergesAllSources(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewActivityService(historyProvider(base), newTestCache(t), time.Minute)

	view, err := svc.GetHistory(context.Background(), 5, derive.ActivityCriteria{})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if view.Total != 4 {
		t.Fatalf("expected 4 merged records, got %d", view.Total)
	}

	// Newest first regardless of which source a record came from.
	wantOrder := []int64{2, 4, 3, 1}
	for i, id := range wantOrder {
		if view.Records[i].ID != id {
			t.Fatalf("record order %v, want ids %v", view.Records, wantOrder)
		}
	}

	if view.CountsByKind[string(constants.ActivityMembershipApplication)] != 1 ||
		view.CountsByKind[string(constants.ActivityRedemptionOrder)] != 1 {
		t.Fatalf("counts by kind = %v", view.CountsByKind)
	}
}

func TestGetHistoryFiltersByKind(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewActivityService(historyProvider(base), newTestCache(t), time.Minute)

	view, err := svc.GetHistory(context.Background(), 5, derive.ActivityCriteria{
		Kind: string(constants.ActivityRedemptionOrder),
	})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if view.Total != 1 || view.Records[0].Title != "Club Hoodie" {
		t.Fatalf("view = %+v", view)
	}
	// Counts describe the visible set, not the full history.
	if view.CountsByKind[string(constants.ActivityMembershipApplication)] != 0 {
		t.Fatalf("counts leak filtered-out records: %v", view.CountsByKind)
	}
}

func TestGetHistoryFailsWhenAnySourceFails(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	provider := historyProvider(base)
	provider.FetchOrdersFunc = func(ctx context.Context, userID int64) (*dtos.OrderListResponse, error) {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeNetwork,
			Message: constants.GetErrorMessage(constants.ErrCodeNetwork),
		}
	}
	svc := NewActivityService(provider, newTestCache(t), time.Minute)

	if _, err := svc.GetHistory(context.Background(), 5, derive.ActivityCriteria{}); err == nil {
		t.Fatal("expected a failed source to fail the whole load")
	}
}

func TestGetHistoryCachesMergedResult(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	provider := historyProvider(base)
	var orderCalls int32
	inner := provider.FetchOrdersFunc
	provider.FetchOrdersFunc = func(ctx context.Context, userID int64) (*dtos.OrderListResponse, error) {
		atomic.AddInt32(&orderCalls, 1)
		return inner(ctx, userID)
	}
	svc := NewActivityService(provider, newTestCache(t), time.Minute)
	ctx := context.Background()

	if _, err := svc.GetHistory(ctx, 5, derive.ActivityCriteria{}); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := svc.GetHistory(ctx, 5, derive.ActivityCriteria{Status: "completed"}); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := atomic.LoadInt32(&orderCalls); got != 1 {
		t.Fatalf("expected the merged history to be cached, got %d source calls", got)
	}

	svc.Invalidate(5)
	if _, err := svc.GetHistory(ctx, 5, derive.ActivityCriteria{}); err != nil {
		t.Fatalf("load after invalidate: %v", err)
	}
	if got := atomic.LoadInt32(&orderCalls); got != 2 {
		t.Fatalf("expected re-fetch after invalidation, got %d source calls", got)
	}
}
