package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models/dtos"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
)

func i64p(v int64) *int64 { return &v }

func TestGetWalletsLiftsLegacySingularShape(t *testing.T) {
	provider := &mockProvider{
		FetchWalletsFunc: func(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
			return &dtos.WalletResponse{WalletID: i64p(42), Balance: i64p(250)}, nil
		},
	}
	svc := NewWalletService(provider, newTestCache(t), nil, nil, time.Minute)

	view, err := svc.GetWallets(context.Background(), 5)
	if err != nil {
		t.Fatalf("get wallets: %v", err)
	}
	if len(view.Wallets) != 1 {
		t.Fatalf("expected the singular wallet to be lifted, got %d wallets", len(view.Wallets))
	}
	w := view.Wallets[0]
	if w.ID != 42 || w.Balance != 250 || w.ClubName != normalize.LegacyWalletLabel {
		t.Fatalf("lifted wallet = %+v", w)
	}
	if view.ActiveWalletID != 42 || view.TotalBalance != 250 {
		t.Fatalf("view = %+v", view)
	}
}

func TestGetWalletsPrefersPluralList(t *testing.T) {
	provider := &mockProvider{
		FetchWalletsFunc: func(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
			return &dtos.WalletResponse{
				Wallets: []dtos.RawWallet{
					{ID: 1, OwnerID: userID, OwnerKind: "user", ClubName: "Chess Club", Balance: 100},
					{ID: 2, OwnerID: userID, OwnerKind: "user", ClubName: "Robotics", Balance: 40},
				},
				WalletID: i64p(99), // stale legacy fields must be ignored
				Balance:  i64p(1),
			}, nil
		},
	}
	svc := NewWalletService(provider, newTestCache(t), nil, nil, time.Minute)

	view, err := svc.GetWallets(context.Background(), 5)
	if err != nil {
		t.Fatalf("get wallets: %v", err)
	}
	if len(view.Wallets) != 2 || view.TotalBalance != 140 {
		t.Fatalf("view = %+v", view)
	}
	if view.ActiveWalletID != 1 {
		t.Fatalf("active should fall back to first wallet, got %d", view.ActiveWalletID)
	}
}

func TestSelectWalletRejectsForeignWallet(t *testing.T) {
	provider := &mockProvider{
		FetchWalletsFunc: func(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
			return &dtos.WalletResponse{Wallets: []dtos.RawWallet{
				{ID: 1, OwnerID: userID, OwnerKind: "user", ClubName: "Chess Club", Balance: 100},
			}}, nil
		},
	}
	svc := NewWalletService(provider, newTestCache(t), nil, nil, time.Minute)

	err := svc.SelectWallet(context.Background(), 5, 999)
	var pe *providers.ProviderError
	if !errors.As(err, &pe) || pe.Code != constants.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetTransactionsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider := &mockProvider{
		FetchTransactionsFunc: func(ctx context.Context, walletID int64) (*dtos.TransactionListResponse, error) {
			return &dtos.TransactionListResponse{Transactions: []dtos.RawTransaction{
				{ID: 1, WalletID: walletID, Amount: 10, CreatedAt: base},
				{ID: 2, WalletID: walletID, Amount: -5, CreatedAt: base.Add(time.Hour)},
				{ID: 3, WalletID: walletID, Amount: 20, CreatedAt: base.Add(2 * time.Hour)},
			}}, nil
		},
	}
	svc := NewWalletService(provider, newTestCache(t), nil, nil, time.Minute)

	txns, err := svc.GetTransactions(context.Background(), 42)
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(txns) != 3 || txns[0].ID != 3 || txns[2].ID != 1 {
		t.Fatalf("ledger not newest-first: %+v", txns)
	}
}

func TestDistributeTouchesOnlyFilteredMembers(t *testing.T) {
	var awarded []int64
	provider := &mockProvider{
		FetchMembersFunc: func(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error) {
			return rawMembers("Ana", "Ben", "Andy", "Chan"), nil
		},
		DistributePointsFunc: func(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error {
			awarded = memberIDs
			return nil
		},
	}
	attendance := NewAttendanceService(provider, newTestCache(t), nil, time.Minute)
	svc := NewWalletService(provider, newTestCache(t), nil, attendance, time.Minute)
	ctx := context.Background()

	if _, err := svc.Distribute(ctx, 7, 0, "prize", derive.RosterCriteria{}); err == nil {
		t.Fatal("expected non-positive amount to be rejected")
	}

	result, err := svc.Distribute(ctx, 7, 25, "prize", derive.RosterCriteria{Search: "an"})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if result.Awarded != 3 || result.Amount != 25 {
		t.Fatalf("result = %+v", result)
	}
	// Ana(1), Andy(3), Chan(4) match; Ben(2) does not.
	want := []int64{1, 3, 4}
	if len(awarded) != len(want) {
		t.Fatalf("awarded ids %v, want %v", awarded, want)
	}
	for i, id := range want {
		if awarded[i] != id {
			t.Fatalf("awarded ids %v, want %v", awarded, want)
		}
	}
}

func TestRedeemChecksBalanceLocally(t *testing.T) {
	var walletFetches int32
	provider := &mockProvider{
		FetchWalletsFunc: func(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
			atomic.AddInt32(&walletFetches, 1)
			return &dtos.WalletResponse{Wallets: []dtos.RawWallet{
				{ID: 1, OwnerID: userID, OwnerKind: "user", ClubName: "Chess Club", Balance: 100},
			}}, nil
		},
		RedeemItemFunc: func(ctx context.Context, walletID, itemID, quantity int64) (*dtos.RawOrder, error) {
			return &dtos.RawOrder{ID: 77, ItemName: "Club Hoodie", Points: 50, Status: "PENDING"}, nil
		},
	}
	svc := NewWalletService(provider, newTestCache(t), nil, nil, time.Minute)
	ctx := context.Background()

	// 60 * 2 > 100: rejected before any upstream call.
	_, err := svc.Redeem(ctx, 5, 1, 10, 2, 60)
	var pe *providers.ProviderError
	if !errors.As(err, &pe) || pe.Code != constants.ErrCodeInsufficientFund {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	_, err = svc.Redeem(ctx, 5, 999, 10, 1, 10)
	if !errors.As(err, &pe) || pe.Code != constants.ErrCodeValidation {
		t.Fatalf("expected foreign wallet rejection, got %v", err)
	}

	record, err := svc.Redeem(ctx, 5, 1, 10, 1, 50)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if record.ID != 77 || record.Kind != constants.ActivityRedemptionOrder || record.Status != string(constants.OrderPending) {
		t.Fatalf("record = %+v", record)
	}

	// Balance cache was invalidated; the next read goes upstream again.
	before := atomic.LoadInt32(&walletFetches)
	if _, err := svc.GetWallets(ctx, 5); err != nil {
		t.Fatalf("get wallets: %v", err)
	}
	if got := atomic.LoadInt32(&walletFetches); got != before+1 {
		t.Fatalf("expected a re-fetch after redemption, got %d fetches", got)
	}
}
