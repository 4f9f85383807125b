package services

import (
	"context"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos"
)

// mockProvider implements providers.CampusProvider with overridable
// func fields. Calls without an override fail the test via the panic
// below, which keeps each test honest about what it exercises.
type mockProvider struct {
	FetchMembersFunc                func(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error)
	FetchAttendanceSessionFunc      func(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error)
	CreateAttendanceSessionFunc     func(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error)
	CommitAttendanceFunc            func(ctx context.Context, sessionID string, changes []models.StatusChange) (*dtos.CommitAck, error)
	FetchCatalogFunc                func(ctx context.Context, clubID int64) (*dtos.CatalogListResponse, error)
	CreateCatalogItemFunc           func(ctx context.Context, clubID int64, fields map[string]interface{}) (*dtos.RawCatalogItem, error)
	UpdateCatalogItemFunc           func(ctx context.Context, itemID int64, patch map[string]interface{}) (*dtos.RawCatalogItem, error)
	AdjustStockFunc                 func(ctx context.Context, itemID int64, delta int64) (*dtos.RawCatalogItem, error)
	DeleteCatalogItemFunc           func(ctx context.Context, itemID int64) error
	FetchWalletsFunc                func(ctx context.Context, userID int64) (*dtos.WalletResponse, error)
	FetchClubWalletFunc             func(ctx context.Context, clubID int64) (*dtos.RawWallet, error)
	FetchTransactionsFunc           func(ctx context.Context, walletID int64) (*dtos.TransactionListResponse, error)
	DistributePointsFunc            func(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error
	RedeemItemFunc                  func(ctx context.Context, walletID, itemID, quantity int64) (*dtos.RawOrder, error)
	FetchMembershipApplicationsFunc func(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error)
	FetchClubApplicationsFunc       func(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error)
	FetchOrdersFunc                 func(ctx context.Context, userID int64) (*dtos.OrderListResponse, error)
	FetchEventRegistrationsFunc     func(ctx context.Context, userID int64) (*dtos.RegistrationListResponse, error)
}

func (m *mockProvider) FetchMembers(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error) {
	if m.FetchMembersFunc == nil {
		panic("unexpected FetchMembers call")
	}
	return m.FetchMembersFunc(ctx, clubID)
}

func (m *mockProvider) FetchAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error) {
	if m.FetchAttendanceSessionFunc == nil {
		panic("unexpected FetchAttendanceSession call")
	}
	return m.FetchAttendanceSessionFunc(ctx, clubID, date)
}

func (m *mockProvider) CreateAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error) {
	if m.CreateAttendanceSessionFunc == nil {
		panic("unexpected CreateAttendanceSession call")
	}
	return m.CreateAttendanceSessionFunc(ctx, clubID, date)
}

func (m *mockProvider) CommitAttendance(ctx context.Context, sessionID string, changes []models.StatusChange) (*dtos.CommitAck, error) {
	if m.CommitAttendanceFunc == nil {
		panic("unexpected CommitAttendance call")
	}
	return m.CommitAttendanceFunc(ctx, sessionID, changes)
}

func (m *mockProvider) FetchCatalog(ctx context.Context, clubID int64) (*dtos.CatalogListResponse, error) {
	if m.FetchCatalogFunc == nil {
		panic("unexpected FetchCatalog call")
	}
	return m.FetchCatalogFunc(ctx, clubID)
}

func (m *mockProvider) CreateCatalogItem(ctx context.Context, clubID int64, fields map[string]interface{}) (*dtos.RawCatalogItem, error) {
	if m.CreateCatalogItemFunc == nil {
		panic("unexpected CreateCatalogItem call")
	}
	return m.CreateCatalogItemFunc(ctx, clubID, fields)
}

func (m *mockProvider) UpdateCatalogItem(ctx context.Context, itemID int64, patch map[string]interface{}) (*dtos.RawCatalogItem, error) {
	if m.UpdateCatalogItemFunc == nil {
		panic("unexpected UpdateCatalogItem call")
	}
	return m.UpdateCatalogItemFunc(ctx, itemID, patch)
}

func (m *mockProvider) AdjustStock(ctx context.Context, itemID int64, delta int64) (*dtos.RawCatalogItem, error) {
	if m.AdjustStockFunc == nil {
		panic("unexpected AdjustStock call")
	}
	return m.AdjustStockFunc(ctx, itemID, delta)
}

func (m *mockProvider) DeleteCatalogItem(ctx context.Context, itemID int64) error {
	if m.DeleteCatalogItemFunc == nil {
		panic("unexpected DeleteCatalogItem call")
	}
	return m.DeleteCatalogItemFunc(ctx, itemID)
}

func (m *mockProvider) FetchWallets(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
	if m.FetchWalletsFunc == nil {
		panic("unexpected FetchWallets call")
	}
	return m.FetchWalletsFunc(ctx, userID)
}

func (m *mockProvider) FetchClubWallet(ctx context.Context, clubID int64) (*dtos.RawWallet, error) {
	if m.FetchClubWalletFunc == nil {
		panic("unexpected FetchClubWallet call")
	}
	return m.FetchClubWalletFunc(ctx, clubID)
}

func (m *mockProvider) FetchTransactions(ctx context.Context, walletID int64) (*dtos.TransactionListResponse, error) {
	if m.FetchTransactionsFunc == nil {
		panic("unexpected FetchTransactions call")
	}
	return m.FetchTransactionsFunc(ctx, walletID)
}

func (m *mockProvider) DistributePoints(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error {
	if m.DistributePointsFunc == nil {
		panic("unexpected DistributePoints call")
	}
	return m.DistributePointsFunc(ctx, clubID, memberIDs, amount, reason)
}

func (m *mockProvider) RedeemItem(ctx context.Context, walletID, itemID, quantity int64) (*dtos.RawOrder, error) {
	if m.RedeemItemFunc == nil {
		panic("unexpected RedeemItem call")
	}
	return m.RedeemItemFunc(ctx, walletID, itemID, quantity)
}

func (m *mockProvider) FetchMembershipApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
	if m.FetchMembershipApplicationsFunc == nil {
		panic("unexpected FetchMembershipApplications call")
	}
	return m.FetchMembershipApplicationsFunc(ctx, userID)
}

func (m *mockProvider) FetchClubApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
	if m.FetchClubApplicationsFunc == nil {
		panic("unexpected FetchClubApplications call")
	}
	return m.FetchClubApplicationsFunc(ctx, userID)
}

func (m *mockProvider) FetchOrders(ctx context.Context, userID int64) (*dtos.OrderListResponse, error) {
	if m.FetchOrdersFunc == nil {
		panic("unexpected FetchOrders call")
	}
	return m.FetchOrdersFunc(ctx, userID)
}

func (m *mockProvider) FetchEventRegistrations(ctx context.Context, userID int64) (*dtos.RegistrationListResponse, error) {
	if m.FetchEventRegistrationsFunc == nil {
		panic("unexpected FetchEventRegistrations call")
	}
	return m.FetchEventRegistrationsFunc(ctx, userID)
}

func newTestCache(t *testing.T) common.CacheInterface {
	t.Helper()
	c := common.NewCacheService(time.Minute, time.Minute)
	t.Cleanup(func() { c.Close() })
	return c
}

func rawMembers(names ...string) *dtos.MemberListResponse {
	resp := &dtos.MemberListResponse{}
	for i, name := range names {
		resp.Members = append(resp.Members, dtos.RawMember{
			ID:   int64(i + 1),
			Name: name,
			Role: "member",
		})
	}
	return resp
}
