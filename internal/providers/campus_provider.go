package providers

import (
	"context"
	"errors"
	"fmt"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos"
)

// CampusProvider is the single external collaborator of the pipeline: the
// upstream campus API. Every call is one request/response, no streaming,
// no partial results. Failures come back as *ProviderError so callers can
// branch on kind (the duplicate-session recovery path depends on it).
type CampusProvider interface {
	// FetchMembers fetches the membership roster of a club.
	FetchMembers(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error)

	// FetchAttendanceSession fetches the session for a club and date, if one exists.
	FetchAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error)

	// CreateAttendanceSession opens a new session for a club and date.
	CreateAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error)

	// CommitAttendance persists a batch of status changes against a session.
	CommitAttendance(ctx context.Context, sessionID string, changes []models.StatusChange) (*dtos.CommitAck, error)

	// FetchCatalog fetches a club's product catalog.
	FetchCatalog(ctx context.Context, clubID int64) (*dtos.CatalogListResponse, error)

	// CreateCatalogItem creates a product.
	CreateCatalogItem(ctx context.Context, clubID int64, fields map[string]interface{}) (*dtos.RawCatalogItem, error)

	// UpdateCatalogItem patches a product.
	UpdateCatalogItem(ctx context.Context, itemID int64, patch map[string]interface{}) (*dtos.RawCatalogItem, error)

	// AdjustStock applies a signed stock delta to a product.
	AdjustStock(ctx context.Context, itemID int64, delta int64) (*dtos.RawCatalogItem, error)

	// DeleteCatalogItem hard-deletes a product. Normal flow archives instead.
	DeleteCatalogItem(ctx context.Context, itemID int64) error

	// FetchWallets fetches a user's wallets (legacy deployments return the
	// singular form; the normalizer lifts it).
	FetchWallets(ctx context.Context, userID int64) (*dtos.WalletResponse, error)

	// FetchClubWallet fetches a club's own wallet.
	FetchClubWallet(ctx context.Context, clubID int64) (*dtos.RawWallet, error)

	// FetchTransactions fetches the append-only ledger of a wallet.
	FetchTransactions(ctx context.Context, walletID int64) (*dtos.TransactionListResponse, error)

	// DistributePoints awards points to a set of members of a club.
	DistributePoints(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error

	// RedeemItem places a redemption order against a wallet.
	RedeemItem(ctx context.Context, walletID, itemID, quantity int64) (*dtos.RawOrder, error)

	// Activity history sources, one call per source.
	FetchMembershipApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error)
	FetchClubApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error)
	FetchOrders(ctx context.Context, userID int64) (*dtos.OrderListResponse, error)
	FetchEventRegistrations(ctx context.Context, userID int64) (*dtos.RegistrationListResponse, error)
}

// ProviderError wraps an upstream failure with a machine-checkable kind.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the provider error code from err, or "" when err is
// not a ProviderError.
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsDuplicate reports whether err is the duplicate-resource kind, the one
// remote error with an automatic recovery path.
func IsDuplicate(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeDuplicate
}
