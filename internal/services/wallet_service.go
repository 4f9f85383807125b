package services

import (
	"context"
	"fmt"
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/db/repositories"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
)

// WalletService serves the multi-wallet point screens. Balances are
// read-mostly cached data: any action that can change one (a redemption,
// a distribution) invalidates the cache and the next read re-fetches.
// The "active" wallet is a client-local selection persisted in prefs,
// not a server concept.
type WalletService struct {
	provider providers.CampusProvider
	cache    common.CacheInterface
	prefs    *repositories.PrefsRepository
	members  *AttendanceService
	ttl      time.Duration
}

func NewWalletService(
	provider providers.CampusProvider,
	cache common.CacheInterface,
	prefs *repositories.PrefsRepository,
	members *AttendanceService,
	ttl time.Duration,
) *WalletService {
	return &WalletService{
		provider: provider,
		cache:    cache,
		prefs:    prefs,
		members:  members,
		ttl:      ttl,
	}
}

func walletCacheKey(userID int64) string {
	return string(constants.CachePrefixWallet) + fmt.Sprint(userID)
}

// GetWallets returns the user's normalized wallets with the active
// selection resolved. A stored selection pointing at a wallet that no
// longer exists falls back to the first wallet.
func (s *WalletService) GetWallets(ctx context.Context, userID int64) (*responses.WalletsView, error) {
	wallets, err := s.wallets(ctx, userID)
	if err != nil {
		return nil, err
	}

	var activeID int64
	if s.prefs != nil {
		stored, err := s.prefs.LoadActiveWallet(ctx, userID)
		if err != nil {
			logging.Warn("failed to load active wallet pref", "user_id", userID, "error", err.Error())
		} else {
			activeID = stored
		}
	}
	if !walletExists(wallets, activeID) && len(wallets) > 0 {
		activeID = wallets[0].ID
	}

	return &responses.WalletsView{
		Wallets:        wallets,
		ActiveWalletID: activeID,
		TotalBalance:   derive.WalletTotal(wallets),
	}, nil
}

func (s *WalletService) wallets(ctx context.Context, userID int64) ([]models.Wallet, error) {
	if cached, found := s.cache.Get(walletCacheKey(userID)); found {
		if wallets, ok := cached.([]models.Wallet); ok {
			return wallets, nil
		}
	}

	raw, err := s.provider.FetchWallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	wallets := normalize.Wallets(raw, userID)
	s.cache.Set(walletCacheKey(userID), wallets, s.ttl)
	return wallets, nil
}

// GetClubWallet returns the club's own wallet, cached under its own key
// so distributions can invalidate it independently of user balances.
func (s *WalletService) GetClubWallet(ctx context.Context, clubID int64) (*models.Wallet, error) {
	cacheKey := string(constants.CachePrefixClubWallet) + fmt.Sprint(clubID)
	if cached, found := s.cache.Get(cacheKey); found {
		if wallet, ok := cached.(*models.Wallet); ok {
			return wallet, nil
		}
	}

	raw, err := s.provider.FetchClubWallet(ctx, clubID)
	if err != nil {
		return nil, err
	}
	wallet := normalize.ClubWallet(raw)
	if wallet == nil {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeServer,
			Message: "upstream returned a malformed club wallet",
		}
	}
	s.cache.Set(cacheKey, wallet, s.ttl)
	return wallet, nil
}

func walletExists(wallets []models.Wallet, id int64) bool {
	for _, w := range wallets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// SelectWallet persists the client-local active wallet choice.
func (s *WalletService) SelectWallet(ctx context.Context, userID, walletID int64) error {
	wallets, err := s.wallets(ctx, userID)
	if err != nil {
		return err
	}
	if !walletExists(wallets, walletID) {
		return &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "wallet does not belong to this user",
		}
	}
	return s.prefs.SaveActiveWallet(ctx, userID, walletID)
}

// GetTransactions returns a wallet's ledger, newest first.
func (s *WalletService) GetTransactions(ctx context.Context, walletID int64) ([]models.Transaction, error) {
	raw, err := s.provider.FetchTransactions(ctx, walletID)
	if err != nil {
		return nil, err
	}
	txns := normalize.Transactions(raw.Transactions)
	// ledger arrives append-ordered; screens show newest first
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
	return txns, nil
}

// Distribute awards points to the club members visible under the given
// criteria — like bulk attendance marking, the action covers exactly what
// the leader can see. Every touched balance cache is invalidated.
func (s *WalletService) Distribute(ctx context.Context, clubID int64, amount int64, reason string, criteria derive.RosterCriteria) (*responses.DistributeResult, error) {
	if amount <= 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "distribution amount must be positive",
		}
	}

	entries, err := s.members.members(ctx, clubID)
	if err != nil {
		return nil, err
	}
	visible := derive.FilterRoster(entries, nil, criteria)
	if len(visible) == 0 {
		return &responses.DistributeResult{Awarded: 0, Amount: amount}, nil
	}

	ids := make([]int64, 0, len(visible))
	for _, e := range visible {
		ids = append(ids, e.ID)
	}

	if err := s.provider.DistributePoints(ctx, clubID, ids, amount, reason); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixClubWallet) + fmt.Sprint(clubID))
	for _, id := range ids {
		s.cache.Delete(walletCacheKey(id))
	}
	logging.Info("points distributed",
		"club_id", clubID, "members", len(ids), "amount", amount)

	return &responses.DistributeResult{Awarded: len(ids), Amount: amount}, nil
}

// Redeem places a redemption order against one of the user's wallets and
// invalidates its cached balance. Balance sufficiency is checked locally
// first so an obviously failing order never leaves the client.
func (s *WalletService) Redeem(ctx context.Context, userID, walletID, itemID, quantity, unitCost int64) (*models.ActivityRecord, error) {
	if quantity <= 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "quantity must be positive",
		}
	}

	wallets, err := s.wallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	var wallet *models.Wallet
	for i := range wallets {
		if wallets[i].ID == walletID {
			wallet = &wallets[i]
			break
		}
	}
	if wallet == nil {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "wallet does not belong to this user",
		}
	}
	if unitCost > 0 && wallet.Balance < unitCost*quantity {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeInsufficientFund,
			Message: constants.GetErrorMessage(constants.ErrCodeInsufficientFund),
		}
	}

	raw, err := s.provider.RedeemItem(ctx, walletID, itemID, quantity)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(walletCacheKey(userID))

	orders := normalize.Orders([]dtos.RawOrder{*raw})
	if len(orders) == 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeServer,
			Message: "upstream returned a malformed order",
		}
	}
	return &orders[0], nil
}
