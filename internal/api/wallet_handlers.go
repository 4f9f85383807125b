package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos/requests"
	"campus-experiment/clubdesk/internal/workers"
)

// GetWallets lists the caller's wallets with the active selection.
func (h *Handlers) GetWallets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		view, err := h.deps.Services.Wallet.GetWallets(r.Context(), claims.UserID())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// SelectWallet stores the caller's active wallet choice.
func (h *Handlers) SelectWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.SelectWalletRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := h.deps.Services.Wallet.SelectWallet(r.Context(), claims.UserID(), req.WalletID); err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct {
			ActiveWalletID int64 `json:"active_wallet_id"`
		}{ActiveWalletID: req.WalletID})
	}
}

// GetTransactions returns a wallet's ledger, newest first.
func (h *Handlers) GetTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := strconv.ParseInt(chi.URLParam(r, "wallet_id"), 10, 64)
		if err != nil || walletID <= 0 {
			respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "invalid wallet id")
			return
		}

		txns, err := h.deps.Services.Wallet.GetTransactions(r.Context(), walletID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct {
			Transactions []models.Transaction `json:"transactions"`
		}{Transactions: txns})
	}
}

// GetClubWallet returns the caller's club wallet and registers the club
// with the background refresher.
func (h *Handlers) GetClubWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		wallet, err := h.deps.Services.Wallet.GetClubWallet(r.Context(), claims.ClubID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		select {
		case workers.TrackQueue <- claims.ClubID:
		default:
		}
		respondWithSuccess(w, http.StatusOK, wallet)
	}
}

// DistributePoints awards points to the filtered-in members of the
// caller's club.
func (h *Handlers) DistributePoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.DistributeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		criteria := derive.RosterCriteria{Search: req.Search, Role: req.Role, StaffOnly: req.StaffOnly}
		result, err := h.deps.Services.Wallet.Distribute(r.Context(), claims.ClubID, req.Amount, req.Reason, criteria)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, result)
	}
}

// Redeem places a redemption order against one of the caller's wallets.
func (h *Handlers) Redeem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.RedeemRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		record, err := h.deps.Services.Wallet.Redeem(r.Context(), claims.UserID(),
			req.WalletID, req.ItemID, req.Quantity, req.UnitCost)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		h.deps.Services.Activity.Invalidate(claims.UserID())
		respondWithSuccess(w, http.StatusCreated, record)
	}
}
