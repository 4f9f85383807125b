package models

import "time"

// Wallet is a point balance owned by a user or a club. Balances change
// only through recorded transactions, never by direct overwrite.
type Wallet struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id"`
	OwnerKind string `json:"owner_kind"` // "user" or "club"
	ClubID    int64  `json:"club_id,omitempty"`
	ClubName  string `json:"club_name"`
	Balance   int64  `json:"balance"`
}

// Transaction is one append-only ledger entry against a wallet.
type Transaction struct {
	ID        int64     `json:"id"`
	WalletID  int64     `json:"wallet_id"`
	Amount    int64     `json:"amount"` // positive = credit, negative = debit
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
