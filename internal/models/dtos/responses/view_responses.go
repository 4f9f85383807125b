package responses

import (
	"campus-experiment/clubdesk/internal/models"
)

// RosterView is the derived state for one attendance screen: the
// filtered/sorted roster, per-entry statuses and notes, summary buckets,
// and the coordinator state driving which actions are enabled.
type RosterView struct {
	SessionID    string                  `json:"session_id,omitempty"`
	Date         string                  `json:"date"`
	State        string                  `json:"state"`
	ReadOnly     bool                    `json:"read_only"`
	CanCommit    bool                    `json:"can_commit"`
	Entries      []RosterEntryView       `json:"entries"`
	Summary      map[string]int          `json:"summary"`
	Total        int                     `json:"total"`
	PendingEdits int                     `json:"pending_edits"`
}

type RosterEntryView struct {
	Entry  models.RosterEntry `json:"entry"`
	Status string             `json:"status"`
	Note   string             `json:"note,omitempty"`
}

// CatalogView is a filtered/sorted catalog page plus its aggregates.
type CatalogView struct {
	Items      []models.CatalogItem `json:"items"`
	Summary    map[string]int       `json:"summary"`
	Total      int                  `json:"total"`
	TotalStock int64                `json:"total_stock"`
}

// WalletsView lists a user's wallets with the client-local active choice.
type WalletsView struct {
	Wallets        []models.Wallet `json:"wallets"`
	ActiveWalletID int64           `json:"active_wallet_id"`
	TotalBalance   int64           `json:"total_balance"`
}

// ActivityView is the merged, ordered activity history with per-kind and
// per-status counts.
type ActivityView struct {
	Records       []models.ActivityRecord `json:"records"`
	CountsByKind  map[string]int          `json:"counts_by_kind"`
	CountsByState map[string]int          `json:"counts_by_state"`
	Total         int                     `json:"total"`
}

// CommitResult reports the outcome of an attendance commit.
type CommitResult struct {
	SessionID string `json:"session_id"`
	Applied   int    `json:"applied"`
	Recovered bool   `json:"recovered"` // true when a duplicate session was adopted
}

// DistributeResult reports a bulk point distribution.
type DistributeResult struct {
	Awarded int   `json:"awarded"`
	Amount  int64 `json:"amount"`
}

// PositionView is the persisted floating-button position.
type PositionView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
