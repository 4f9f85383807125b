package derive

import (
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models"
)

// Summaries are single-pass. Every element lands in exactly one bucket
// (missing or unknown statuses fall back to the default tag), so
// sum(buckets) == total == len(input) always holds.

// RosterSummary holds attendance counts per status plus the total.
type RosterSummary struct {
	Counts map[string]int
	Total  int
}

// SummarizeRoster counts entries per attendance status. Entries without a
// status record count against the default tag.
func SummarizeRoster(entries []models.RosterEntry, statuses models.StatusRecord) RosterSummary {
	counts := make(map[string]int, len(constants.AttendanceStatuses))
	for _, s := range constants.AttendanceStatuses {
		counts[string(s)] = 0
	}
	for _, e := range entries {
		status, ok := statuses[e.ID]
		if !ok {
			status = constants.DefaultAttendanceStatus
		}
		counts[string(status)]++
	}
	return RosterSummary{Counts: counts, Total: len(entries)}
}

// CatalogSummary holds item counts per lifecycle status plus stock and
// cost totals.
type CatalogSummary struct {
	Counts     map[string]int
	Total      int
	TotalStock int64
}

// SummarizeCatalog counts items per lifecycle status in one pass.
func SummarizeCatalog(items []models.CatalogItem) CatalogSummary {
	counts := make(map[string]int, len(constants.ItemStatuses))
	for _, s := range constants.ItemStatuses {
		counts[string(s)] = 0
	}
	var stock int64
	for _, i := range items {
		counts[string(i.Status)]++
		stock += i.Stock
	}
	return CatalogSummary{Counts: counts, Total: len(items), TotalStock: stock}
}

// ActivitySummary holds history counts per kind and per status.
type ActivitySummary struct {
	CountsByKind   map[string]int
	CountsByStatus map[string]int
	Total          int
}

// SummarizeActivity counts records per kind and status in one pass.
func SummarizeActivity(records []models.ActivityRecord) ActivitySummary {
	byKind := make(map[string]int)
	byStatus := make(map[string]int)
	for _, r := range records {
		byKind[string(r.Kind)]++
		byStatus[r.Status]++
	}
	return ActivitySummary{CountsByKind: byKind, CountsByStatus: byStatus, Total: len(records)}
}

// WalletTotal sums balances across a user's wallets.
func WalletTotal(wallets []models.Wallet) int64 {
	var total int64
	for _, w := range wallets {
		total += w.Balance
	}
	return total
}
