package derive

import (
	"testing"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models"
)

func TestSummarizeRoster_BucketsReconcileWithTotal(t *testing.T) {
	entries := []models.RosterEntry{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
	}
	statuses := models.StatusRecord{
		1: constants.AttendancePresent,
		2: constants.AttendancePresent,
		3: constants.AttendanceLate,
		// 4 and 5 unrecorded, fall back to absent
	}

	summary := SummarizeRoster(entries, statuses)

	if summary.Total != len(entries) {
		t.Errorf("Expected total %d, got %d", len(entries), summary.Total)
	}
	sum := 0
	for _, c := range summary.Counts {
		sum += c
	}
	if sum != summary.Total {
		t.Errorf("sum(buckets)=%d must equal total=%d", sum, summary.Total)
	}
	if summary.Counts["present"] != 2 || summary.Counts["late"] != 1 || summary.Counts["absent"] != 2 {
		t.Errorf("Unexpected buckets: %v", summary.Counts)
	}
}

func TestSummarizeRoster_EmptyCollection(t *testing.T) {
	summary := SummarizeRoster(nil, nil)
	if summary.Total != 0 {
		t.Errorf("Expected total 0, got %d", summary.Total)
	}
	// Every closed-set bucket present even when empty
	if len(summary.Counts) != len(constants.AttendanceStatuses) {
		t.Errorf("Expected %d buckets, got %d", len(constants.AttendanceStatuses), len(summary.Counts))
	}
}

func TestSummarizeCatalog(t *testing.T) {
	items := []models.CatalogItem{
		{ID: 1, Status: constants.ItemActive, Stock: 5},
		{ID: 2, Status: constants.ItemActive, Stock: 2},
		{ID: 3, Status: constants.ItemArchived, Stock: 9},
	}

	summary := SummarizeCatalog(items)
	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.Counts["active"] != 2 || summary.Counts["archived"] != 1 {
		t.Errorf("Unexpected buckets: %v", summary.Counts)
	}
	if summary.TotalStock != 16 {
		t.Errorf("Expected stock 16, got %d", summary.TotalStock)
	}
	sum := 0
	for _, c := range summary.Counts {
		sum += c
	}
	if sum != summary.Total {
		t.Errorf("sum(buckets)=%d must equal total=%d", sum, summary.Total)
	}
}

func TestSummarizeActivity(t *testing.T) {
	records := []models.ActivityRecord{
		{Kind: constants.ActivityRedemptionOrder, Status: "completed"},
		{Kind: constants.ActivityRedemptionOrder, Status: "pending"},
		{Kind: constants.ActivityEventRegistration, Status: "approved"},
	}

	summary := SummarizeActivity(records)
	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.CountsByKind["redemption_order"] != 2 {
		t.Errorf("Unexpected kind buckets: %v", summary.CountsByKind)
	}
	kindSum := 0
	for _, c := range summary.CountsByKind {
		kindSum += c
	}
	if kindSum != summary.Total {
		t.Error("Kind buckets must reconcile with total")
	}
}

func TestWalletTotal(t *testing.T) {
	wallets := []models.Wallet{
		{Balance: 100}, {Balance: 30}, {Balance: 0},
	}
	if got := WalletTotal(wallets); got != 130 {
		t.Errorf("Expected 130, got %d", got)
	}
}
