package derive

import (
	"sort"
	"strings"

	"campus-experiment/clubdesk/internal/models"
)

// SortKey selects the ordering of a derived collection.
type SortKey string

const (
	SortCostAsc  SortKey = "cost_asc"
	SortCostDesc SortKey = "cost_desc"
	SortDateAsc  SortKey = "date_asc"
	SortDateDesc SortKey = "date_desc"
	SortStock    SortKey = "stock_desc"
	SortName     SortKey = "name"
)

// sortStable copies items and orders the copy with a stable sort, so
// equal-key elements keep their input order and the caller's slice is
// untouched.
func sortStable[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// SortCatalog orders catalog items by the given key. Unknown keys return
// the input order unchanged.
func SortCatalog(items []models.CatalogItem, key SortKey) []models.CatalogItem {
	switch key {
	case SortCostAsc:
		return sortStable(items, func(a, b models.CatalogItem) bool { return a.Cost < b.Cost })
	case SortCostDesc:
		return sortStable(items, func(a, b models.CatalogItem) bool { return a.Cost > b.Cost })
	case SortDateAsc:
		return sortStable(items, func(a, b models.CatalogItem) bool { return a.CreatedAt.Before(b.CreatedAt) })
	case SortDateDesc:
		return sortStable(items, func(a, b models.CatalogItem) bool { return a.CreatedAt.After(b.CreatedAt) })
	case SortStock:
		return sortStable(items, func(a, b models.CatalogItem) bool { return a.Stock > b.Stock })
	case SortName:
		return sortStable(items, func(a, b models.CatalogItem) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
	default:
		return sortStable(items, func(a, b models.CatalogItem) bool { return false })
	}
}

// SortActivity orders activity records by timestamp. The history screens
// show newest first.
func SortActivity(records []models.ActivityRecord, key SortKey) []models.ActivityRecord {
	switch key {
	case SortDateAsc:
		return sortStable(records, func(a, b models.ActivityRecord) bool { return a.Timestamp.Before(b.Timestamp) })
	default:
		return sortStable(records, func(a, b models.ActivityRecord) bool { return a.Timestamp.After(b.Timestamp) })
	}
}

// SortRoster orders roster entries by display name, staff first when
// staffFirst is set.
func SortRoster(entries []models.RosterEntry, staffFirst bool) []models.RosterEntry {
	return sortStable(entries, func(a, b models.RosterEntry) bool {
		if staffFirst && a.IsStaff != b.IsStaff {
			return a.IsStaff
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})
}
