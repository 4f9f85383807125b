package derive

import (
	"strings"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models"
)

// Filtering is conjunctive: every set criterion must hold, an unset
// criterion is always true. Filtering never reorders; survivors keep the
// stable sub-order of the input.

// apply returns the elements of items satisfying every predicate, in
// input order.
func apply[T any](items []T, preds ...func(T) bool) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// matchesSearch is a case-insensitive substring match over the given
// fields. An empty term always matches.
func matchesSearch(term string, fields ...string) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// wildcardEqual treats "" and the "all" sentinel as no constraint.
func wildcardEqual(selected, actual string) bool {
	if selected == "" || strings.EqualFold(selected, constants.WildcardAll) {
		return true
	}
	return strings.EqualFold(selected, actual)
}

// StartOfDay returns t normalized to 00:00:00.000.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t normalized to 23:59:59.999999999, making the upper
// range bound inclusive through end of day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// inRange checks [from, to] membership with open (nil) ends unbounded.
// The bounds are day-normalized: from inclusive at start of day, to
// inclusive through end of day.
func inRange(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(StartOfDay(*from)) {
		return false
	}
	if to != nil && ts.After(EndOfDay(*to)) {
		return false
	}
	return true
}

// intersects reports whether any selected tag appears in the item's tag
// set. An empty selection always matches.
func intersects(selected, actual []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		for _, a := range actual {
			if strings.EqualFold(s, a) {
				return true
			}
		}
	}
	return false
}

// RosterCriteria filters roster entries. Status matches against the
// session's status record, so the criteria need both pieces.
type RosterCriteria struct {
	Search    string
	Status    string // attendance status or "all"
	Role      string // club role or "all"
	StaffOnly bool
}

// FilterRoster returns the entries matching every set criterion, in
// input order.
func FilterRoster(entries []models.RosterEntry, statuses models.StatusRecord, c RosterCriteria) []models.RosterEntry {
	return apply(entries,
		func(e models.RosterEntry) bool {
			return matchesSearch(c.Search, e.DisplayName, e.StudentCode)
		},
		func(e models.RosterEntry) bool {
			return wildcardEqual(c.Role, string(e.Role))
		},
		func(e models.RosterEntry) bool {
			return !c.StaffOnly || e.IsStaff
		},
		func(e models.RosterEntry) bool {
			if c.Status == "" || strings.EqualFold(c.Status, constants.WildcardAll) {
				return true
			}
			status, ok := statuses[e.ID]
			if !ok {
				status = constants.DefaultAttendanceStatus
			}
			return strings.EqualFold(c.Status, string(status))
		},
	)
}

// CatalogCriteria filters catalog items.
type CatalogCriteria struct {
	Search  string
	Type    string // item type or "all"
	Status  string // lifecycle status or "all"
	Tags    []string
	MaxCost int64 // 0 = unbounded
	From    *time.Time
	To      *time.Time
}

// FilterCatalog returns the items matching every set criterion, in input
// order.
func FilterCatalog(items []models.CatalogItem, c CatalogCriteria) []models.CatalogItem {
	return apply(items,
		func(i models.CatalogItem) bool {
			return matchesSearch(c.Search, i.Name, i.Description)
		},
		func(i models.CatalogItem) bool {
			return wildcardEqual(c.Type, i.Type)
		},
		func(i models.CatalogItem) bool {
			return wildcardEqual(c.Status, string(i.Status))
		},
		func(i models.CatalogItem) bool {
			return intersects(c.Tags, i.Tags)
		},
		func(i models.CatalogItem) bool {
			return c.MaxCost == 0 || i.Cost <= c.MaxCost
		},
		func(i models.CatalogItem) bool {
			return inRange(i.CreatedAt, c.From, c.To)
		},
	)
}

// ActivityCriteria filters the merged activity history.
type ActivityCriteria struct {
	Search string
	Kind   string // activity kind or "all"
	Status string // status value or "all"
	From   *time.Time
	To     *time.Time
}

// FilterActivity returns the records matching every set criterion, in
// input order.
func FilterActivity(records []models.ActivityRecord, c ActivityCriteria) []models.ActivityRecord {
	return apply(records,
		func(r models.ActivityRecord) bool {
			return matchesSearch(c.Search, r.Title, r.ClubName)
		},
		func(r models.ActivityRecord) bool {
			return wildcardEqual(c.Kind, string(r.Kind))
		},
		func(r models.ActivityRecord) bool {
			return wildcardEqual(c.Status, r.Status)
		},
		func(r models.ActivityRecord) bool {
			return inRange(r.Timestamp, c.From, c.To)
		},
	)
}
