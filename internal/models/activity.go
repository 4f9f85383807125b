package models

import (
	"time"

	"campus-experiment/clubdesk/internal/constants"
)

// ActivityRecord is one row in the unified activity history. It folds the
// four upstream sources (membership applications, club-creation
// applications, redemption orders, event registrations) into a single
// read-only shape; the pipeline never mutates these.
type ActivityRecord struct {
	ID        int64                  `json:"id"`
	Kind      constants.ActivityKind `json:"kind"`
	Title     string                 `json:"title"`
	Status    string                 `json:"status"`
	ClubID    int64                  `json:"club_id,omitempty"`
	ClubName  string                 `json:"club_name,omitempty"`
	Points    int64                  `json:"points,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
