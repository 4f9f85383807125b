package gorm

import (
	"time"

	"campus-experiment/clubdesk/internal/constants"
)

// AttendanceDraft is one locally applied, not-yet-committed status edit.
// Drafts survive process restarts so a failed commit can be retried later
// without the leader losing in-progress work.
type AttendanceDraft struct {
	ID        string                     `gorm:"column:id;primaryKey"`
	ClubID    int64                      `gorm:"column:club_id;uniqueIndex:idx_draft_scope,priority:1"`
	Date      string                     `gorm:"column:date;uniqueIndex:idx_draft_scope,priority:2"`
	EntryID   int64                      `gorm:"column:entry_id;uniqueIndex:idx_draft_scope,priority:3"`
	Status    constants.AttendanceStatus `gorm:"column:status"`
	Note      string                     `gorm:"column:note"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (AttendanceDraft) TableName() string {
	return "attendance_drafts"
}
