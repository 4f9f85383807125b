package models

import (
	"time"

	"campus-experiment/clubdesk/internal/constants"
)

// RosterEntry is one person's row in a per-session list. Identity and
// profile fields are immutable within a screen session; only the entry's
// status record and note change locally.
type RosterEntry struct {
	ID          int64              `json:"id"`
	DisplayName string             `json:"display_name"`
	StudentCode string             `json:"student_code"`
	AvatarURL   string             `json:"avatar_url,omitempty"`
	Role        constants.ClubRole `json:"role"`
	IsStaff     bool               `json:"is_staff"`
	JoinedAt    time.Time          `json:"joined_at"`
}

// StatusRecord maps roster entry ids to their attendance tag for one
// session. At most one record per entry per session.
type StatusRecord map[int64]constants.AttendanceStatus

// NoteAnnotation maps roster entry ids to free-text notes, persisted
// together with the status records on commit.
type NoteAnnotation map[int64]string

// AttendanceSession is the server-side scope for one day's attendance.
type AttendanceSession struct {
	ID       string       `json:"id"`
	ClubID   int64        `json:"club_id"`
	Date     string       `json:"date"` // YYYY-MM-DD
	Statuses StatusRecord `json:"statuses"`
	Notes    NoteAnnotation `json:"notes"`
}

// StatusChange is one pending edit sent to the campus API on commit.
type StatusChange struct {
	EntryID int64                      `json:"entry_id"`
	Status  constants.AttendanceStatus `json:"status"`
	Note    string                     `json:"note,omitempty"`
}
