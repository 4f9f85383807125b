package session

import (
	"sort"
	"sync"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models"
)

// State is the lifecycle of one session-scoped mutable collection.
//
//	UNINITIALIZED → LOADED ⇄ EDITED → COMMITTING → LOADED | EDITED
//
// READ_ONLY is terminal: a coordinator opened for a historical date never
// leaves it.
type State string

const (
	StateUninitialized State = "UNINITIALIZED"
	StateLoaded        State = "LOADED"
	StateEdited        State = "EDITED"
	StateCommitting    State = "COMMITTING"
	StateReadOnly      State = "READ_ONLY"
)

// CoordinatorError is a local gate failure (never a remote error).
type CoordinatorError struct {
	Code    string
	Message string
}

func (e *CoordinatorError) Error() string { return e.Message }

func gateErr(code string) error {
	return &CoordinatorError{Code: code, Message: constants.GetErrorMessage(code)}
}

// RosterSession owns the normalized roster of one screen instance along
// with its local, not-yet-committed status edits. Local mutation always
// succeeds; only Commit talks to the network, and a failed commit leaves
// every local edit in place for retry.
type RosterSession struct {
	mu sync.Mutex

	clubID    int64
	date      string
	sessionID string
	state     State

	entries  []models.RosterEntry
	statuses models.StatusRecord
	notes    models.NoteAnnotation
	dirty    map[int64]bool
}

// NewRosterSession creates an UNINITIALIZED coordinator for a club and
// date. readOnly pins it to READ_ONLY for historical dates.
func NewRosterSession(clubID int64, date string, readOnly bool) *RosterSession {
	state := StateUninitialized
	if readOnly {
		state = StateReadOnly
	}
	return &RosterSession{
		clubID:   clubID,
		date:     date,
		state:    state,
		statuses: make(models.StatusRecord),
		notes:    make(models.NoteAnnotation),
		dirty:    make(map[int64]bool),
	}
}

// Load installs the fetched roster and, when a remote session already
// exists, its recorded statuses. Read-only coordinators accept the data
// but stay READ_ONLY.
func (s *RosterSession) Load(entries []models.RosterEntry, remote *models.AttendanceSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]models.RosterEntry, len(entries))
	copy(s.entries, entries)
	s.statuses = make(models.StatusRecord, len(entries))
	s.notes = make(models.NoteAnnotation)
	s.dirty = make(map[int64]bool)

	if remote != nil {
		s.sessionID = remote.ID
		for id, st := range remote.Statuses {
			s.statuses[id] = st
		}
		for id, note := range remote.Notes {
			s.notes[id] = note
		}
	}

	if s.state != StateReadOnly {
		s.state = StateLoaded
	}
}

// AttachSession records the remote session identity, typically after a
// create call or a duplicate-session recovery fetch.
func (s *RosterSession) AttachSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
}

// Mark applies one local status edit. Synchronous and in-memory; the only
// failure modes are the read-only gate and an unknown entry.
func (s *RosterSession) Mark(entryID int64, status constants.AttendanceStatus, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReadOnly {
		return gateErr(constants.ErrCodeSessionReadOnly)
	}
	if s.state == StateUninitialized {
		return gateErr(constants.ErrCodeSessionMissing)
	}
	if !s.hasEntry(entryID) {
		return &CoordinatorError{Code: constants.ErrCodeValidation, Message: "unknown roster entry"}
	}

	s.statuses[entryID] = status
	if note != "" {
		s.notes[entryID] = note
	}
	s.dirty[entryID] = true
	if s.state != StateCommitting {
		s.state = StateEdited
	}
	return nil
}

// MarkBulk assigns status to every entry matching the criteria — the
// entries the user can currently see. Hidden entries are not touched.
// Returns the number of entries changed.
func (s *RosterSession) MarkBulk(status constants.AttendanceStatus, criteria derive.RosterCriteria) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReadOnly {
		return 0, gateErr(constants.ErrCodeSessionReadOnly)
	}
	if s.state == StateUninitialized {
		return 0, gateErr(constants.ErrCodeSessionMissing)
	}

	visible := derive.FilterRoster(s.entries, s.statuses, criteria)
	for _, e := range visible {
		s.statuses[e.ID] = status
		s.dirty[e.ID] = true
	}
	if len(visible) > 0 && s.state != StateCommitting {
		s.state = StateEdited
	}
	return len(visible), nil
}

// PendingChanges returns the uncommitted edits in deterministic entry-id
// order.
func (s *RosterSession) PendingChanges() []models.StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked()
}

func (s *RosterSession) pendingLocked() []models.StatusChange {
	ids := make([]int64, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	changes := make([]models.StatusChange, 0, len(ids))
	for _, id := range ids {
		changes = append(changes, models.StatusChange{
			EntryID: id,
			Status:  s.statuses[id],
			Note:    s.notes[id],
		})
	}
	return changes
}

// BeginCommit gates and enters COMMITTING, returning the session id and
// the change set to send. Disallowed when no remote session exists, a
// commit is already in flight, the coordinator is read-only, or there is
// nothing to commit.
func (s *RosterSession) BeginCommit() (string, []models.StatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateReadOnly:
		return "", nil, gateErr(constants.ErrCodeSessionReadOnly)
	case s.state == StateCommitting:
		return "", nil, gateErr(constants.ErrCodeCommitInFlight)
	case s.state == StateUninitialized || s.sessionID == "":
		return "", nil, gateErr(constants.ErrCodeSessionMissing)
	case len(s.dirty) == 0:
		return "", nil, gateErr(constants.ErrCodeNothingToCommit)
	}

	s.state = StateCommitting
	return s.sessionID, s.pendingLocked(), nil
}

// FinishCommit resolves a COMMITTING coordinator. Success reconciles the
// edits (they are now remote truth) and returns to LOADED; failure keeps
// every local edit and returns to EDITED so the user can retry.
func (s *RosterSession) FinishCommit(commitErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCommitting {
		return
	}
	if commitErr != nil {
		s.state = StateEdited
		return
	}
	s.dirty = make(map[int64]bool)
	s.state = StateLoaded
}

// CanCommit reports whether a commit would pass the gates right now.
func (s *RosterSession) CanCommit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateEdited && s.sessionID != "" && len(s.dirty) > 0
}

// State returns the current lifecycle state.
func (s *RosterSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the attached remote session identity, "" before one
// exists.
func (s *RosterSession) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// PendingCount returns the number of entries with uncommitted edits.
func (s *RosterSession) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty)
}

// Snapshot returns copies of the roster and its derived status and note
// maps. Callers may filter and sort the copies freely.
func (s *RosterSession) Snapshot() ([]models.RosterEntry, models.StatusRecord, models.NoteAnnotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.RosterEntry, len(s.entries))
	copy(entries, s.entries)
	statuses := make(models.StatusRecord, len(s.statuses))
	for id, st := range s.statuses {
		statuses[id] = st
	}
	notes := make(models.NoteAnnotation, len(s.notes))
	for id, n := range s.notes {
		notes[id] = n
	}
	return entries, statuses, notes
}

func (s *RosterSession) hasEntry(entryID int64) bool {
	for _, e := range s.entries {
		if e.ID == entryID {
			return true
		}
	}
	return false
}
