package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/metrics"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	gormModels "campus-experiment/clubdesk/internal/models/gorm"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
	"campus-experiment/clubdesk/internal/session"
)

// DraftStore persists in-progress attendance edits so a failed commit can
// be retried after a restart without losing work. The GORM draft
// repository is the production implementation.
type DraftStore interface {
	Upsert(ctx context.Context, clubID int64, date string, entryID int64, status constants.AttendanceStatus, note string) error
	List(ctx context.Context, clubID int64, date string) ([]gormModels.AttendanceDraft, error)
	Clear(ctx context.Context, clubID int64, date string) error
}

// AttendanceService drives the attendance roster screens: fenced loading,
// local edits through the session coordinator, draft persistence, and the
// commit with its duplicate-session recovery path.
//
// Membership is cached independently of the date. A date change
// re-fetches only the session data, not the roster.
type AttendanceService struct {
	provider  providers.CampusProvider
	cache     common.CacheInterface
	drafts    DraftStore
	fence     *session.Fence
	memberTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*session.RosterSession

	// today is injectable so tests can pin the clock
	today func() string
}

func NewAttendanceService(
	provider providers.CampusProvider,
	cache common.CacheInterface,
	drafts DraftStore,
	memberTTL time.Duration,
) *AttendanceService {
	return &AttendanceService{
		provider:  provider,
		cache:     cache,
		drafts:    drafts,
		fence:     session.NewFence(),
		memberTTL: memberTTL,
		sessions:  make(map[string]*session.RosterSession),
		today:     func() string { return time.Now().Format("2006-01-02") },
	}
}

func scopeKey(clubID int64, date string) string {
	return fmt.Sprintf("%d:%s", clubID, date)
}

// LoadRoster fetches the membership (cached) and the attendance session
// for a club and date, installs both in a fresh coordinator, and
// re-applies any persisted drafts. A load superseded by a newer one for
// the same scope is discarded with a stale-fetch error.
func (s *AttendanceService) LoadRoster(ctx context.Context, clubID int64, date string) error {
	fenceKey := "roster:" + scopeKey(clubID, date)
	token := s.fence.Issue(fenceKey)

	entries, err := s.members(ctx, clubID)
	if err != nil {
		return err
	}

	var remote *models.AttendanceSession
	raw, err := s.provider.FetchAttendanceSession(ctx, clubID, date)
	switch {
	case err == nil:
		remote = normalize.Session(raw)
	case providers.ErrorCode(err) == constants.ErrCodeNotFound:
		// No session for this date yet; the roster still renders.
		remote = nil
	default:
		return err
	}

	if !s.fence.Admit(fenceKey, token) {
		metrics.Default().StaleFetchesTotal.Inc()
		return staleFetchErr()
	}

	readOnly := date < s.today()
	coord := session.NewRosterSession(clubID, date, readOnly)
	coord.Load(entries, remote)

	if !readOnly && s.drafts != nil {
		drafts, err := s.drafts.List(ctx, clubID, date)
		if err != nil {
			logging.Warn("failed to load attendance drafts", "club_id", clubID, "date", date, "error", err.Error())
		} else {
			for _, d := range drafts {
				if err := coord.Mark(d.EntryID, d.Status, d.Note); err != nil {
					// Draft references a member no longer on the roster
					continue
				}
			}
		}
	}

	// The draft read above can outlast an entire competing load for the
	// same scope, so a token admitted before it may be stale by now.
	// Re-check under the session lock so an older coordinator never
	// overwrites the fresher one.
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fence.Admit(fenceKey, token) {
		metrics.Default().StaleFetchesTotal.Inc()
		return staleFetchErr()
	}
	s.sessions[scopeKey(clubID, date)] = coord
	return nil
}

func staleFetchErr() error {
	return &session.CoordinatorError{
		Code:    constants.ErrCodeStaleFetch,
		Message: constants.GetErrorMessage(constants.ErrCodeStaleFetch),
	}
}

// members returns the club roster, served from cache when fresh.
func (s *AttendanceService) members(ctx context.Context, clubID int64) ([]models.RosterEntry, error) {
	cacheKey := string(constants.CachePrefixMembers) + fmt.Sprint(clubID)

	if cached, found := s.cache.Get(cacheKey); found {
		if entries, ok := cached.([]models.RosterEntry); ok {
			return entries, nil
		}
	}

	raw, err := s.provider.FetchMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}
	entries := normalize.Members(raw.Members)
	s.cache.Set(cacheKey, entries, s.memberTTL)
	return entries, nil
}

// InvalidateMembers drops the cached roster of a club, e.g. after an
// application is approved.
func (s *AttendanceService) InvalidateMembers(clubID int64) {
	s.cache.Delete(string(constants.CachePrefixMembers) + fmt.Sprint(clubID))
}

// coordinator returns the loaded coordinator for a scope.
func (s *AttendanceService) coordinator(clubID int64, date string) (*session.RosterSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coord, ok := s.sessions[scopeKey(clubID, date)]
	if !ok {
		return nil, &session.CoordinatorError{
			Code:    constants.ErrCodeSessionMissing,
			Message: "roster not loaded for this club and date",
		}
	}
	return coord, nil
}

// CreateSession opens a remote attendance session for the scope. When the
// upstream reports a duplicate, the existing session is fetched and
// adopted instead of surfacing the error: the caller cannot tell the two
// outcomes apart except through the Recovered flag.
func (s *AttendanceService) CreateSession(ctx context.Context, clubID int64, date string) (*responses.CommitResult, error) {
	coord, err := s.coordinator(clubID, date)
	if err != nil {
		return nil, err
	}
	if coord.State() == session.StateReadOnly {
		return nil, &session.CoordinatorError{
			Code:    constants.ErrCodeSessionReadOnly,
			Message: constants.GetErrorMessage(constants.ErrCodeSessionReadOnly),
		}
	}

	raw, err := s.provider.CreateAttendanceSession(ctx, clubID, date)
	if err != nil {
		if !providers.IsDuplicate(err) {
			return nil, err
		}
		logging.Info("duplicate session on create, adopting existing",
			"club_id", clubID, "date", date)
		existing, fetchErr := s.provider.FetchAttendanceSession(ctx, clubID, date)
		if fetchErr != nil {
			return nil, fetchErr
		}
		remote := normalize.Session(existing)
		entries, _, _ := coord.Snapshot()
		coord.Load(entries, remote)
		metrics.Default().SessionsRecoveredTotal.Inc()
		return &responses.CommitResult{SessionID: remote.ID, Recovered: true}, nil
	}

	coord.AttachSession(raw.ID)
	return &responses.CommitResult{SessionID: raw.ID}, nil
}

// Mark applies one local status edit and persists it as a draft.
func (s *AttendanceService) Mark(ctx context.Context, clubID int64, date string, entryID int64, status constants.AttendanceStatus, note string) error {
	coord, err := s.coordinator(clubID, date)
	if err != nil {
		return err
	}
	if err := coord.Mark(entryID, status, note); err != nil {
		return err
	}
	if s.drafts != nil {
		if err := s.drafts.Upsert(ctx, clubID, date, entryID, status, note); err != nil {
			logging.Warn("failed to persist draft", "club_id", clubID, "entry_id", entryID, "error", err.Error())
		}
	}
	return nil
}

// BulkMark assigns a status to every entry visible under the given
// criteria and persists the resulting edits as drafts.
func (s *AttendanceService) BulkMark(ctx context.Context, clubID int64, date string, status constants.AttendanceStatus, criteria derive.RosterCriteria) (int, error) {
	coord, err := s.coordinator(clubID, date)
	if err != nil {
		return 0, err
	}
	changed, err := coord.MarkBulk(status, criteria)
	if err != nil {
		return 0, err
	}
	if s.drafts != nil {
		for _, change := range coord.PendingChanges() {
			if err := s.drafts.Upsert(ctx, clubID, date, change.EntryID, change.Status, change.Note); err != nil {
				logging.Warn("failed to persist bulk draft", "club_id", clubID, "entry_id", change.EntryID, "error", err.Error())
			}
		}
	}
	return changed, nil
}

// Commit sends the pending edits to the campus API. All-or-nothing from
// the caller's perspective: on failure local state is untouched and the
// user retries; on success the drafts are cleared.
func (s *AttendanceService) Commit(ctx context.Context, clubID int64, date string) (*responses.CommitResult, error) {
	coord, err := s.coordinator(clubID, date)
	if err != nil {
		return nil, err
	}

	sessionID, changes, err := coord.BeginCommit()
	if err != nil {
		return nil, err
	}

	ack, err := s.provider.CommitAttendance(ctx, sessionID, changes)
	coord.FinishCommit(err)
	if err != nil {
		return nil, err
	}

	if s.drafts != nil {
		if err := s.drafts.Clear(ctx, clubID, date); err != nil {
			logging.Warn("failed to clear drafts after commit", "club_id", clubID, "date", date, "error", err.Error())
		}
	}
	return &responses.CommitResult{SessionID: ack.SessionID, Applied: ack.Applied}, nil
}

// View derives the screen state for a scope: filtered, sorted, summarized.
func (s *AttendanceService) View(clubID int64, date string, criteria derive.RosterCriteria, staffFirst bool) (*responses.RosterView, error) {
	coord, err := s.coordinator(clubID, date)
	if err != nil {
		return nil, err
	}

	entries, statuses, notes := coord.Snapshot()
	visible := derive.FilterRoster(entries, statuses, criteria)
	visible = derive.SortRoster(visible, staffFirst)
	summary := derive.SummarizeRoster(visible, statuses)

	views := make([]responses.RosterEntryView, 0, len(visible))
	for _, e := range visible {
		status, ok := statuses[e.ID]
		if !ok {
			status = constants.DefaultAttendanceStatus
		}
		views = append(views, responses.RosterEntryView{
			Entry:  e,
			Status: string(status),
			Note:   notes[e.ID],
		})
	}

	return &responses.RosterView{
		SessionID:    coord.SessionID(),
		Date:         date,
		State:        string(coord.State()),
		ReadOnly:     coord.State() == session.StateReadOnly,
		CanCommit:    coord.CanCommit(),
		Entries:      views,
		Summary:      summary.Counts,
		Total:        summary.Total,
		PendingEdits: coord.PendingCount(),
	}, nil
}
