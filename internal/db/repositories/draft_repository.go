package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-experiment/clubdesk/internal/constants"
	gormModels "campus-experiment/clubdesk/internal/models/gorm"
)

// DraftRepository persists in-progress attendance edits so a failed
// commit can be retried after a restart without losing work.
type DraftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a GORM-based draft repository
func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// Upsert stores one draft edit, replacing any existing draft for the
// same club, date and entry.
func (r *DraftRepository) Upsert(ctx context.Context, clubID int64, date string, entryID int64, status constants.AttendanceStatus, note string) error {
	draft := gormModels.AttendanceDraft{
		ID:      uuid.NewString(),
		ClubID:  clubID,
		Date:    date,
		EntryID: entryID,
		Status:  status,
		Note:    note,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "club_id"}, {Name: "date"}, {Name: "entry_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
		}).
		Create(&draft).Error
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

// List returns every draft for a club and date in entry-id order.
func (r *DraftRepository) List(ctx context.Context, clubID int64, date string) ([]gormModels.AttendanceDraft, error) {
	var drafts []gormModels.AttendanceDraft
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND date = ?", clubID, date).
		Order("entry_id").
		Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// Clear removes every draft for a club and date, called after a
// successful commit reconciles the edits with the upstream.
func (r *DraftRepository) Clear(ctx context.Context, clubID int64, date string) error {
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND date = ?", clubID, date).
		Delete(&gormModels.AttendanceDraft{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear drafts: %w", err)
	}
	return nil
}
