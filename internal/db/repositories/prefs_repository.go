package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// PrefsRepository is the explicit key-value persistence port for
// client-local state: the active wallet selection and the floating-button
// position. Values load on screen mount, save on change, and clear on
// logout.
type PrefsRepository struct {
	db *sqlx.DB
}

const (
	prefKeyActiveWallet = "active_wallet_id"
	prefKeyButtonX      = "fab_position_x"
	prefKeyButtonY      = "fab_position_y"
)

func NewPrefsRepository(db *sqlx.DB) *PrefsRepository {
	return &PrefsRepository{db: db}
}

// EnsureSchema creates the prefs table if it does not exist.
func (r *PrefsRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS user_prefs (
			user_id    BIGINT      NOT NULL,
			key        TEXT        NOT NULL,
			value      TEXT        NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, key)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create prefs table: %w", err)
	}
	return nil
}

func (r *PrefsRepository) set(ctx context.Context, userID int64, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET value = $3, updated_at = now()`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("failed to save pref %s: %w", key, err)
	}
	return nil
}

func (r *PrefsRepository) get(ctx context.Context, userID int64, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowxContext(ctx,
		`SELECT value FROM user_prefs WHERE user_id = $1 AND key = $2`,
		userID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load pref %s: %w", key, err)
	}
	return value, true, nil
}

// SaveActiveWallet persists the client-local active wallet choice.
func (r *PrefsRepository) SaveActiveWallet(ctx context.Context, userID, walletID int64) error {
	return r.set(ctx, userID, prefKeyActiveWallet, strconv.FormatInt(walletID, 10))
}

// LoadActiveWallet returns the stored wallet id, or 0 when none is set.
func (r *PrefsRepository) LoadActiveWallet(ctx context.Context, userID int64) (int64, error) {
	value, ok, err := r.get(ctx, userID, prefKeyActiveWallet)
	if err != nil || !ok {
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, nil // ignore a corrupt value, the client falls back to default
	}
	return id, nil
}

// SavePosition persists the floating-button screen position on
// drag-release.
func (r *PrefsRepository) SavePosition(ctx context.Context, userID int64, x, y float64) error {
	if err := r.set(ctx, userID, prefKeyButtonX, strconv.FormatFloat(x, 'f', -1, 64)); err != nil {
		return err
	}
	return r.set(ctx, userID, prefKeyButtonY, strconv.FormatFloat(y, 'f', -1, 64))
}

// LoadPosition returns the stored position and whether one exists.
func (r *PrefsRepository) LoadPosition(ctx context.Context, userID int64) (x, y float64, ok bool, err error) {
	xs, okX, err := r.get(ctx, userID, prefKeyButtonX)
	if err != nil || !okX {
		return 0, 0, false, err
	}
	ys, okY, err := r.get(ctx, userID, prefKeyButtonY)
	if err != nil || !okY {
		return 0, 0, false, err
	}
	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil {
		return 0, 0, false, nil
	}
	return x, y, true, nil
}

// ClearAll removes every stored preference for a user, called on logout.
func (r *PrefsRepository) ClearAll(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_prefs WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear prefs: %w", err)
	}
	return nil
}
