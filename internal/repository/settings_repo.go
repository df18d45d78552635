package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dictate/internal/database"
)

// Setting keys of the persisted practice session
const (
	KeySentences    = "sentences"
	KeyCurrentIndex = "current_index"
	KeyPreferences  = "preferences"
)

// ErrNotFound is returned when a setting has never been written
var ErrNotFound = errors.New("setting not found")

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key
func (r *SettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	return getSetting(ctx, r.db, key)
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(ctx, r.db, key, value)
}

// SaveLibrary writes the sentence document and the current index together
func (r *SettingsRepository) SaveLibrary(ctx context.Context, document []byte, index string) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		if err := setSetting(ctx, tx, KeySentences, string(document)); err != nil {
			return err
		}
		return setSetting(ctx, tx, KeyCurrentIndex, index)
	})
}

func getSetting(ctx context.Context, q database.DBTX, key string) (string, error) {
	var value string
	query := `SELECT setting_value FROM settings WHERE setting_key = ?`
	err := q.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func setSetting(ctx context.Context, q database.DBTX, key, value string) error {
	if _, err := q.ExecContext(ctx, q.GetDialect().UpsertSettingQuery(), key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
