package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"digitalseekho/internal/database"
)

// ProgressRepository keeps progress records in the progress_store table, one row per storage key.
// It satisfies progress.Storage.
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the payload stored under key. A missing row is reported with ok false and no error.
func (r *ProgressRepository) Get(key string) (string, bool, error) {
	var payload string
	query := "SELECT payload FROM progress_store WHERE storage_key = ?"
	err := r.db.QueryRow(query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read progress %q: %w", key, err)
	}
	return payload, true, nil
}

// Set inserts or replaces the payload stored under key
func (r *ProgressRepository) Set(key, value string) error {
	if _, err := r.db.Exec(r.db.GetDialect().UpsertProgressQuery(), key, value); err != nil {
		return fmt.Errorf("failed to save progress %q: %w", key, err)
	}
	return nil
}

// Remove deletes the row for key. Removing a missing key is not an error.
func (r *ProgressRepository) Remove(key string) error {
	if _, err := r.db.Exec("DELETE FROM progress_store WHERE storage_key = ?", key); err != nil {
		return fmt.Errorf("failed to remove progress %q: %w", key, err)
	}
	return nil
}

// Keys lists every storage key in the table, in key order
func (r *ProgressRepository) Keys() ([]string, error) {
	rows, err := r.db.Query("SELECT storage_key FROM progress_store ORDER BY storage_key")
	if err != nil {
		return nil, fmt.Errorf("failed to list progress keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
