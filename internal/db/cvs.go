package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerkit/cvforge/internal/types"
)

// CVRecord is a stored CV row. The document itself is immutable once
// written; regeneration creates a new row.
type CVRecord struct {
	ID        uuid.UUID    `json:"id"`
	ProfileID uuid.UUID    `json:"profile_id"`
	CV        types.CVData `json:"cv"`
	CreatedAt time.Time    `json:"created_at"`
}

// SaveCV stores a generated CV for a profile and returns its id
func (db *DB) SaveCV(ctx context.Context, profileID uuid.UUID, cv *types.CVData) (uuid.UUID, error) {
	data, err := json.Marshal(cv)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal cv: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cvs (profile_id, content) VALUES ($1, $2) RETURNING id`,
		profileID, data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save cv: %w", err)
	}
	return id, nil
}

// GetCV retrieves a stored CV by id. Returns nil when not found.
func (db *DB) GetCV(ctx context.Context, id uuid.UUID) (*CVRecord, error) {
	var record CVRecord
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile_id, content, created_at FROM cvs WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.ProfileID, &content, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cv: %w", err)
	}

	if err := json.Unmarshal(content, &record.CV); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cv: %w", err)
	}
	return &record, nil
}

// ListCVs returns the stored CVs for a profile, newest first
func (db *DB) ListCVs(ctx context.Context, profileID uuid.UUID) ([]CVRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, content, created_at FROM cvs
		 WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	defer rows.Close()

	records := make([]CVRecord, 0)
	for rows.Next() {
		var record CVRecord
		var content []byte
		if err := rows.Scan(&record.ID, &record.ProfileID, &content, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cv row: %w", err)
		}
		if err := json.Unmarshal(content, &record.CV); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cv: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteCV removes a stored CV. The boolean reports whether the id existed.
func (db *DB) DeleteCV(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cv: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
