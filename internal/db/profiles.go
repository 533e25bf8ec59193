package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerkit/cvforge/internal/types"
)

// SaveProfile stores a raw profile record and returns its id
func (db *DB) SaveProfile(ctx context.Context, profile *types.RAGProfile) (uuid.UUID, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (content) VALUES ($1) RETURNING id`,
		data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves a profile by id. Returns nil when not found.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*types.RAGProfile, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.RAGProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}
