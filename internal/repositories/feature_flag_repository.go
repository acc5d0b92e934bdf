package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"direct-chat-service/internal/models"
)

// featureFlagRowID pins the singleton row.
const featureFlagRowID = 1

// FeatureFlagRepository persists the singleton feature switch.
type FeatureFlagRepository interface {
	Get(ctx context.Context) (models.FeatureFlag, error)
	Set(ctx context.Context, enabled bool, updatedBy *uuid.UUID) (models.FeatureFlag, error)
}

// FeatureFlagRepo is a sqlx implementation of FeatureFlagRepository.
type FeatureFlagRepo struct {
	db *sqlx.DB
}

// NewFeatureFlagRepo constructs a FeatureFlagRepo.
func NewFeatureFlagRepo(db *sqlx.DB) *FeatureFlagRepo {
	return &FeatureFlagRepo{db: db}
}

// Get reads the flag, lazily creating it enabled on first access. The feature
// is opt-out: it stays on until an administrator turns it off.
func (r *FeatureFlagRepo) Get(ctx context.Context) (models.FeatureFlag, error) {
	flag := models.FeatureFlag{}
	err := r.db.GetContext(ctx, &flag,
		`SELECT is_enabled, updated_at, updated_by FROM feature_flags WHERE id=$1`, featureFlagRowID)
	if err == nil {
		return flag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.FeatureFlag{}, err
	}

	err = r.db.GetContext(ctx, &flag, `INSERT INTO feature_flags (id, is_enabled)
        VALUES ($1, TRUE)
        ON CONFLICT (id) DO UPDATE SET is_enabled = feature_flags.is_enabled
        RETURNING is_enabled, updated_at, updated_by`, featureFlagRowID)
	if err != nil {
		return models.FeatureFlag{}, err
	}
	return flag, nil
}

// Set overwrites the singleton.
func (r *FeatureFlagRepo) Set(ctx context.Context, enabled bool, updatedBy *uuid.UUID) (models.FeatureFlag, error) {
	flag := models.FeatureFlag{}
	err := r.db.GetContext(ctx, &flag, `INSERT INTO feature_flags (id, is_enabled, updated_at, updated_by)
        VALUES ($1, $2, NOW(), $3)
        ON CONFLICT (id) DO UPDATE SET is_enabled=$2, updated_at=NOW(), updated_by=$3
        RETURNING is_enabled, updated_at, updated_by`, featureFlagRowID, enabled, updatedBy)
	if err != nil {
		return models.FeatureFlag{}, err
	}
	return flag, nil
}
