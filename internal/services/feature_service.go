package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"direct-chat-service/internal/models"
	"direct-chat-service/internal/repositories"
)

// FeatureService owns the direct-chat feature switch.
type FeatureService struct {
	flags repositories.FeatureFlagRepository
}

// NewFeatureService constructs a FeatureService.
func NewFeatureService(flags repositories.FeatureFlagRepository) *FeatureService {
	return &FeatureService{flags: flags}
}

// IsFeatureActive reports whether direct chat is currently enabled. The flag
// row is lazily created enabled, so the answer is true until an administrator
// turns the feature off.
func (s *FeatureService) IsFeatureActive(ctx context.Context) (bool, error) {
	flag, err := s.flags.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("read feature flag: %w", err)
	}
	return flag.IsEnabled, nil
}

// GetFlag returns the full flag record.
func (s *FeatureService) GetFlag(ctx context.Context) (models.FeatureFlag, error) {
	return s.flags.Get(ctx)
}

// SetFeatureStatus overwrites the singleton flag.
func (s *FeatureService) SetFeatureStatus(ctx context.Context, enabled bool, updatedBy uuid.UUID) (models.FeatureFlag, error) {
	return s.flags.Set(ctx, enabled, &updatedBy)
}
