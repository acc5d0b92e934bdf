package models

import (
	"time"

	"github.com/google/uuid"
)

// FeatureFlag is the singleton switch for the direct-chat feature. The row is
// created lazily with IsEnabled=true on first read, so the feature is opt-out.
type FeatureFlag struct {
	IsEnabled bool       `db:"is_enabled" json:"is_enabled"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	UpdatedBy *uuid.UUID `db:"updated_by" json:"updated_by,omitempty"`
}
