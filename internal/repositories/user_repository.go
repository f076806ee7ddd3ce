package repositories

import (
	"context"

	"propmarket/internal/models"
)

// ProfileRepository mirrors identity provider users locally so listings,
// withdrawals and marketplace transactions can be joined with names and
// emails.
type ProfileRepository interface {
	// GetByID retrieves a profile by identity provider id
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// Upsert creates the profile or refreshes name, email and role
	Upsert(ctx context.Context, profile *models.Profile) error

	// SyncFromClaims upserts the profile described by token claims,
	// skipping the write while the cached copy is current
	SyncFromClaims(ctx context.Context, claims *models.UserClaims) error
}
