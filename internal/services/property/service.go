package property

import (
	"context"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
)

// Service is the read/update boundary of the property registry. Listing
// state is managed by the marketplace service.
type Service interface {
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	GetPropertiesByUserID(ctx context.Context, userID string) ([]models.Property, error)
	// UpdateProperty changes descriptive fields of a property the caller owns.
	UpdateProperty(ctx context.Context, userID, id string, fields map[string]interface{}) (*models.Property, error)
}

// ListingInvalidator drops cached marketplace listings.
type ListingInvalidator interface {
	InvalidateListings(ctx context.Context, propertyIDs ...string)
}

type service struct {
	repo     repositories.PropertyRepository
	listings ListingInvalidator
}

// NewService builds the property service. listings may be nil when no
// listing cache is in use.
func NewService(repo repositories.PropertyRepository, listings ListingInvalidator) Service {
	if repo == nil {
		panic("property repository is required")
	}
	return &service{repo: repo, listings: listings}
}

func (s *service) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetPropertiesByUserID(ctx context.Context, userID string) ([]models.Property, error) {
	props, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []models.Property{}
	}
	return props, nil
}

func (s *service) UpdateProperty(ctx context.Context, userID, id string, fields map[string]interface{}) (*models.Property, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, apperrors.ErrNotPropertyOwner
	}
	if len(fields) == 0 {
		return current, nil
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	// A listed property is cached with its descriptive fields.
	if s.listings != nil {
		s.listings.InvalidateListings(ctx, id)
	}
	return s.repo.GetByID(ctx, id)
}
