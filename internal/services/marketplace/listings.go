package marketplace

import (
	"context"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	keys "propmarket/internal/utils/cache"
	"propmarket/internal/utils/pagination"
	"propmarket/internal/validation"

	"go.uber.org/zap"
)

func (s *service) ListProperty(ctx context.Context, userID string, req ListRequest) (property *models.Property, err error) {
	start := time.Now()
	defer func() { s.observe(OpListProperty, start, err) }()

	if err := validation.Listing(req.PropertyID, req.Price, req.DurationDays); err != nil {
		return nil, err
	}

	paid, err := s.membership.IsPaidMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, apperrors.ErrMembershipRequired
	}

	current, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, apperrors.ErrNotPropertyOwner
	}

	property, err = s.procs.ListPropertyInMarketplace(ctx, repositories.ListingParams{
		UserID:       userID,
		PropertyID:   req.PropertyID,
		Price:        req.Price,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateListings(ctx, property.ID)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeListingCreated, property.ID, property))
	s.logger.Info("property listed",
		zap.String("property_id", property.ID),
		zap.String("user_id", userID),
		zap.String("price", req.Price.StringFixed(2)),
		zap.Int("duration_days", req.DurationDays))
	return property, nil
}

func (s *service) RemoveProperty(ctx context.Context, userID, propertyID string) (property *models.Property, err error) {
	start := time.Now()
	defer func() { s.observe(OpRemoveProperty, start, err) }()

	current, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, apperrors.ErrNotPropertyOwner
	}
	if !current.IsInMarketplace {
		return current, nil
	}

	property, err = s.procs.RemovePropertyFromMarketplace(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	s.InvalidateListings(ctx, propertyID)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeListingRemoved, propertyID, property))
	s.logger.Info("property removed from marketplace", zap.String("property_id", propertyID), zap.String("user_id", userID))
	return property, nil
}

func (s *service) GetListings(ctx context.Context, filter repositories.ListingFilter, page pagination.Params) (pagination.Page[models.Property], error) {
	if filter.MinPrice.Valid && filter.MaxPrice.Valid && filter.MinPrice.Decimal.GreaterThan(filter.MaxPrice.Decimal) {
		return pagination.Page[models.Property]{}, apperrors.InvalidField("min_price", "must not exceed max_price")
	}
	now := s.now()
	return pagination.Fetch(page,
		func() (int64, error) { return s.properties.CountActiveListings(ctx, filter, now) },
		func(offset, limit int) ([]models.Property, error) {
			return s.properties.ListActiveListings(ctx, filter, now, offset, limit)
		},
	)
}

// GetListing returns an active listing. Cached entries are re-checked
// against the clock so an expired listing is never served.
func (s *service) GetListing(ctx context.Context, propertyID string) (*models.Property, error) {
	key := keys.ListingKey(propertyID)
	var cached models.Property
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("listing cache read failed", zap.String("property_id", propertyID), zap.Error(err))
	}
	if found && cached.IsListedAt(s.now()) {
		return &cached, nil
	}

	listing, err := s.properties.GetActiveListing(ctx, propertyID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, listing); err != nil {
		s.logger.Warn("listing cache write failed", zap.String("property_id", propertyID), zap.Error(err))
	}
	return listing, nil
}

func (s *service) InvalidateListings(ctx context.Context, propertyIDs ...string) {
	if len(propertyIDs) == 0 {
		return
	}
	cacheKeys := make([]string, 0, len(propertyIDs))
	for _, id := range propertyIDs {
		cacheKeys = append(cacheKeys, keys.ListingKey(id))
	}
	if err := s.cache.Delete(ctx, cacheKeys...); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Strings("keys", cacheKeys), zap.Error(err))
	}
}
