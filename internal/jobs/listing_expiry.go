package jobs

import (
	"context"
	"time"

	"propmarket/internal/events"
	"propmarket/internal/logger"
	"propmarket/internal/repositories"

	"go.uber.org/zap"
)

// ListingInvalidator drops cached listings.
type ListingInvalidator interface {
	InvalidateListings(ctx context.Context, propertyIDs ...string)
}

// ListingExpiry clears marketplace listings whose duration has elapsed.
type ListingExpiry struct {
	procs    repositories.Procedures
	listings ListingInvalidator
	events   events.Publisher
	logger   *zap.Logger
	now      func() time.Time
}

func NewListingExpiry(procs repositories.Procedures, listings ListingInvalidator, pub events.Publisher, l *zap.Logger) *ListingExpiry {
	return &ListingExpiry{
		procs:    procs,
		listings: listings,
		events:   events.OrNoop(pub),
		logger:   logger.OrNop(l),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (j *ListingExpiry) Name() string { return "listing_expiry" }

func (j *ListingExpiry) Run(ctx context.Context) error {
	ids, err := j.procs.ExpireListings(ctx, j.now())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	j.listings.InvalidateListings(ctx, ids...)
	evts := make([]events.Event, 0, len(ids))
	for _, id := range ids {
		evts = append(evts, events.New(events.TypeListingExpired, id, map[string]string{"property_id": id}))
	}
	events.PublishLogged(ctx, j.events, j.logger, evts...)
	j.logger.Info("expired marketplace listings", zap.Int("count", len(ids)))
	return nil
}
