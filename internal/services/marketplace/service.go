// Package marketplace runs property listings, purchases and the
// buyer/seller message threads. Money movement is delegated to the ledger
// procedures; this package adds the caller-side checks, caching and events.
package marketplace

import (
	"context"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/logger"
	"propmarket/internal/metrics"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/repositories/cache"
	"propmarket/internal/services/membership"
	"propmarket/internal/services/wallet"
	"propmarket/internal/utils/pagination"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	OpListProperty   = "marketplace.list"
	OpRemoveProperty = "marketplace.remove"
	OpPurchase       = "marketplace.purchase"
	OpSendMessage    = "marketplace.send_message"
)

type Service interface {
	ListProperty(ctx context.Context, userID string, req ListRequest) (*models.Property, error)
	RemoveProperty(ctx context.Context, userID, propertyID string) (*models.Property, error)
	GetListings(ctx context.Context, filter repositories.ListingFilter, page pagination.Params) (pagination.Page[models.Property], error)
	GetListing(ctx context.Context, propertyID string) (*models.Property, error)
	// InvalidateListings drops cached listings, e.g. after expiry.
	InvalidateListings(ctx context.Context, propertyIDs ...string)

	Purchase(ctx context.Context, buyerID string, req PurchaseRequest) (*models.MarketplaceTransaction, error)

	GetTransaction(ctx context.Context, viewer Viewer, transactionID string) (*models.MarketplaceTransaction, error)
	GetUserTransactions(ctx context.Context, userID, role string, page pagination.Params) (pagination.Page[models.MarketplaceTransaction], error)

	SendMessage(ctx context.Context, senderID, transactionID, content string) (*models.MarketplaceMessage, error)
	GetMessages(ctx context.Context, viewer Viewer, transactionID string) ([]models.MarketplaceMessage, error)
	MarkMessageAsRead(ctx context.Context, userID, messageID string) (*models.MarketplaceMessage, error)
}

type ListRequest struct {
	PropertyID   string          `json:"property_id"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
}

type PurchaseRequest struct {
	PropertyID string `json:"property_id"`
	// ExpectedPrice guards against buying after a re-price.
	ExpectedPrice decimal.NullDecimal `json:"expected_price"`
}

// Viewer identifies who is reading a transaction. Admins may read any.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

type Config struct {
	Now func() time.Time
}

type Dependencies struct {
	Properties  repositories.PropertyRepository
	Marketplace repositories.MarketplaceRepository
	Procedures  repositories.Procedures
	Membership  membership.Service
	Wallets     wallet.Service
	Cache       cache.Store
	Metrics     metrics.Collector
	Events      events.Publisher
	Logger      *zap.Logger
}

type service struct {
	properties  repositories.PropertyRepository
	marketplace repositories.MarketplaceRepository
	procs       repositories.Procedures
	membership  membership.Service
	wallets     wallet.Service
	cache       cache.Store
	metrics     metrics.Collector
	events      events.Publisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(deps Dependencies, config Config) Service {
	if deps.Properties == nil {
		panic("property repository is required")
	}
	if deps.Marketplace == nil {
		panic("marketplace repository is required")
	}
	if deps.Procedures == nil {
		panic("procedures are required")
	}
	if deps.Membership == nil {
		panic("membership service is required")
	}
	if deps.Wallets == nil {
		panic("wallet service is required")
	}
	if config.Now == nil {
		config.Now = func() time.Time { return time.Now().UTC() }
	}

	return &service{
		properties:  deps.Properties,
		marketplace: deps.Marketplace,
		procs:       deps.Procedures,
		membership:  deps.Membership,
		wallets:     deps.Wallets,
		cache:       cache.OrNoop(deps.Cache),
		metrics:     metrics.OrNoop(deps.Metrics),
		events:      events.OrNoop(deps.Events),
		logger:      logger.OrNop(deps.Logger).Named("marketplace"),
		now:         config.Now,
	}
}

func (s *service) observe(op string, start time.Time, err error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	if err != nil {
		s.metrics.RecordError(op, apperrors.Code(err))
	}
}
