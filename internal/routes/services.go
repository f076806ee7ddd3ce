package routes

import (
	"propmarket/internal/config"
	"propmarket/internal/events"
	"propmarket/internal/metrics"
	"propmarket/internal/repositories"
	"propmarket/internal/repositories/cache"
	"propmarket/internal/services/marketplace"
	"propmarket/internal/services/membership"
	"propmarket/internal/services/payment"
	"propmarket/internal/services/property"
	"propmarket/internal/services/wallet"
	"propmarket/internal/services/withdrawal"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the process level resources the API is built from.
// Cache, Gateway, Metrics and Events may be nil.
type Dependencies struct {
	DB         *gorm.DB
	Procedures repositories.Procedures
	Cache      *cache.CacheService
	Gateway    payment.Gateway
	Metrics    metrics.Collector
	Events     events.Publisher
	Logger     *zap.Logger
	Config     *config.Config
}

// Services groups the façades shared by the HTTP layer and the jobs.
type Services struct {
	Profiles    repositories.ProfileRepository
	Wallet      wallet.Service
	Withdrawal  withdrawal.Service
	Membership  membership.Service
	Property    property.Service
	Marketplace marketplace.Service
}

// BuildServices wires repositories into services in dependency order.
func BuildServices(deps Dependencies) *Services {
	var store cache.Store
	if deps.Cache != nil {
		store = deps.Cache
	}

	propertyRepo := repositories.NewPropertyRepository(deps.DB)
	membershipService := membership.NewService(repositories.NewSubscriptionRepository(deps.DB))

	walletService := wallet.NewService(wallet.Dependencies{
		Repo:       repositories.NewWalletRepository(deps.DB),
		Procedures: deps.Procedures,
		Cache:      store,
		Gateway:    deps.Gateway,
		Metrics:    deps.Metrics,
		Events:     deps.Events,
		Logger:     deps.Logger,
	}, wallet.Config{Currency: deps.Config.Marketplace.Currency})

	withdrawalService := withdrawal.NewService(withdrawal.Dependencies{
		Repo:       repositories.NewWithdrawalRepository(deps.DB),
		Procedures: deps.Procedures,
		Wallets:    walletService,
		Metrics:    deps.Metrics,
		Events:     deps.Events,
		Logger:     deps.Logger,
	})

	marketplaceService := marketplace.NewService(marketplace.Dependencies{
		Properties:  propertyRepo,
		Marketplace: repositories.NewMarketplaceRepository(deps.DB),
		Procedures:  deps.Procedures,
		Membership:  membershipService,
		Wallets:     walletService,
		Cache:       store,
		Metrics:     deps.Metrics,
		Events:      deps.Events,
		Logger:      deps.Logger,
	}, marketplace.Config{})

	return &Services{
		Profiles:    repositories.NewProfileRepository(deps.DB, store),
		Wallet:      walletService,
		Withdrawal:  withdrawalService,
		Membership:  membershipService,
		Property:    property.NewService(propertyRepo, marketplaceService),
		Marketplace: marketplaceService,
	}
}
