package wallet

import (
	"propmarket/internal/events"
	"propmarket/internal/metrics"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/repositories/cache"
	"propmarket/internal/services/payment"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds configuration for wallet operations
type Config struct {
	Currency string
}

// Dependencies are the collaborators of the wallet service. Repo and
// Procedures are required, the rest fall back to no-ops.
type Dependencies struct {
	Repo       repositories.WalletRepository
	Procedures repositories.Procedures
	Cache      cache.Store
	Gateway    payment.Gateway
	Metrics    metrics.Collector
	Events     events.Publisher
	Logger     *zap.Logger
}

type DepositRequest struct {
	Amount      decimal.Decimal
	Description string
	Metadata    models.JSON
}

type TopUpRequest struct {
	Amount          decimal.Decimal
	PaymentMethodID string
	IdempotencyKey  string
}

// DepositResult carries the posted entry and the balance read back after
// commit.
type DepositResult struct {
	Transaction *models.WalletTransaction `json:"transaction"`
	Balance     decimal.Decimal           `json:"balance"`
}
