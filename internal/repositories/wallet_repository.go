package repositories

import (
	"context"

	"propmarket/internal/models"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the read side of the wallet ledger. Every
// mutation goes through Procedures.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Wallet, error)

	CountTransactions(ctx context.Context, userID string) (int64, error)
	ListTransactions(ctx context.Context, userID string, offset, limit int) ([]models.WalletTransaction, error)
	SumCompletedByType(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
	SumCompleted(ctx context.Context, userID string) (decimal.Decimal, error)
	SumPendingWithdrawals(ctx context.Context, userID string) (decimal.Decimal, error)
}
