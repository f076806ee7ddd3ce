package wallet

import (
	"context"

	"propmarket/internal/models"
	"propmarket/internal/utils/pagination"

	"github.com/shopspring/decimal"
)

// Service defines the main wallet service interface
type Service interface {
	// GetWallet returns the stored wallet, or ErrWalletNotFound if the user
	// never had a ledger entry.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	// GetBalance treats a missing wallet as a zero balance.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetWalletSummary(ctx context.Context, userID string) (*models.WalletSummary, error)
	GetTransactions(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.WalletTransaction], error)

	DepositFunds(ctx context.Context, userID string, req DepositRequest) (*DepositResult, error)
	TopUp(ctx context.Context, userID string, req TopUpRequest) (*DepositResult, error)

	// InvalidateCache drops cached wallet state for the given users.
	InvalidateCache(ctx context.Context, userIDs ...string)
}
