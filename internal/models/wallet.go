package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds the spendable balance of one user. It is created lazily by
// the first ledger entry and never deleted.
type Wallet struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    string          `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"balance"`
	Currency  string          `gorm:"size:3;default:'AED'" json:"currency"`
	// Version increases with every change to the balance or to the
	// user's pending withdrawals.
	Version   int64           `gorm:"not null;default:0" json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Funds only enter through ledger entries.
	w.Balance = decimal.Zero
	return nil
}

// WalletSummary aggregates completed ledger entries per type. Amounts are
// absolute values.
type WalletSummary struct {
	UserID             string          `json:"user_id"`
	Balance            decimal.Decimal `json:"balance"`
	Currency           string          `json:"currency"`
	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals   decimal.Decimal `json:"total_withdrawals"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalPurchases     decimal.Decimal `json:"total_purchases"`
	TotalCommissions   decimal.Decimal `json:"total_commissions"`
	PendingWithdrawals decimal.Decimal `json:"pending_withdrawals"`
	// Version is the wallet version the summary was computed from.
	Version            int64           `json:"version"`
}
