package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger entry types. Deposits and sales credit the wallet, the rest debit it.
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypePurchase   = "purchase"
	TransactionTypeSale       = "sale"
	TransactionTypeCommission = "commission"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// WalletTransaction is one append-only ledger entry. Amount is signed.
type WalletTransaction struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	UserID           string          `gorm:"size:36;not null;index:idx_wallet_tx_user_created,priority:1" json:"user_id"`
	Type             string          `gorm:"size:20;not null;index" json:"type"`
	Amount           decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	RelatedListingID *string         `gorm:"size:36;index" json:"related_listing_id,omitempty"`
	Status           string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	Description      string          `json:"description"`
	Metadata         JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time       `gorm:"index:idx_wallet_tx_user_created,priority:2" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TransitionTo moves a pending entry to a terminal status. Completed and
// failed entries are immutable.
func (t *WalletTransaction) TransitionTo(status string) error {
	if t.Status != TransactionStatusPending {
		return fmt.Errorf("transaction %s is %s and cannot change", t.ID, t.Status)
	}
	switch status {
	case TransactionStatusCompleted, TransactionStatusFailed:
		t.Status = status
		return nil
	default:
		return fmt.Errorf("invalid transaction status %q", status)
	}
}

// IsCredit reports whether the entry type adds funds.
func IsCredit(txType string) bool {
	return txType == TransactionTypeDeposit || txType == TransactionTypeSale
}

// SignedAmount applies the ledger sign convention to a positive magnitude.
func SignedAmount(txType string, magnitude decimal.Decimal) decimal.Decimal {
	if IsCredit(txType) {
		return magnitude.Abs()
	}
	return magnitude.Abs().Neg()
}
