package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

const (
	WithdrawalMethodBank   = "bank"
	WithdrawalMethodPayPal = "paypal"
	WithdrawalMethodCrypto = "crypto"
)

// WithdrawalRequest is a user's request to move funds out of the wallet.
// Funds move only on approval.
type WithdrawalRequest struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	UserID          string          `gorm:"size:36;not null;index" json:"user_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Status          string          `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Method          string          `gorm:"size:20;not null" json:"method"`
	PaymentDetails  JSON            `gorm:"type:jsonb" json:"payment_details"`
	ProcessedBy     *string         `gorm:"size:36" json:"processed_by,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	TransactionID   *string         `gorm:"size:36" json:"transaction_id,omitempty"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	User *Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == WithdrawalStatusPending
}
