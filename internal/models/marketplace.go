package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketplaceTransaction records a settled purchase of a listing.
type MarketplaceTransaction struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	BuyerID       string          `gorm:"size:36;not null;index" json:"buyer_id"`
	SellerID      string          `gorm:"size:36;not null;index" json:"seller_id"`
	ListingID     string          `gorm:"size:36;not null;index" json:"listing_id"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"sale_price"`
	PlatformFee   decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"platform_fee"`
	SellerEarning decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"seller_earning"`
	PropertyTitle string          `json:"property_title"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	Buyer    *Profile  `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller   *Profile  `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Property *Property `gorm:"foreignKey:ListingID" json:"property,omitempty"`
}

func (t *MarketplaceTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsParticipant reports whether userID is the buyer or the seller.
func (t *MarketplaceTransaction) IsParticipant(userID string) bool {
	return userID == t.BuyerID || userID == t.SellerID
}

// Counterparty returns the other participant.
func (t *MarketplaceTransaction) Counterparty(userID string) string {
	if userID == t.BuyerID {
		return t.SellerID
	}
	return t.BuyerID
}

// MarketplaceMessage is an append-only message between buyer and seller.
type MarketplaceMessage struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	TransactionID string    `gorm:"size:36;not null;index:idx_marketplace_msg_thread,priority:1" json:"transaction_id"`
	SenderID      string    `gorm:"size:36;not null" json:"sender_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"index:idx_marketplace_msg_thread,priority:2" json:"created_at"`

	Sender *Profile `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (m *MarketplaceMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
