package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is a real-estate listing owned by a user. The marketplace
// columns hold at most one active peer-to-peer listing.
type Property struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      string          `gorm:"size:36;not null;index" json:"user_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Type        string          `gorm:"size:30;index" json:"type"`
	Status      string          `gorm:"size:20" json:"status"`
	Price       decimal.Decimal `gorm:"type:numeric(20,2)" json:"price"`
	Location    string          `json:"location"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Area        float64         `json:"area"`
	Images      JSON            `gorm:"type:jsonb" json:"images,omitempty"`

	IsInMarketplace        bool                `gorm:"not null;default:false;index" json:"is_in_marketplace"`
	MarketplacePrice       decimal.NullDecimal `gorm:"type:numeric(20,2)" json:"marketplace_price"`
	MarketplaceListingDate *time.Time          `gorm:"index" json:"marketplace_listing_date"`
	MarketplaceDuration    *int                `json:"marketplace_duration"`
	MarketplaceExpiresAt   *time.Time          `gorm:"index" json:"marketplace_expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *Profile `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsListedAt reports whether the property carries an unexpired listing.
func (p *Property) IsListedAt(now time.Time) bool {
	if !p.IsInMarketplace || !p.MarketplacePrice.Valid {
		return false
	}
	return p.MarketplaceExpiresAt == nil || p.MarketplaceExpiresAt.After(now)
}

// ClearedListingFields is the column set that removes a marketplace listing.
func ClearedListingFields() map[string]interface{} {
	return map[string]interface{}{
		"is_in_marketplace":        false,
		"marketplace_price":        nil,
		"marketplace_listing_date": nil,
		"marketplace_duration":     nil,
		"marketplace_expires_at":   nil,
	}
}
