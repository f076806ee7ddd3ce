package repositories

import (
	"context"
	"strings"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingFilter narrows the active marketplace listing query. Zero values
// mean no constraint.
type ListingFilter struct {
	MinPrice     decimal.NullDecimal
	MaxPrice     decimal.NullDecimal
	Type         string
	Location     string
	MinBedrooms  int
	MinBathrooms int
}

// PropertyRepository is the registry boundary for properties. Marketplace
// columns are written only by Procedures.
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Property, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	GetActiveListing(ctx context.Context, id string, now time.Time) (*models.Property, error)
	CountActiveListings(ctx context.Context, filter ListingFilter, now time.Time) (int64, error)
	ListActiveListings(ctx context.Context, filter ListingFilter, now time.Time, offset, limit int) ([]models.Property, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// editableColumns may change through Update. Ownership and the marketplace
// columns are written only by the procedures.
var editableColumns = map[string]bool{
	"title":       true,
	"description": true,
	"type":        true,
	"status":      true,
	"price":       true,
	"location":    true,
	"bedrooms":    true,
	"bathrooms":   true,
	"area":        true,
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return translate(err, "create property", nil)
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get property", apperrors.ErrPropertyNotFound)
	}
	return &property, nil
}

func (r *propertyRepository) GetByUserID(ctx context.Context, userID string) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, translate(err, "list properties", nil)
	}
	return properties, nil
}

// Update changes descriptive fields.
func (r *propertyRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	for col := range fields {
		if !editableColumns[col] {
			return apperrors.InvalidField(col, "cannot be changed through a property update")
		}
	}
	res := r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "update property", nil)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}

func activeListings(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Model(&models.Property{}).
		Where("is_in_marketplace = ?", true).
		Where("marketplace_price IS NOT NULL").
		Where("marketplace_expires_at IS NULL OR marketplace_expires_at > ?", now)
}

func (f ListingFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MinPrice.Valid {
		q = q.Where("marketplace_price >= ?", f.MinPrice.Decimal)
	}
	if f.MaxPrice.Valid {
		q = q.Where("marketplace_price <= ?", f.MaxPrice.Decimal)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(loc))+"%")
	}
	if f.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.MinBedrooms)
	}
	if f.MinBathrooms > 0 {
		q = q.Where("bathrooms >= ?", f.MinBathrooms)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *propertyRepository) GetActiveListing(ctx context.Context, id string, now time.Time) (*models.Property, error) {
	var property models.Property
	err := activeListings(r.db.WithContext(ctx), now).
		Preload("Owner").
		First(&property, "properties.id = ?", id).Error
	if err != nil {
		return nil, translate(err, "get listing", apperrors.ErrListingNotFound)
	}
	return &property, nil
}

func (r *propertyRepository) CountActiveListings(ctx context.Context, filter ListingFilter, now time.Time) (int64, error) {
	var total int64
	if err := filter.apply(activeListings(r.db.WithContext(ctx), now)).Count(&total).Error; err != nil {
		return 0, translate(err, "count listings", nil)
	}
	return total, nil
}

func (r *propertyRepository) ListActiveListings(ctx context.Context, filter ListingFilter, now time.Time, offset, limit int) ([]models.Property, error) {
	var properties []models.Property
	err := filter.apply(activeListings(r.db.WithContext(ctx), now)).
		Preload("Owner").
		Order("marketplace_listing_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, translate(err, "list listings", nil)
	}
	return properties, nil
}
