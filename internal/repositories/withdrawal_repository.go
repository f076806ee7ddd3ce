package repositories

import (
	"context"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"gorm.io/gorm"
)

// WithdrawalFilter narrows the administrative withdrawal listing.
type WithdrawalFilter struct {
	Status string
	UserID string
}

type WithdrawalRepository interface {
	GetByID(ctx context.Context, id string) (*models.WithdrawalRequest, error)
	Count(ctx context.Context, filter WithdrawalFilter) (int64, error)
	List(ctx context.Context, filter WithdrawalFilter, offset, limit int) ([]models.WithdrawalRequest, error)
}

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.WithContext(ctx).Preload("User").First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get withdrawal request", apperrors.ErrWithdrawalNotFound)
	}
	return &req, nil
}

func (r *withdrawalRepository) scoped(ctx context.Context, filter WithdrawalFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	return q
}

func (r *withdrawalRepository) Count(ctx context.Context, filter WithdrawalFilter) (int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return 0, translate(err, "count withdrawal requests", nil)
	}
	return total, nil
}

func (r *withdrawalRepository) List(ctx context.Context, filter WithdrawalFilter, offset, limit int) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	err := r.scoped(ctx, filter).
		Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, translate(err, "list withdrawal requests", nil)
	}
	return reqs, nil
}
