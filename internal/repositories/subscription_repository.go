package repositories

import (
	"context"

	"propmarket/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	IsPaidMember(ctx context.Context, userID string) (bool, error)
	GetActive(ctx context.Context, userID string) ([]models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// isPaidMember is shared with the procedures so membership is re-checked
// inside their transaction.
func isPaidMember(db *gorm.DB, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND plan_id <> ?", userID, models.SubscriptionStatusActive, models.PlanFree).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "check membership", nil)
	}
	return count > 0, nil
}

func (r *subscriptionRepository) IsPaidMember(ctx context.Context, userID string) (bool, error) {
	return isPaidMember(r.db.WithContext(ctx), userID)
}

func (r *subscriptionRepository) GetActive(ctx context.Context, userID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, translate(err, "list subscriptions", nil)
	}
	return subs, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return translate(err, "create subscription", nil)
	}
	return nil
}
