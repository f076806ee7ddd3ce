package repositories

import (
	"context"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Participant roles for transaction listings.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAll    = "all"
)

type MarketplaceRepository interface {
	GetTransaction(ctx context.Context, id string) (*models.MarketplaceTransaction, error)
	CountUserTransactions(ctx context.Context, userID, role string) (int64, error)
	ListUserTransactions(ctx context.Context, userID, role string, offset, limit int) ([]models.MarketplaceTransaction, error)

	CreateMessage(ctx context.Context, msg *models.MarketplaceMessage) error
	ListMessages(ctx context.Context, transactionID string) ([]models.MarketplaceMessage, error)
	GetMessage(ctx context.Context, id string) (*models.MarketplaceMessage, error)
	MarkMessageRead(ctx context.Context, id string) error
}

type marketplaceRepository struct {
	db *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{db: db}
}

func (r *marketplaceRepository) GetTransaction(ctx context.Context, id string) (*models.MarketplaceTransaction, error) {
	var mt models.MarketplaceTransaction
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Property").
		First(&mt, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "get marketplace transaction", apperrors.ErrTransactionNotFound)
	}
	return &mt, nil
}

func (r *marketplaceRepository) byParticipant(ctx context.Context, userID, role string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.MarketplaceTransaction{})
	switch role {
	case RoleBuyer:
		return q.Where("buyer_id = ?", userID)
	case RoleSeller:
		return q.Where("seller_id = ?", userID)
	default:
		return q.Where("buyer_id = ? OR seller_id = ?", userID, userID)
	}
}

func (r *marketplaceRepository) CountUserTransactions(ctx context.Context, userID, role string) (int64, error) {
	var total int64
	if err := r.byParticipant(ctx, userID, role).Count(&total).Error; err != nil {
		return 0, translate(err, "count marketplace transactions", nil)
	}
	return total, nil
}

func (r *marketplaceRepository) ListUserTransactions(ctx context.Context, userID, role string, offset, limit int) ([]models.MarketplaceTransaction, error) {
	var txs []models.MarketplaceTransaction
	err := r.byParticipant(ctx, userID, role).
		Preload("Buyer").
		Preload("Seller").
		Preload("Property").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, translate(err, "list marketplace transactions", nil)
	}
	return txs, nil
}

// CreateMessage appends a message to its thread. The thread's transaction
// row is locked so created_at stays strictly increasing within the thread.
func (r *marketplaceRepository) CreateMessage(ctx context.Context, msg *models.MarketplaceMessage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mt models.MarketplaceTransaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&mt, "id = ?", msg.TransactionID).Error; err != nil {
			return translate(err, "get marketplace transaction", apperrors.ErrTransactionNotFound)
		}

		var last []models.MarketplaceMessage
		if err := tx.Select("created_at").
			Where("transaction_id = ?", msg.TransactionID).
			Order("created_at DESC").
			Limit(1).
			Find(&last).Error; err != nil {
			return err
		}

		createdAt := time.Now().UTC().Truncate(time.Microsecond)
		if len(last) > 0 && !createdAt.After(last[0].CreatedAt) {
			createdAt = last[0].CreatedAt.Add(time.Microsecond)
		}
		msg.CreatedAt = createdAt
		return tx.Create(msg).Error
	})
	return translate(err, "create message", nil)
}

func (r *marketplaceRepository) ListMessages(ctx context.Context, transactionID string) ([]models.MarketplaceMessage, error) {
	var msgs []models.MarketplaceMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, translate(err, "list messages", nil)
	}
	return msgs, nil
}

func (r *marketplaceRepository) GetMessage(ctx context.Context, id string) (*models.MarketplaceMessage, error) {
	var msg models.MarketplaceMessage
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get message", apperrors.ErrMessageNotFound)
	}
	return &msg, nil
}

func (r *marketplaceRepository) MarkMessageRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.MarketplaceMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error, "mark message read", nil)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
