package repositories

import (
	"context"
	"fmt"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, translate(err, "get wallet", apperrors.ErrWalletNotFound)
	}
	return &wallet, nil
}

func (r *walletRepository) CountTransactions(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, translate(err, "count transactions", nil)
	}
	return total, nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID string, offset, limit int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, translate(err, "list transactions", nil)
	}
	return txs, nil
}

type typeTotal struct {
	Type  string
	Total decimal.Decimal
}

func (r *walletRepository) SumCompletedByType(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted).
		Group("type").
		Rows()
	if err != nil {
		return nil, translate(err, "sum transactions", nil)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var t typeTotal
		if err := rows.Scan(&t.Type, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan transaction total: %w", err)
		}
		totals[t.Type] = t.Total.Round(2)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "sum transactions", nil)
	}
	return totals, nil
}

func (r *walletRepository) SumCompleted(ctx context.Context, userID string) (decimal.Decimal, error) {
	return sumAmount(r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted))
}

func (r *walletRepository) SumPendingWithdrawals(ctx context.Context, userID string) (decimal.Decimal, error) {
	return sumPendingWithdrawals(r.db.WithContext(ctx), userID)
}

func sumPendingWithdrawals(db *gorm.DB, userID string) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.WithdrawalRequest{}).
		Where("user_id = ? AND status = ?", userID, models.WithdrawalStatusPending))
}

// sumAmount scans SUM(amount) of the scoped query.
func sumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := q.Select("COALESCE(SUM(amount), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, translate(err, "sum amounts", nil)
	}
	return total.Round(2), nil
}
