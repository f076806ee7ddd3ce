// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"

	"propmarket/internal/models"
	"propmarket/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every transaction serialized. SQLite has no
// row locks, so tests against it check outcomes, not locking.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := repositories.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.Migrate(db))
	return db
}

// CreateUser stores a profile and, when paid is true, an active paid
// subscription. It returns the user id.
func CreateUser(t *testing.T, db *gorm.DB, name string, paid bool) string {
	t.Helper()

	profile := &models.Profile{Name: name, Email: name + "@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(profile).Error)

	plan := models.PlanFree
	if paid {
		plan = "premium"
	}
	require.NoError(t, db.Create(&models.Subscription{
		UserID: profile.ID,
		Status: models.SubscriptionStatusActive,
		PlanID: plan,
	}).Error)
	return profile.ID
}

// CreateProperty stores an unlisted property owned by ownerID.
func CreateProperty(t *testing.T, db *gorm.DB, ownerID, title string) *models.Property {
	t.Helper()

	property := &models.Property{
		UserID:    ownerID,
		Title:     title,
		Type:      "villa",
		Status:    "sale",
		Price:     decimal.NewFromInt(2500000),
		Location:  "Palm Jumeirah, Dubai",
		Bedrooms:  4,
		Bathrooms: 3,
		Area:      420,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

// Money parses a decimal literal.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Balance reads the stored wallet balance, zero when the wallet is absent.
func Balance(t *testing.T, db *gorm.DB, userID string) decimal.Decimal {
	t.Helper()

	var wallets []models.Wallet
	require.NoError(t, db.Where("user_id = ?", userID).Find(&wallets).Error)
	if len(wallets) == 0 {
		return decimal.Zero
	}
	return wallets[0].Balance
}

// LedgerSum adds every completed ledger entry of the user.
func LedgerSum(t *testing.T, db *gorm.DB, userID string) decimal.Decimal {
	t.Helper()

	var entries []models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted).Find(&entries).Error)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}
