package repositories

import (
	"context"
	"sort"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Procedure names, as exposed on the invocation endpoint.
const (
	ProcProcessWalletDeposit          = "process_wallet_deposit"
	ProcRequestWithdrawal             = "request_withdrawal"
	ProcApproveWithdrawal             = "approve_withdrawal"
	ProcRejectWithdrawal              = "reject_withdrawal"
	ProcListPropertyInMarketplace     = "list_property_in_marketplace"
	ProcRemovePropertyFromMarketplace = "remove_property_from_marketplace"
	ProcPurchaseMarketplaceListing    = "purchase_marketplace_listing"
)

// DepositParams describes a credit entering the wallet from outside.
type DepositParams struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	Metadata    models.JSON
}

type WithdrawalParams struct {
	UserID         string
	Amount         decimal.Decimal
	Method         string
	PaymentDetails models.JSON
}

type ListingParams struct {
	UserID       string
	PropertyID   string
	Price        decimal.Decimal
	DurationDays int
}

type PurchaseParams struct {
	BuyerID    string
	PropertyID string
	// ExpectedPrice, when set, must equal the current listing price.
	ExpectedPrice decimal.NullDecimal
}

// PurchaseResult is returned by a settled purchase.
type PurchaseResult struct {
	Transaction *models.MarketplaceTransaction
	Entries     []models.WalletTransaction
}

// Procedures are the atomic financial operations. Each call runs in a
// single database transaction: every effect commits or none does.
type Procedures interface {
	ProcessWalletDeposit(ctx context.Context, p DepositParams) (*models.WalletTransaction, error)
	RequestWithdrawal(ctx context.Context, p WithdrawalParams) (*models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, requestID, adminID string) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, requestID, adminID, reason string) (*models.WithdrawalRequest, error)
	ListPropertyInMarketplace(ctx context.Context, p ListingParams) (*models.Property, error)
	RemovePropertyFromMarketplace(ctx context.Context, userID, propertyID string) (*models.Property, error)
	PurchaseMarketplaceListing(ctx context.Context, p PurchaseParams) (*PurchaseResult, error)
	ExpireListings(ctx context.Context, now time.Time) ([]string, error)
}

// ProceduresConfig tunes the procedures.
type ProceduresConfig struct {
	Currency string
	// PlatformFeeRate defaults to models.DefaultPlatformFeeRate when unset.
	// A valid zero rate is kept.
	PlatformFeeRate decimal.NullDecimal
	Timeout         time.Duration
	Now             func() time.Time
}

type procedures struct {
	db  *gorm.DB
	cfg ProceduresConfig
}

func NewProcedures(db *gorm.DB, cfg ProceduresConfig) Procedures {
	if db == nil {
		panic("db is required")
	}
	if cfg.Currency == "" {
		cfg.Currency = "AED"
	}
	if !cfg.PlatformFeeRate.Valid {
		cfg.PlatformFeeRate = decimal.NewNullDecimal(models.DefaultPlatformFeeRate)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &procedures{db: db, cfg: cfg}
}

// run executes fn in one transaction bounded by the procedure timeout.
func (p *procedures) run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	return translate(p.db.WithContext(ctx).Transaction(fn), op, nil)
}

// lockWallet returns the user's wallet row locked for update, creating it
// first when the user has none.
func (p *procedures) lockWallet(tx *gorm.DB, userID string) (*models.Wallet, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.Wallet{UserID: userID, Currency: p.cfg.Currency}).Error
	if err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// lockWallets locks several wallets in ascending user id order so
// concurrent procedures never wait on each other in a cycle.
func (p *procedures) lockWallets(tx *gorm.DB, userIDs ...string) (map[string]*models.Wallet, error) {
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)

	wallets := make(map[string]*models.Wallet, len(ids))
	for _, id := range ids {
		if _, ok := wallets[id]; ok {
			continue
		}
		w, err := p.lockWallet(tx, id)
		if err != nil {
			return nil, err
		}
		wallets[id] = w
	}
	return wallets, nil
}

type ledgerEntry struct {
	Type             string
	Amount           decimal.Decimal
	RelatedListingID *string
	Description      string
	Metadata         models.JSON
}

// bumpWalletVersion marks the user's wallet as changed without touching
// the balance.
func bumpWalletVersion(tx *gorm.DB, userID string) error {
	return tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("version", gorm.Expr("version + 1")).Error
}

// post applies a signed entry to a locked wallet and appends the
// completed ledger row. The balance never goes negative.
func (p *procedures) post(tx *gorm.DB, wallet *models.Wallet, e ledgerEntry) (*models.WalletTransaction, error) {
	newBalance := wallet.Balance.Add(e.Amount)
	if newBalance.IsNegative() {
		return nil, apperrors.ErrInsufficientFunds
	}

	if err := tx.Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"balance": newBalance,
			"version": gorm.Expr("version + 1"),
		}).Error; err != nil {
		return nil, err
	}
	wallet.Balance = newBalance
	wallet.Version++

	entry := &models.WalletTransaction{
		UserID:           wallet.UserID,
		Type:             e.Type,
		Amount:           e.Amount,
		RelatedListingID: e.RelatedListingID,
		Status:           models.TransactionStatusPending,
		Description:      e.Description,
		Metadata:         e.Metadata,
	}
	if err := entry.TransitionTo(models.TransactionStatusCompleted); err != nil {
		return nil, err
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (p *procedures) ProcessWalletDeposit(ctx context.Context, dp DepositParams) (*models.WalletTransaction, error) {
	if !isPositiveMoney(dp.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if dp.Description == "" {
		dp.Description = "Wallet deposit"
	}

	var entry *models.WalletTransaction
	err := p.run(ctx, ProcProcessWalletDeposit, func(tx *gorm.DB) error {
		wallet, err := p.lockWallet(tx, dp.UserID)
		if err != nil {
			return err
		}
		entry, err = p.post(tx, wallet, ledgerEntry{
			Type:        models.TransactionTypeDeposit,
			Amount:      models.SignedAmount(models.TransactionTypeDeposit, dp.Amount),
			Description: dp.Description,
			Metadata:    dp.Metadata,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (p *procedures) RequestWithdrawal(ctx context.Context, wp WithdrawalParams) (*models.WithdrawalRequest, error) {
	if !isPositiveMoney(wp.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}

	var req *models.WithdrawalRequest
	err := p.run(ctx, ProcRequestWithdrawal, func(tx *gorm.DB) error {
		// The wallet lock serializes requests of one user, so pending
		// reservations are read consistently.
		wallet, err := p.lockWallet(tx, wp.UserID)
		if err != nil {
			return err
		}
		if wp.Amount.GreaterThan(wallet.Balance) {
			return apperrors.ErrInsufficientFunds
		}
		pending, err := sumPendingWithdrawals(tx, wp.UserID)
		if err != nil {
			return err
		}
		if wp.Amount.GreaterThan(wallet.Balance.Sub(pending)) {
			return apperrors.ErrWithdrawalExceedsAvailable
		}

		req = &models.WithdrawalRequest{
			UserID:         wp.UserID,
			Amount:         wp.Amount,
			Status:         models.WithdrawalStatusPending,
			Method:         wp.Method,
			PaymentDetails: wp.PaymentDetails,
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return bumpWalletVersion(tx, wp.UserID)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// lockWithdrawal returns the request row locked for update.
func lockWithdrawal(tx *gorm.DB, requestID string) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", requestID).Error
	if err != nil {
		return nil, translate(err, "get withdrawal request", apperrors.ErrWithdrawalNotFound)
	}
	if !req.IsPending() {
		return nil, apperrors.ErrWithdrawalProcessed
	}
	return &req, nil
}

func (p *procedures) ApproveWithdrawal(ctx context.Context, requestID, adminID string) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest
	err := p.run(ctx, ProcApproveWithdrawal, func(tx *gorm.DB) error {
		var err error
		if req, err = lockWithdrawal(tx, requestID); err != nil {
			return err
		}

		wallet, err := p.lockWallet(tx, req.UserID)
		if err != nil {
			return err
		}
		entry, err := p.post(tx, wallet, ledgerEntry{
			Type:        models.TransactionTypeWithdrawal,
			Amount:      models.SignedAmount(models.TransactionTypeWithdrawal, req.Amount),
			Description: "Withdrawal via " + req.Method,
			Metadata: models.JSON{
				"withdrawal_request_id": req.ID,
				"method":                req.Method,
				"approved_by":           adminID,
			},
		})
		if err != nil {
			return err
		}

		now := p.cfg.Now()
		req.Status = models.WithdrawalStatusApproved
		req.ProcessedBy = &adminID
		req.ProcessedAt = &now
		req.TransactionID = &entry.ID
		return tx.Model(&models.WithdrawalRequest{}).Where("id = ?", req.ID).Updates(map[string]interface{}{
			"status":         req.Status,
			"processed_by":   adminID,
			"processed_at":   now,
			"transaction_id": entry.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (p *procedures) RejectWithdrawal(ctx context.Context, requestID, adminID, reason string) (*models.WithdrawalRequest, error) {
	var req *models.WithdrawalRequest
	err := p.run(ctx, ProcRejectWithdrawal, func(tx *gorm.DB) error {
		var err error
		if req, err = lockWithdrawal(tx, requestID); err != nil {
			return err
		}

		now := p.cfg.Now()
		req.Status = models.WithdrawalStatusRejected
		req.ProcessedBy = &adminID
		req.ProcessedAt = &now
		req.RejectionReason = reason
		if err := tx.Model(&models.WithdrawalRequest{}).Where("id = ?", req.ID).Updates(map[string]interface{}{
			"status":           req.Status,
			"processed_by":     adminID,
			"processed_at":     now,
			"rejection_reason": reason,
		}).Error; err != nil {
			return err
		}
		return bumpWalletVersion(tx, req.UserID)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// lockProperty returns the property row locked for update.
func lockProperty(tx *gorm.DB, propertyID string, notFound *apperrors.DomainError) (*models.Property, error) {
	var property models.Property
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&property, "id = ?", propertyID).Error
	if err != nil {
		return nil, translate(err, "get property", notFound)
	}
	return &property, nil
}

func (p *procedures) ListPropertyInMarketplace(ctx context.Context, lp ListingParams) (*models.Property, error) {
	if !isPositiveMoney(lp.Price) {
		return nil, apperrors.InvalidField("price", "must be greater than zero with at most two decimal places")
	}
	if lp.DurationDays <= 0 {
		return nil, apperrors.InvalidField("duration", "must be a positive number of days")
	}

	var property *models.Property
	err := p.run(ctx, ProcListPropertyInMarketplace, func(tx *gorm.DB) error {
		var err error
		if property, err = lockProperty(tx, lp.PropertyID, apperrors.ErrPropertyNotFound); err != nil {
			return err
		}
		if property.UserID != lp.UserID {
			return apperrors.ErrNotPropertyOwner
		}
		paid, err := isPaidMember(tx, lp.UserID)
		if err != nil {
			return err
		}
		if !paid {
			return apperrors.ErrMembershipRequired
		}

		now := p.cfg.Now()
		expires := now.AddDate(0, 0, lp.DurationDays)
		duration := lp.DurationDays
		property.IsInMarketplace = true
		property.MarketplacePrice = decimal.NewNullDecimal(lp.Price)
		property.MarketplaceListingDate = &now
		property.MarketplaceDuration = &duration
		property.MarketplaceExpiresAt = &expires

		return tx.Model(&models.Property{}).Where("id = ?", property.ID).Updates(map[string]interface{}{
			"is_in_marketplace":        true,
			"marketplace_price":        lp.Price,
			"marketplace_listing_date": now,
			"marketplace_duration":     duration,
			"marketplace_expires_at":   expires,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (p *procedures) RemovePropertyFromMarketplace(ctx context.Context, userID, propertyID string) (*models.Property, error) {
	var property *models.Property
	err := p.run(ctx, ProcRemovePropertyFromMarketplace, func(tx *gorm.DB) error {
		var err error
		if property, err = lockProperty(tx, propertyID, apperrors.ErrPropertyNotFound); err != nil {
			return err
		}
		if property.UserID != userID {
			return apperrors.ErrNotPropertyOwner
		}
		if !property.IsInMarketplace {
			return nil
		}
		clearListing(property)
		return tx.Model(&models.Property{}).Where("id = ?", property.ID).
			Updates(models.ClearedListingFields()).Error
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

func clearListing(p *models.Property) {
	p.IsInMarketplace = false
	p.MarketplacePrice = decimal.NullDecimal{}
	p.MarketplaceListingDate = nil
	p.MarketplaceDuration = nil
	p.MarketplaceExpiresAt = nil
}

func (p *procedures) PurchaseMarketplaceListing(ctx context.Context, pp PurchaseParams) (*PurchaseResult, error) {
	var result *PurchaseResult
	err := p.run(ctx, ProcPurchaseMarketplaceListing, func(tx *gorm.DB) error {
		// The property lock serializes competing buyers, so only the
		// first one sees the listing.
		property, err := lockProperty(tx, pp.PropertyID, apperrors.ErrListingNotFound)
		if err != nil {
			return err
		}
		now := p.cfg.Now()
		if !property.IsListedAt(now) {
			return apperrors.ErrListingUnavailable
		}
		price := property.MarketplacePrice.Decimal
		if pp.ExpectedPrice.Valid && !pp.ExpectedPrice.Decimal.Equal(price) {
			return apperrors.ErrListingPriceChanged
		}

		sellerID := property.UserID
		if pp.BuyerID == sellerID {
			return apperrors.ErrCannotBuyOwnListing
		}
		paid, err := isPaidMember(tx, pp.BuyerID)
		if err != nil {
			return err
		}
		if !paid {
			return apperrors.ErrMembershipRequired
		}

		wallets, err := p.lockWallets(tx, pp.BuyerID, sellerID)
		if err != nil {
			return err
		}
		if wallets[pp.BuyerID].Balance.LessThan(price) {
			return apperrors.ErrInsufficientFunds
		}

		split := models.SplitCommission(price, p.cfg.PlatformFeeRate.Decimal)
		listingID := property.ID
		meta := models.JSON{
			"property_id":    property.ID,
			"property_title": property.Title,
			"buyer_id":       pp.BuyerID,
			"seller_id":      sellerID,
		}

		entries := []struct {
			userID string
			entry  ledgerEntry
		}{
			{pp.BuyerID, ledgerEntry{
				Type:             models.TransactionTypePurchase,
				Amount:           models.SignedAmount(models.TransactionTypePurchase, split.SalePrice),
				RelatedListingID: &listingID,
				Description:      "Purchase of " + property.Title,
				Metadata:         meta,
			}},
			{sellerID, ledgerEntry{
				Type:             models.TransactionTypeSale,
				Amount:           models.SignedAmount(models.TransactionTypeSale, split.SalePrice),
				RelatedListingID: &listingID,
				Description:      "Sale of " + property.Title,
				Metadata:         meta,
			}},
			{sellerID, ledgerEntry{
				Type:             models.TransactionTypeCommission,
				Amount:           models.SignedAmount(models.TransactionTypeCommission, split.PlatformFee),
				RelatedListingID: &listingID,
				Description:      "Platform commission on sale of " + property.Title,
				Metadata:         meta,
			}},
		}

		result = &PurchaseResult{}
		for _, e := range entries {
			if e.entry.Amount.IsZero() {
				continue
			}
			posted, err := p.post(tx, wallets[e.userID], e.entry)
			if err != nil {
				return err
			}
			result.Entries = append(result.Entries, *posted)
		}

		fields := models.ClearedListingFields()
		fields["user_id"] = pp.BuyerID
		if err := tx.Model(&models.Property{}).Where("id = ?", property.ID).Updates(fields).Error; err != nil {
			return err
		}

		result.Transaction = &models.MarketplaceTransaction{
			BuyerID:       pp.BuyerID,
			SellerID:      sellerID,
			ListingID:     property.ID,
			SalePrice:     split.SalePrice,
			PlatformFee:   split.PlatformFee,
			SellerEarning: split.SellerEarning,
			PropertyTitle: property.Title,
		}
		return tx.Create(result.Transaction).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExpireListings clears listings whose duration has elapsed and returns
// the affected property ids.
func (p *procedures) ExpireListings(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := p.run(ctx, "expire listings", func(tx *gorm.DB) error {
		var expired []models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Select("id").
			Where("is_in_marketplace = ? AND marketplace_expires_at <= ?", true, now).
			Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}
		for _, prop := range expired {
			ids = append(ids, prop.ID)
		}
		return tx.Model(&models.Property{}).Where("id IN ?", ids).
			Updates(models.ClearedListingFields()).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// isPositiveMoney reports whether amount is above zero with at most two
// fractional digits.
func isPositiveMoney(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}
