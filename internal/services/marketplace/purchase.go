package marketplace

import (
	"context"
	"errors"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/models"
	"propmarket/internal/repositories"

	"go.uber.org/zap"
)

// Purchase settles a listing. The checks below reject the common failures
// without opening a ledger transaction; the procedure repeats every one of
// them under row locks and is authoritative.
func (s *service) Purchase(ctx context.Context, buyerID string, req PurchaseRequest) (mt *models.MarketplaceTransaction, err error) {
	start := time.Now()
	defer func() { s.observe(OpPurchase, start, err) }()

	if req.PropertyID == "" {
		return nil, apperrors.InvalidField("property_id", "must not be empty")
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	if !property.IsListedAt(s.now()) {
		return nil, apperrors.ErrListingUnavailable
	}
	price := property.MarketplacePrice.Decimal
	if req.ExpectedPrice.Valid && !req.ExpectedPrice.Decimal.Equal(price) {
		return nil, apperrors.ErrListingPriceChanged
	}
	if property.UserID == buyerID {
		return nil, apperrors.ErrCannotBuyOwnListing
	}

	paid, err := s.membership.IsPaidMember(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, apperrors.ErrMembershipRequired
	}

	balance, err := s.wallets.GetBalance(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(price) {
		return nil, apperrors.ErrInsufficientFunds
	}

	result, err := s.procs.PurchaseMarketplaceListing(ctx, repositories.PurchaseParams{
		BuyerID:       buyerID,
		PropertyID:    req.PropertyID,
		ExpectedPrice: req.ExpectedPrice,
	})
	if err != nil {
		s.logger.Info("purchase rejected",
			zap.String("property_id", req.PropertyID),
			zap.String("buyer_id", buyerID),
			zap.String("code", apperrors.Code(err)))
		return nil, err
	}
	mt = result.Transaction

	s.wallets.InvalidateCache(ctx, mt.BuyerID, mt.SellerID)
	s.InvalidateListings(ctx, mt.ListingID)
	s.metrics.RecordTransactionVolume(models.TransactionTypePurchase, mt.SalePrice)
	s.metrics.RecordTransactionVolume(models.TransactionTypeCommission, mt.PlatformFee)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeListingSold, mt.ListingID, mt))
	s.logger.Info("listing sold",
		zap.String("transaction_id", mt.ID),
		zap.String("property_id", mt.ListingID),
		zap.String("buyer_id", mt.BuyerID),
		zap.String("seller_id", mt.SellerID),
		zap.String("sale_price", mt.SalePrice.StringFixed(2)),
		zap.String("platform_fee", mt.PlatformFee.StringFixed(2)))
	return mt, nil
}
