package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/logger"
	"propmarket/internal/metrics"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/repositories/cache"
	"propmarket/internal/services/payment"
	"propmarket/internal/utils/pagination"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	repo    repositories.WalletRepository
	procs   repositories.Procedures
	cache   cache.Store
	gateway payment.Gateway
	metrics metrics.Collector
	events  events.Publisher
	logger  *zap.Logger
	config  Config
}

// NewService creates a new wallet service
func NewService(deps Dependencies, config Config) Service {
	if deps.Repo == nil {
		panic("wallet repository is required")
	}
	if deps.Procedures == nil {
		panic("procedures are required")
	}
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}

	return &service{
		repo:    deps.Repo,
		procs:   deps.Procedures,
		cache:   cache.OrNoop(deps.Cache),
		gateway: deps.Gateway,
		metrics: metrics.OrNoop(deps.Metrics),
		events:  events.OrNoop(deps.Events),
		logger:  logger.OrNop(deps.Logger).Named("wallet"),
		config:  config,
	}
}

func (s *service) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	wallet, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWalletNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

func (s *service) GetWalletSummary(ctx context.Context, userID string) (summary *models.WalletSummary, err error) {
	start := time.Now()
	defer func() { s.observe(OpGetSummary, start, err) }()

	// The wallet row is read before the totals, so a summary whose version
	// matches the current row cannot miss a committed change.
	wallet, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrWalletNotFound) {
		wallet, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	var version int64
	if wallet != nil {
		version = wallet.Version
	}

	if cached, ok := s.cachedSummary(ctx, userID); ok && cached.Version == version {
		return cached, nil
	}

	summary = &models.WalletSummary{UserID: userID, Currency: s.config.Currency, Balance: decimal.Zero, Version: version}
	if wallet != nil {
		summary.Balance = wallet.Balance
		if wallet.Currency != "" {
			summary.Currency = wallet.Currency
		}
	}

	totals, err := s.repo.SumCompletedByType(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Debits are stored negative; the summary reports magnitudes.
	summary.TotalDeposits = totals[models.TransactionTypeDeposit].Abs()
	summary.TotalWithdrawals = totals[models.TransactionTypeWithdrawal].Abs()
	summary.TotalSales = totals[models.TransactionTypeSale].Abs()
	summary.TotalPurchases = totals[models.TransactionTypePurchase].Abs()
	summary.TotalCommissions = totals[models.TransactionTypeCommission].Abs()

	if summary.PendingWithdrawals, err = s.repo.SumPendingWithdrawals(ctx, userID); err != nil {
		return nil, err
	}

	s.storeSummary(ctx, summary)
	return summary, nil
}

func (s *service) GetTransactions(ctx context.Context, userID string, page pagination.Params) (result pagination.Page[models.WalletTransaction], err error) {
	start := time.Now()
	defer func() { s.observe(OpGetTransactions, start, err) }()

	return pagination.Fetch(page,
		func() (int64, error) { return s.repo.CountTransactions(ctx, userID) },
		func(offset, limit int) ([]models.WalletTransaction, error) {
			return s.repo.ListTransactions(ctx, userID, offset, limit)
		},
	)
}

// DepositFunds credits the wallet with a trusted deposit. The returned
// balance is read back after the ledger transaction commits.
func (s *service) DepositFunds(ctx context.Context, userID string, req DepositRequest) (result *DepositResult, err error) {
	start := time.Now()
	defer func() { s.observe(OpDeposit, start, err) }()

	if !validAmount(req.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.Description == "" {
		req.Description = "Wallet deposit"
	}

	entry, err := s.procs.ProcessWalletDeposit(ctx, repositories.DepositParams{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return s.afterDeposit(ctx, userID, entry)
}

// TopUp charges a card through the gateway and deposits the captured
// amount. If the ledger write fails after capture, the charge is refunded.
func (s *service) TopUp(ctx context.Context, userID string, req TopUpRequest) (result *DepositResult, err error) {
	start := time.Now()
	defer func() { s.observe(OpTopUp, start, err) }()

	if s.gateway == nil {
		return nil, ErrTopUpUnavailable
	}
	if !validAmount(req.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.PaymentMethodID == "" {
		return nil, apperrors.InvalidField("payment_method_id", "payment method is required")
	}

	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		UserID:          userID,
		Amount:          req.Amount,
		Currency:        s.config.Currency,
		PaymentMethodID: req.PaymentMethodID,
		IdempotencyKey:  req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	entry, err := s.procs.ProcessWalletDeposit(ctx, repositories.DepositParams{
		UserID:      userID,
		Amount:      charge.Amount,
		Description: "Card top-up",
		Metadata:    models.JSON{"payment_intent_id": charge.ID, "source": "card"},
	})
	if err != nil {
		s.logger.Error("ledger write failed after card capture, refunding",
			zap.String("user_id", userID),
			zap.String("payment_intent", charge.ID),
			zap.Error(err))
		if refundErr := s.gateway.Refund(context.WithoutCancel(ctx), charge.ID); refundErr != nil {
			s.logger.Error("refund failed", zap.String("payment_intent", charge.ID), zap.Error(refundErr))
			return nil, fmt.Errorf("deposit failed and refund of %s failed: %w", charge.ID, errors.Join(err, refundErr))
		}
		return nil, err
	}
	return s.afterDeposit(ctx, userID, entry)
}

func (s *service) afterDeposit(ctx context.Context, userID string, entry *models.WalletTransaction) (*DepositResult, error) {
	s.InvalidateCache(ctx, userID)
	s.metrics.RecordTransactionVolume(models.TransactionTypeDeposit, entry.Amount)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeWalletDeposit, userID, entry))

	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("deposit posted",
		zap.String("user_id", userID),
		zap.String("transaction_id", entry.ID),
		zap.String("amount", entry.Amount.StringFixed(2)))
	return &DepositResult{Transaction: entry, Balance: balance}, nil
}

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}
