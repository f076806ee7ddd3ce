// Package withdrawal runs the two-step payout workflow: users request,
// admins approve or reject. Funds leave the ledger only on approval.
package withdrawal

import (
	"context"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/logger"
	"propmarket/internal/metrics"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/services/wallet"
	"propmarket/internal/utils/pagination"
	"propmarket/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	OpRequest = "withdrawal.request"
	OpApprove = "withdrawal.approve"
	OpReject  = "withdrawal.reject"
)

type Service interface {
	RequestWithdrawal(ctx context.Context, userID string, req Request) (*models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, requestID, adminID string) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, requestID, adminID, reason string) (*models.WithdrawalRequest, error)
	GetWithdrawal(ctx context.Context, requestID string) (*models.WithdrawalRequest, error)
	// ListWithdrawals is the admin queue, newest first.
	ListWithdrawals(ctx context.Context, filter repositories.WithdrawalFilter, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error)
	ListUserWithdrawals(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error)
}

type Request struct {
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PaymentDetails models.JSON     `json:"payment_details"`
}

type Dependencies struct {
	Repo       repositories.WithdrawalRepository
	Procedures repositories.Procedures
	Wallets    wallet.Service
	Metrics    metrics.Collector
	Events     events.Publisher
	Logger     *zap.Logger
}

type service struct {
	repo    repositories.WithdrawalRepository
	procs   repositories.Procedures
	wallets wallet.Service
	metrics metrics.Collector
	events  events.Publisher
	logger  *zap.Logger
}

func NewService(deps Dependencies) Service {
	if deps.Repo == nil {
		panic("withdrawal repository is required")
	}
	if deps.Procedures == nil {
		panic("procedures are required")
	}
	if deps.Wallets == nil {
		panic("wallet service is required")
	}
	return &service{
		repo:    deps.Repo,
		procs:   deps.Procedures,
		wallets: deps.Wallets,
		metrics: metrics.OrNoop(deps.Metrics),
		events:  events.OrNoop(deps.Events),
		logger:  logger.OrNop(deps.Logger).Named("withdrawal"),
	}
}

func (s *service) observe(op string, start time.Time, err error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	if err != nil {
		s.metrics.RecordError(op, apperrors.Code(err))
	}
}

func (s *service) RequestWithdrawal(ctx context.Context, userID string, req Request) (wr *models.WithdrawalRequest, err error) {
	start := time.Now()
	defer func() { s.observe(OpRequest, start, err) }()

	if err := validation.Withdrawal(req.Amount, req.Method, req.PaymentDetails); err != nil {
		return nil, err
	}

	// Fast rejection before opening a ledger transaction. The procedure
	// re-checks under lock, including pending reservations.
	balance, err := s.wallets.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(balance) {
		return nil, apperrors.ErrInsufficientFunds
	}

	wr, err = s.procs.RequestWithdrawal(ctx, repositories.WithdrawalParams{
		UserID:         userID,
		Amount:         req.Amount,
		Method:         req.Method,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		return nil, err
	}

	s.wallets.InvalidateCache(ctx, userID)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeWithdrawalRequested, wr.ID, wr))
	s.logger.Info("withdrawal requested",
		zap.String("request_id", wr.ID),
		zap.String("user_id", userID),
		zap.String("amount", wr.Amount.StringFixed(2)),
		zap.String("method", wr.Method))
	return wr, nil
}

func (s *service) ApproveWithdrawal(ctx context.Context, requestID, adminID string) (wr *models.WithdrawalRequest, err error) {
	start := time.Now()
	defer func() { s.observe(OpApprove, start, err) }()

	wr, err = s.procs.ApproveWithdrawal(ctx, requestID, adminID)
	if err != nil {
		return nil, err
	}

	s.wallets.InvalidateCache(ctx, wr.UserID)
	s.metrics.RecordTransactionVolume(models.TransactionTypeWithdrawal, wr.Amount)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeWithdrawalApproved, wr.ID, wr))
	s.logger.Info("withdrawal approved",
		zap.String("request_id", wr.ID),
		zap.String("admin_id", adminID),
		zap.String("amount", wr.Amount.StringFixed(2)))
	return wr, nil
}

func (s *service) RejectWithdrawal(ctx context.Context, requestID, adminID, reason string) (wr *models.WithdrawalRequest, err error) {
	start := time.Now()
	defer func() { s.observe(OpReject, start, err) }()

	if err := validation.Rejection(reason); err != nil {
		return nil, err
	}

	wr, err = s.procs.RejectWithdrawal(ctx, requestID, adminID, reason)
	if err != nil {
		return nil, err
	}

	// The pending reservation is released.
	s.wallets.InvalidateCache(ctx, wr.UserID)
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeWithdrawalRejected, wr.ID, wr))
	s.logger.Info("withdrawal rejected", zap.String("request_id", wr.ID), zap.String("admin_id", adminID))
	return wr, nil
}

func (s *service) GetWithdrawal(ctx context.Context, requestID string) (*models.WithdrawalRequest, error) {
	return s.repo.GetByID(ctx, requestID)
}

func (s *service) ListWithdrawals(ctx context.Context, filter repositories.WithdrawalFilter, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error) {
	if filter.Status != "" {
		v := validation.New()
		v.OneOf("status", filter.Status, models.WithdrawalStatusPending, models.WithdrawalStatusApproved, models.WithdrawalStatusRejected)
		if err := v.Err(); err != nil {
			return pagination.Page[models.WithdrawalRequest]{}, err
		}
	}
	return pagination.Fetch(page,
		func() (int64, error) { return s.repo.Count(ctx, filter) },
		func(offset, limit int) ([]models.WithdrawalRequest, error) {
			return s.repo.List(ctx, filter, offset, limit)
		},
	)
}

func (s *service) ListUserWithdrawals(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error) {
	return s.ListWithdrawals(ctx, repositories.WithdrawalFilter{UserID: userID}, page)
}
