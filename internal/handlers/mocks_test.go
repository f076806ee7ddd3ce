package handlers

import (
	"context"

	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/services/marketplace"
	"propmarket/internal/services/wallet"
	"propmarket/internal/services/withdrawal"
	"propmarket/internal/utils/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	w, _ := args.Get(0).(*models.Wallet)
	return w, args.Error(1)
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletService) GetWalletSummary(ctx context.Context, userID string) (*models.WalletSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.WalletSummary)
	return s, args.Error(1)
}

func (m *MockWalletService) GetTransactions(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.WalletTransaction], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(pagination.Page[models.WalletTransaction]), args.Error(1)
}

func (m *MockWalletService) DepositFunds(ctx context.Context, userID string, req wallet.DepositRequest) (*wallet.DepositResult, error) {
	args := m.Called(ctx, userID, req)
	r, _ := args.Get(0).(*wallet.DepositResult)
	return r, args.Error(1)
}

func (m *MockWalletService) TopUp(ctx context.Context, userID string, req wallet.TopUpRequest) (*wallet.DepositResult, error) {
	args := m.Called(ctx, userID, req)
	r, _ := args.Get(0).(*wallet.DepositResult)
	return r, args.Error(1)
}

func (m *MockWalletService) InvalidateCache(ctx context.Context, userIDs ...string) {
	m.Called(ctx, userIDs)
}

type MockWithdrawalService struct {
	mock.Mock
}

func (m *MockWithdrawalService) RequestWithdrawal(ctx context.Context, userID string, req withdrawal.Request) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, userID, req)
	r, _ := args.Get(0).(*models.WithdrawalRequest)
	return r, args.Error(1)
}

func (m *MockWithdrawalService) ApproveWithdrawal(ctx context.Context, requestID, adminID string) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, adminID)
	r, _ := args.Get(0).(*models.WithdrawalRequest)
	return r, args.Error(1)
}

func (m *MockWithdrawalService) RejectWithdrawal(ctx context.Context, requestID, adminID, reason string) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, adminID, reason)
	r, _ := args.Get(0).(*models.WithdrawalRequest)
	return r, args.Error(1)
}

func (m *MockWithdrawalService) GetWithdrawal(ctx context.Context, requestID string) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID)
	r, _ := args.Get(0).(*models.WithdrawalRequest)
	return r, args.Error(1)
}

func (m *MockWithdrawalService) ListWithdrawals(ctx context.Context, filter repositories.WithdrawalFilter, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(pagination.Page[models.WithdrawalRequest]), args.Error(1)
}

func (m *MockWithdrawalService) ListUserWithdrawals(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.WithdrawalRequest], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(pagination.Page[models.WithdrawalRequest]), args.Error(1)
}

type MockMarketplaceService struct {
	mock.Mock
}

func (m *MockMarketplaceService) ListProperty(ctx context.Context, userID string, req marketplace.ListRequest) (*models.Property, error) {
	args := m.Called(ctx, userID, req)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockMarketplaceService) RemoveProperty(ctx context.Context, userID, propertyID string) (*models.Property, error) {
	args := m.Called(ctx, userID, propertyID)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockMarketplaceService) GetListings(ctx context.Context, filter repositories.ListingFilter, page pagination.Params) (pagination.Page[models.Property], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(pagination.Page[models.Property]), args.Error(1)
}

func (m *MockMarketplaceService) GetListing(ctx context.Context, propertyID string) (*models.Property, error) {
	args := m.Called(ctx, propertyID)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockMarketplaceService) InvalidateListings(ctx context.Context, propertyIDs ...string) {
	m.Called(ctx, propertyIDs)
}

func (m *MockMarketplaceService) Purchase(ctx context.Context, buyerID string, req marketplace.PurchaseRequest) (*models.MarketplaceTransaction, error) {
	args := m.Called(ctx, buyerID, req)
	tx, _ := args.Get(0).(*models.MarketplaceTransaction)
	return tx, args.Error(1)
}

func (m *MockMarketplaceService) GetTransaction(ctx context.Context, viewer marketplace.Viewer, transactionID string) (*models.MarketplaceTransaction, error) {
	args := m.Called(ctx, viewer, transactionID)
	tx, _ := args.Get(0).(*models.MarketplaceTransaction)
	return tx, args.Error(1)
}

func (m *MockMarketplaceService) GetUserTransactions(ctx context.Context, userID, role string, page pagination.Params) (pagination.Page[models.MarketplaceTransaction], error) {
	args := m.Called(ctx, userID, role, page)
	return args.Get(0).(pagination.Page[models.MarketplaceTransaction]), args.Error(1)
}

func (m *MockMarketplaceService) SendMessage(ctx context.Context, senderID, transactionID, content string) (*models.MarketplaceMessage, error) {
	args := m.Called(ctx, senderID, transactionID, content)
	msg, _ := args.Get(0).(*models.MarketplaceMessage)
	return msg, args.Error(1)
}

func (m *MockMarketplaceService) GetMessages(ctx context.Context, viewer marketplace.Viewer, transactionID string) ([]models.MarketplaceMessage, error) {
	args := m.Called(ctx, viewer, transactionID)
	msgs, _ := args.Get(0).([]models.MarketplaceMessage)
	return msgs, args.Error(1)
}

func (m *MockMarketplaceService) MarkMessageAsRead(ctx context.Context, userID, messageID string) (*models.MarketplaceMessage, error) {
	args := m.Called(ctx, userID, messageID)
	msg, _ := args.Get(0).(*models.MarketplaceMessage)
	return msg, args.Error(1)
}
