package handlers

import (
	"context"

	"propmarket/internal/logger"
	"propmarket/internal/services/wallet"
	"propmarket/internal/utils"
	"propmarket/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletHandler struct {
	walletService wallet.Service
	logger        *zap.Logger
}

func NewWalletHandler(walletService wallet.Service, l *zap.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger.OrNop(l).Named("wallet_handler"),
	}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallet, err := h.walletService.GetWallet(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, h.logger, "get wallet", err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": wallet,
	})
}

func (h *WalletHandler) GetSummary(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	summary, err := h.walletService.GetWalletSummary(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, h.logger, "get wallet summary", err)
	}
	return utils.Success(c, fiber.Map{"summary": summary})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page, err := h.walletService.GetTransactions(c.UserContext(), claims.UserID, pagination.ParseFromRequest(c))
	if err != nil {
		return respondError(c, h.logger, "get wallet transactions", err)
	}
	return utils.Success(c, page)
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	// Money movement must not be cut short by a dropped connection.
	ctx := context.WithoutCancel(c.UserContext())
	result, err := h.walletService.DepositFunds(ctx, claims.UserID, wallet.DepositRequest{
		Amount:      input.Amount,
		Description: input.Description,
	})
	if err != nil {
		return respondError(c, h.logger, "deposit", err)
	}
	return utils.Created(c, result)
}

func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount          decimal.Decimal `json:"amount"`
		PaymentMethodID string          `json:"payment_method_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	ctx := context.WithoutCancel(c.UserContext())
	result, err := h.walletService.TopUp(ctx, claims.UserID, wallet.TopUpRequest{
		Amount:          input.Amount,
		PaymentMethodID: input.PaymentMethodID,
		IdempotencyKey:  c.Get("Idempotency-Key"),
	})
	if err != nil {
		return respondError(c, h.logger, "top up", err)
	}
	return utils.Created(c, result)
}
