package handlers

import (
	"context"

	"propmarket/internal/logger"
	"propmarket/internal/repositories"
	"propmarket/internal/services/withdrawal"
	"propmarket/internal/utils"
	"propmarket/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WithdrawalHandler serves the user side of payouts and the admin queue.
type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
	logger            *zap.Logger
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service, l *zap.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
		logger:            logger.OrNop(l).Named("withdrawal_handler"),
	}
}

func (h *WithdrawalHandler) RequestWithdrawal(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req withdrawal.Request
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	ctx := context.WithoutCancel(c.UserContext())
	request, err := h.withdrawalService.RequestWithdrawal(ctx, claims.UserID, req)
	if err != nil {
		return respondError(c, h.logger, "request withdrawal", err)
	}
	return utils.Created(c, fiber.Map{"withdrawal": request})
}

func (h *WithdrawalHandler) ListMyWithdrawals(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page, err := h.withdrawalService.ListUserWithdrawals(c.UserContext(), claims.UserID, pagination.ParseFromRequest(c))
	if err != nil {
		return respondError(c, h.logger, "list user withdrawals", err)
	}
	return utils.Success(c, page)
}

// ListWithdrawals is the admin queue, filterable by status and user_id.
func (h *WithdrawalHandler) ListWithdrawals(c *fiber.Ctx) error {
	filter := repositories.WithdrawalFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
	}
	page, err := h.withdrawalService.ListWithdrawals(c.UserContext(), filter, pagination.ParseFromRequest(c))
	if err != nil {
		return respondError(c, h.logger, "list withdrawals", err)
	}
	return utils.Success(c, page)
}

func (h *WithdrawalHandler) Approve(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	ctx := context.WithoutCancel(c.UserContext())
	request, err := h.withdrawalService.ApproveWithdrawal(ctx, c.Params("id"), claims.UserID)
	if err != nil {
		return respondError(c, h.logger, "approve withdrawal", err)
	}
	return utils.Success(c, fiber.Map{"withdrawal": request})
}

func (h *WithdrawalHandler) Reject(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	ctx := context.WithoutCancel(c.UserContext())
	request, err := h.withdrawalService.RejectWithdrawal(ctx, c.Params("id"), claims.UserID, input.Reason)
	if err != nil {
		return respondError(c, h.logger, "reject withdrawal", err)
	}
	return utils.Success(c, fiber.Map{"withdrawal": request})
}
