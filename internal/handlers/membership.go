package handlers

import (
	"propmarket/internal/logger"
	"propmarket/internal/services/membership"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MembershipHandler struct {
	membershipService membership.Service
	logger            *zap.Logger
}

func NewMembershipHandler(membershipService membership.Service, l *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		logger:            logger.OrNop(l).Named("membership_handler"),
	}
}

func (h *MembershipHandler) GetStatus(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	status, err := h.membershipService.GetStatus(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, h.logger, "get membership", err)
	}
	return utils.Success(c, fiber.Map{"membership": status})
}
