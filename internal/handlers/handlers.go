// Package handlers exposes the wallet, withdrawal and marketplace services
// over HTTP. Handlers only parse requests and map results; every business
// rule lives in the services.
package handlers

import (
	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	errAdminRequired = apperrors.New(apperrors.KindForbidden, "ADMIN_REQUIRED", "admin privileges required")
	errInvalidBody   = apperrors.New(apperrors.KindValidation, "INVALID_REQUEST_BODY", "invalid request format")
)

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil || claims.UserID == "" {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// respondError writes err and logs it when it is not a domain error, since
// the client only sees a generic message in that case.
func respondError(c *fiber.Ctx, l *zap.Logger, op string, err error) error {
	if _, ok := apperrors.As(err); !ok {
		l.Error(op+" failed",
			zap.String("path", c.Path()),
			zap.Any("user_id", c.Locals("userID")),
			zap.Error(err))
	}
	return utils.Error(c, err)
}
