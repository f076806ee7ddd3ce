package handlers

import (
	"propmarket/internal/logger"
	"propmarket/internal/services/property"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	propertyService property.Service
	logger          *zap.Logger
}

func NewPropertyHandler(propertyService property.Service, l *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		logger:          logger.OrNop(l).Named("property_handler"),
	}
}

// ListMine returns the caller's properties, listed or not.
func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	props, err := h.propertyService.GetPropertiesByUserID(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, h.logger, "list properties", err)
	}
	return utils.Success(c, fiber.Map{"properties": props})
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	prop, err := h.propertyService.GetProperty(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "get property", err)
	}
	return utils.Success(c, fiber.Map{"property": prop})
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	prop, err := h.propertyService.UpdateProperty(c.UserContext(), claims.UserID, c.Params("id"), fields)
	if err != nil {
		return respondError(c, h.logger, "update property", err)
	}
	return utils.Success(c, fiber.Map{"property": prop})
}
