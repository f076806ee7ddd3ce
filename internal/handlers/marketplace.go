package handlers

import (
	"context"
	"strconv"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/logger"
	"propmarket/internal/repositories"
	"propmarket/internal/services/marketplace"
	"propmarket/internal/utils"
	"propmarket/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MarketplaceHandler struct {
	marketplaceService marketplace.Service
	logger             *zap.Logger
}

func NewMarketplaceHandler(marketplaceService marketplace.Service, l *zap.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
		logger:             logger.OrNop(l).Named("marketplace_handler"),
	}
}

func viewerFrom(c *fiber.Ctx) (marketplace.Viewer, error) {
	claims, err := extractUserClaims(c)
	if err != nil {
		return marketplace.Viewer{}, err
	}
	return marketplace.Viewer{UserID: claims.UserID, IsAdmin: claims.IsAdmin()}, nil
}

// parseListingFilter reads the listing search query. Malformed numbers are
// reported per field instead of being silently dropped.
func parseListingFilter(c *fiber.Ctx) (repositories.ListingFilter, error) {
	filter := repositories.ListingFilter{
		Type:     c.Query("type"),
		Location: c.Query("location"),
	}
	fields := map[string]string{}

	for name, dst := range map[string]*decimal.NullDecimal{
		"min_price": &filter.MinPrice,
		"max_price": &filter.MaxPrice,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields[name] = "must be a number"
			continue
		}
		*dst = decimal.NewNullDecimal(d)
	}

	for name, dst := range map[string]*int{
		"min_bedrooms":  &filter.MinBedrooms,
		"min_bathrooms": &filter.MinBathrooms,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields[name] = "must be a non-negative integer"
			continue
		}
		*dst = n
	}

	if len(fields) > 0 {
		return filter, apperrors.Validation(fields)
	}
	return filter, nil
}

func (h *MarketplaceHandler) GetListings(c *fiber.Ctx) error {
	filter, err := parseListingFilter(c)
	if err != nil {
		return utils.Error(c, err)
	}

	page, err := h.marketplaceService.GetListings(c.UserContext(), filter, pagination.ParseFromRequest(c))
	if err != nil {
		return respondError(c, h.logger, "get listings", err)
	}
	return utils.Success(c, page)
}

func (h *MarketplaceHandler) GetListing(c *fiber.Ctx) error {
	listing, err := h.marketplaceService.GetListing(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "get listing", err)
	}
	return utils.Success(c, fiber.Map{"listing": listing})
}

func (h *MarketplaceHandler) ListProperty(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req marketplace.ListRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	ctx := context.WithoutCancel(c.UserContext())
	listing, err := h.marketplaceService.ListProperty(ctx, claims.UserID, req)
	if err != nil {
		return respondError(c, h.logger, "list property", err)
	}
	return utils.Created(c, fiber.Map{"listing": listing})
}

func (h *MarketplaceHandler) RemoveProperty(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	ctx := context.WithoutCancel(c.UserContext())
	prop, err := h.marketplaceService.RemoveProperty(ctx, claims.UserID, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "remove listing", err)
	}
	return utils.Success(c, fiber.Map{"property": prop})
}

func (h *MarketplaceHandler) Purchase(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ExpectedPrice decimal.NullDecimal `json:"expected_price"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.Error(c, errInvalidBody)
		}
	}

	ctx := context.WithoutCancel(c.UserContext())
	tx, err := h.marketplaceService.Purchase(ctx, claims.UserID, marketplace.PurchaseRequest{
		PropertyID:    c.Params("id"),
		ExpectedPrice: input.ExpectedPrice,
	})
	if err != nil {
		return respondError(c, h.logger, "purchase", err)
	}
	return utils.Created(c, fiber.Map{"transaction": tx})
}

func (h *MarketplaceHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page, err := h.marketplaceService.GetUserTransactions(c.UserContext(), claims.UserID, c.Query("role"), pagination.ParseFromRequest(c))
	if err != nil {
		return respondError(c, h.logger, "get transactions", err)
	}
	return utils.Success(c, page)
}

func (h *MarketplaceHandler) GetTransaction(c *fiber.Ctx) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	tx, err := h.marketplaceService.GetTransaction(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "get transaction", err)
	}
	return utils.Success(c, fiber.Map{"transaction": tx})
}

func (h *MarketplaceHandler) GetMessages(c *fiber.Ctx) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	msgs, err := h.marketplaceService.GetMessages(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "get messages", err)
	}
	return utils.Success(c, fiber.Map{"messages": msgs})
}

func (h *MarketplaceHandler) SendMessage(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, errInvalidBody)
	}

	msg, err := h.marketplaceService.SendMessage(c.UserContext(), claims.UserID, c.Params("id"), input.Content)
	if err != nil {
		return respondError(c, h.logger, "send message", err)
	}
	return utils.Created(c, fiber.Map{"message": msg})
}

func (h *MarketplaceHandler) MarkMessageRead(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	msg, err := h.marketplaceService.MarkMessageAsRead(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "mark message read", err)
	}
	return utils.Success(c, fiber.Map{"message": msg})
}
