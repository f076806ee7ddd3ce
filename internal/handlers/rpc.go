package handlers

import (
	"context"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/logger"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/services/marketplace"
	"propmarket/internal/services/wallet"
	"propmarket/internal/services/withdrawal"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errUnknownProcedure = apperrors.New(apperrors.KindNotFound, "UNKNOWN_PROCEDURE", "unknown procedure")

// procedure runs one named call. bind decodes the request's parameter
// object into the procedure's argument struct.
type procedure struct {
	adminOnly bool
	call      func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error)
}

// RPCHandler exposes the atomic procedures by name. Calls go through the
// services so validation, cache invalidation and events match the REST
// routes.
type RPCHandler struct {
	procedures map[string]procedure
	logger     *zap.Logger
}

func NewRPCHandler(wallets wallet.Service, withdrawals withdrawal.Service, market marketplace.Service, l *zap.Logger) *RPCHandler {
	h := &RPCHandler{logger: logger.OrNop(l).Named("rpc_handler")}
	h.procedures = map[string]procedure{
		repositories.ProcProcessWalletDeposit: {call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p struct {
				Amount      decimal.Decimal `json:"amount"`
				Description string          `json:"description"`
			}
			if err := bind(&p); err != nil {
				return nil, err
			}
			return wallets.DepositFunds(ctx, claims.UserID, wallet.DepositRequest{Amount: p.Amount, Description: p.Description})
		}},
		repositories.ProcRequestWithdrawal: {call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p withdrawal.Request
			if err := bind(&p); err != nil {
				return nil, err
			}
			return withdrawals.RequestWithdrawal(ctx, claims.UserID, p)
		}},
		repositories.ProcApproveWithdrawal: {adminOnly: true, call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p struct {
				RequestID string `json:"request_id"`
			}
			if err := bind(&p); err != nil {
				return nil, err
			}
			return withdrawals.ApproveWithdrawal(ctx, p.RequestID, claims.UserID)
		}},
		repositories.ProcRejectWithdrawal: {adminOnly: true, call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p struct {
				RequestID string `json:"request_id"`
				Reason    string `json:"reason"`
			}
			if err := bind(&p); err != nil {
				return nil, err
			}
			return withdrawals.RejectWithdrawal(ctx, p.RequestID, claims.UserID, p.Reason)
		}},
		repositories.ProcListPropertyInMarketplace: {call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p marketplace.ListRequest
			if err := bind(&p); err != nil {
				return nil, err
			}
			return market.ListProperty(ctx, claims.UserID, p)
		}},
		repositories.ProcRemovePropertyFromMarketplace: {call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p struct {
				PropertyID string `json:"property_id"`
			}
			if err := bind(&p); err != nil {
				return nil, err
			}
			return market.RemoveProperty(ctx, claims.UserID, p.PropertyID)
		}},
		repositories.ProcPurchaseMarketplaceListing: {call: func(ctx context.Context, claims *models.UserClaims, bind func(interface{}) error) (interface{}, error) {
			var p marketplace.PurchaseRequest
			if err := bind(&p); err != nil {
				return nil, err
			}
			return market.Purchase(ctx, claims.UserID, p)
		}},
	}
	return h
}

// Invoke handles POST /rpc/:name with a JSON object of named parameters
// and responds {data} or {error, code}.
func (h *RPCHandler) Invoke(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	name := c.Params("name")
	proc, ok := h.procedures[name]
	if !ok {
		return utils.Error(c, errUnknownProcedure)
	}
	if proc.adminOnly && !claims.IsAdmin() {
		return utils.Error(c, errAdminRequired)
	}

	bind := func(v interface{}) error {
		if len(c.Body()) == 0 {
			return nil
		}
		if err := c.BodyParser(v); err != nil {
			return errInvalidBody
		}
		return nil
	}

	data, err := proc.call(context.WithoutCancel(c.UserContext()), claims, bind)
	if err != nil {
		return respondError(c, h.logger, "rpc "+name, err)
	}
	return utils.Success(c, fiber.Map{"data": data})
}
