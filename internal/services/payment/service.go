package payment

import (
	"context"
	"fmt"
	"strings"

	apperrors "propmarket/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"github.com/stripe/stripe-go/v72/refund"
	"go.uber.org/zap"
)

var minorUnits = decimal.NewFromInt(100)

type stripeGateway struct {
	createIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	createRefund func(*stripe.RefundParams) (*stripe.Refund, error)
	logger       *zap.Logger
}

// NewStripeGateway returns a Gateway backed by Stripe payment intents.
func NewStripeGateway(secretKey string, logger *zap.Logger) Gateway {
	if secretKey == "" {
		panic("stripe secret key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	stripe.Key = secretKey
	return &stripeGateway{
		createIntent: paymentintent.New,
		createRefund: refund.New,
		logger:       logger,
	}
}

func (g *stripeGateway) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.PaymentMethodID == "" {
		return nil, apperrors.InvalidField("payment_method_id", "payment method is required")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount.Mul(minorUnits).Round(0).IntPart()),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.createIntent(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.Info("card declined", zap.String("user_id", req.UserID), zap.String("code", string(stripeErr.Code)))
			return nil, apperrors.ErrPaymentFailed
		}
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		g.logger.Info("payment intent not captured",
			zap.String("payment_intent", pi.ID),
			zap.String("status", string(pi.Status)))
		return nil, apperrors.ErrPaymentFailed
	}

	return &Charge{
		ID:       pi.ID,
		Amount:   decimal.New(pi.Amount, -2),
		Currency: strings.ToUpper(string(pi.Currency)),
		Status:   string(pi.Status),
	}, nil
}

func (g *stripeGateway) Refund(ctx context.Context, chargeID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(chargeID)}
	params.Context = ctx
	if _, err := g.createRefund(params); err != nil {
		return fmt.Errorf("stripe refund failed: %w", err)
	}
	return nil
}
