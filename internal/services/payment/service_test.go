package payment

import (
	"context"
	"errors"
	"testing"

	apperrors "propmarket/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
	"go.uber.org/zap"
)

func newTestGateway(intent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)) *stripeGateway {
	return &stripeGateway{
		createIntent: intent,
		createRefund: func(*stripe.RefundParams) (*stripe.Refund, error) { return &stripe.Refund{ID: "re_1"}, nil },
		logger:       zap.NewNop(),
	}
}

func TestStripeGateway_Charge(t *testing.T) {
	tests := []struct {
		name    string
		req     ChargeRequest
		intent  func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
		wantErr error
	}{
		{
			name: "captured in minor units",
			req:  ChargeRequest{UserID: "u1", Amount: decimal.RequireFromString("250.75"), Currency: "AED", PaymentMethodID: "pm_card_visa"},
			intent: func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
				if *p.Amount != 25075 || *p.Currency != "aed" || !*p.Confirm {
					return nil, errors.New("unexpected params")
				}
				return &stripe.PaymentIntent{ID: "pi_1", Amount: 25075, Currency: "aed", Status: stripe.PaymentIntentStatusSucceeded}, nil
			},
		},
		{
			name:    "missing payment method",
			req:     ChargeRequest{UserID: "u1", Amount: decimal.NewFromInt(10), Currency: "AED"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "card declined",
			req:  ChargeRequest{UserID: "u1", Amount: decimal.NewFromInt(10), Currency: "AED", PaymentMethodID: "pm_card_chargeDeclined"},
			intent: func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
				return nil, &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined}
			},
			wantErr: apperrors.ErrPaymentFailed,
		},
		{
			name: "requires action",
			req:  ChargeRequest{UserID: "u1", Amount: decimal.NewFromInt(10), Currency: "AED", PaymentMethodID: "pm_card_threeDSecure2Required"},
			intent: func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
				return &stripe.PaymentIntent{ID: "pi_2", Status: stripe.PaymentIntentStatusRequiresAction}, nil
			},
			wantErr: apperrors.ErrPaymentFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge, err := newTestGateway(tt.intent).Charge(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pi_1", charge.ID)
			assert.True(t, charge.Amount.Equal(decimal.RequireFromString("250.75")))
			assert.Equal(t, "AED", charge.Currency)
		})
	}
}

func TestStripeGateway_Refund(t *testing.T) {
	g := newTestGateway(nil)
	var refunded string
	g.createRefund = func(p *stripe.RefundParams) (*stripe.Refund, error) {
		refunded = *p.PaymentIntent
		return &stripe.Refund{}, nil
	}
	require.NoError(t, g.Refund(context.Background(), "pi_9"))
	assert.Equal(t, "pi_9", refunded)

	g.createRefund = func(*stripe.RefundParams) (*stripe.Refund, error) { return nil, errors.New("network") }
	assert.Error(t, g.Refund(context.Background(), "pi_9"))
}
