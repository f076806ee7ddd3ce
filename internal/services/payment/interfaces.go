package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway charges cards for wallet top-ups.
type Gateway interface {
	// Charge captures amount from the payment method. A declined card
	// returns ErrPaymentFailed.
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
	// Refund returns a captured charge in full.
	Refund(ctx context.Context, chargeID string) error
}

type ChargeRequest struct {
	UserID          string
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	// IdempotencyKey deduplicates retried charges at the processor.
	IdempotencyKey string
}

type Charge struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
	Status   string
}
