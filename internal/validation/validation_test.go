package validation

import (
	"testing"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Amount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "whole", amount: "100"},
		{name: "cents", amount: "0.01"},
		{name: "trailing zeros", amount: "10.500"},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-1", wantErr: true},
		{name: "three decimals", amount: "1.001", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Amount("amount", decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.wantErr, !v.Valid())
		})
	}
}

func TestWithdrawal(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		method    string
		details   models.JSON
		wantField string
	}{
		{
			name:    "bank complete",
			method:  models.WithdrawalMethodBank,
			details: models.JSON{"account_name": "A", "account_number": "123", "bank_name": "ENBD"},
		},
		{
			name:      "bank missing number",
			method:    models.WithdrawalMethodBank,
			details:   models.JSON{"account_name": "A", "bank_name": "ENBD"},
			wantField: "payment_details.account_number",
		},
		{
			name:    "paypal",
			method:  models.WithdrawalMethodPayPal,
			details: models.JSON{"email": "me@example.com"},
		},
		{
			name:      "paypal bad email",
			method:    models.WithdrawalMethodPayPal,
			details:   models.JSON{"email": "nope"},
			wantField: "payment_details.email",
		},
		{
			name:    "crypto",
			method:  models.WithdrawalMethodCrypto,
			details: models.JSON{"wallet_address": "0xabc", "currency": "USDT"},
		},
		{
			name:      "crypto lowercase currency",
			method:    models.WithdrawalMethodCrypto,
			details:   models.JSON{"wallet_address": "0xabc", "currency": "usdt"},
			wantField: "payment_details.currency",
		},
		{
			name:      "unknown method",
			method:    "cash",
			wantField: "method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Withdrawal(amount, tt.method, tt.details)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidation)
			de, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Contains(t, de.Fields, tt.wantField)
		})
	}
}

func TestListingAndMessage(t *testing.T) {
	assert.NoError(t, Listing("p1", decimal.NewFromInt(500), 30))
	assert.ErrorIs(t, Listing("p1", decimal.NewFromInt(500), 0), apperrors.ErrValidation)
	assert.ErrorIs(t, Listing("", decimal.NewFromInt(500), 30), apperrors.ErrValidation)
	assert.ErrorIs(t, Listing("p1", decimal.Zero, 30), apperrors.ErrValidation)

	assert.NoError(t, Message("is the parking included?"))
	assert.ErrorIs(t, Message("   "), apperrors.ErrValidation)

	assert.ErrorIs(t, Rejection(""), apperrors.ErrValidation)
	assert.NoError(t, Rejection("bank details do not match"))
}
