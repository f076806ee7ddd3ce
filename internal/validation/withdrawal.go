package validation

import (
	"propmarket/internal/models"

	"github.com/shopspring/decimal"
)

// Withdrawal validates a withdrawal request and the payment details its
// method needs.
func Withdrawal(amount decimal.Decimal, method string, details models.JSON) error {
	v := New()
	v.Amount("amount", amount)
	v.OneOf("method", method, models.WithdrawalMethodBank, models.WithdrawalMethodPayPal, models.WithdrawalMethodCrypto)
	if !v.Valid() {
		return v.Err()
	}
	v.PaymentDetails(method, details)
	return v.Err()
}

// PaymentDetails checks the fields each withdrawal method requires.
func (v *Validator) PaymentDetails(method string, details models.JSON) {
	field := func(name string) string { return "payment_details." + name }

	switch method {
	case models.WithdrawalMethodBank:
		v.Required(field("account_name"), details.String("account_name"))
		v.Required(field("account_number"), details.String("account_number"))
		v.Required(field("bank_name"), details.String("bank_name"))
	case models.WithdrawalMethodPayPal:
		v.Email(field("email"), details.String("email"))
	case models.WithdrawalMethodCrypto:
		v.Required(field("wallet_address"), details.String("wallet_address"))
		v.Check(cryptoCurrencyRegex.MatchString(details.String("currency")), field("currency"), "must be 3 to 10 uppercase letters")
	}
}

// Rejection validates the reason given when rejecting a withdrawal.
func Rejection(reason string) error {
	v := New()
	v.Required("reason", reason)
	v.MaxLength("reason", reason, MaxReasonLength)
	return v.Err()
}
