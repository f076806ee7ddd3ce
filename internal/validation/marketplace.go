package validation

import "github.com/shopspring/decimal"

// Listing validates the price and duration of a new listing.
func Listing(propertyID string, price decimal.Decimal, durationDays int) error {
	v := New()
	v.Required("property_id", propertyID)
	v.Amount("price", price)
	v.Positive("duration_days", durationDays)
	return v.Err()
}

// Message validates a buyer/seller message body.
func Message(content string) error {
	v := New()
	v.Required("content", content)
	v.MaxLength("content", content, MaxMessageLength)
	return v.Err()
}
