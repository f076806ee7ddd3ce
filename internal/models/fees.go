package models

import "github.com/shopspring/decimal"

// DefaultPlatformFeeRate is the share of every marketplace sale kept by the platform.
var DefaultPlatformFeeRate = decimal.RequireFromString("0.5")

// CommissionSplit is the breakdown of a marketplace sale price.
type CommissionSplit struct {
	SalePrice     decimal.Decimal `json:"sale_price"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	SellerEarning decimal.Decimal `json:"seller_earning"`
}

// SplitCommission rounds the platform fee half-up to 0.01 and gives the
// remainder to the seller, so fee + earning always equals the price.
func SplitCommission(price, rate decimal.Decimal) CommissionSplit {
	fee := price.Mul(rate).Round(2)
	return CommissionSplit{
		SalePrice:     price,
		PlatformFee:   fee,
		SellerEarning: price.Sub(fee),
	}
}
