package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`       // e.g., "$"
	Name          string `json:"name"`         // e.g., "US Dollar"
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}

// Tolerance returns the rounding tolerance used when comparing monetary
// amounts in this currency: half of the smallest representable unit.
func (c Currency) Tolerance() decimal.Decimal {
	return decimal.New(5, -c.DecimalPlaces-1)
}

// AmountsEqual reports whether two amounts are equal within the currency's
// rounding tolerance.
func (c Currency) AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(c.Tolerance())
}
