package utils

import (
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// FormatWithCurrencyPrecision renders an amount rounded to the currency's
// decimal places, e.g. 12.3456 EUR -> "12.35", 12.3456 JPY -> "12".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(currency.DecimalPlaces).String()
}
