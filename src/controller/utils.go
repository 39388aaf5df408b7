package controller

import (
	"strings"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// PercentOfFloatSafe returns the percentage of a float64 value using a safe clamped percent (1–100).
// If percent is out of range, it is automatically adjusted and logged.
func PercentOfFloatSafe(value float64, percent int) float64 {
	originalPercent := percent

	if percent < 1 {
		percent = 1
		logger.WithFields(map[string]interface{}{
			"value":        value,
			"original_pct": originalPercent,
			"adjusted_pct": percent,
		}).Warn("Percent below minimum, clamped to 1")
	}

	if percent > 100 {
		percent = 100
		logger.WithFields(map[string]interface{}{
			"value":        value,
			"original_pct": originalPercent,
			"adjusted_pct": percent,
		}).Warn("Percent above maximum, clamped to 100")
	}

	result := value * float64(percent) / 100.0

	logger.WithFields(map[string]interface{}{
		"value":   value,
		"percent": percent,
		"result":  result,
	}).Debug("Computed percentage of float value")

	return result
}

// SizeFromCash returns how many shares percent of free cash buys at price,
// truncated to precision decimals. Zero means nothing can be bought.
func SizeFromCash(free, price float64, percent int, precision int32) float64 {
	if free <= 0 || price <= 0 {
		return 0
	}
	budget := decimal.NewFromFloat(PercentOfFloatSafe(free, percent))
	qty, _ := budget.Div(decimal.NewFromFloat(price)).Truncate(precision).Float64()
	return qty
}

// NormalizeTicker trims surrounding whitespace. Tickers are case-sensitive:
// the lowercase "l" in VUSAl_EQ marks a London listing.
// Examples:
//
//	" AAPL_US_EQ" -> AAPL_US_EQ
//	" VUSAl_EQ "  -> VUSAl_EQ
func NormalizeTicker(ticker string) string {
	return strings.TrimSpace(ticker)
}
