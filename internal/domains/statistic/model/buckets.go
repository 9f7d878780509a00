package model

import "github.com/shopspring/decimal"

// Stock status buckets.
const (
	StockOutOfStock = "out_of_stock"
	StockLow        = "low"
	StockAdequate   = "adequate"
	StockAmple      = "ample"
)

// Warning levels, ordered by urgency.
const (
	WarningCritical = "critical"
	WarningHigh     = "high"
	WarningMedium   = "medium"
	WarningLow      = "low"
)

// SupplyAmple is the displayed months-of-supply figure for a book with no
// sales velocity: without a depletion rate the supply never runs down.
const SupplyAmple = "ample"

// StockStatus buckets an absolute quantity.
func StockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= 5:
		return StockLow
	case quantity <= 20:
		return StockAdequate
	default:
		return StockAmple
	}
}

var (
	halfMonth = decimal.NewFromFloat(0.5)
	oneMonth  = decimal.NewFromInt(1)
)

// MonthsOfSupply is quantity divided by the trailing-month sales velocity;
// nil when nothing sold, since no depletion rate exists.
func MonthsOfSupply(quantity, lastMonthSales int) *decimal.Decimal {
	if lastMonthSales <= 0 {
		return nil
	}
	mos := decimal.NewFromInt(int64(quantity)).
		DivRound(decimal.NewFromInt(int64(lastMonthSales)), 2)
	return &mos
}

// WarningLevel buckets a book by how soon its stock runs out. An empty shelf
// is critical regardless of velocity; zero velocity has no depletion date
// and lands in the lowest bucket.
func WarningLevel(quantity int, monthsOfSupply *decimal.Decimal) string {
	if quantity <= 0 {
		return WarningCritical
	}
	if monthsOfSupply == nil {
		return WarningLow
	}
	switch {
	case monthsOfSupply.LessThanOrEqual(halfMonth):
		return WarningHigh
	case monthsOfSupply.LessThanOrEqual(oneMonth):
		return WarningMedium
	default:
		return WarningLow
	}
}

// FormatMonthsOfSupply renders the supply figure for the shortage view,
// with the no-velocity case shown as SupplyAmple.
func FormatMonthsOfSupply(monthsOfSupply *decimal.Decimal) string {
	if monthsOfSupply == nil {
		return SupplyAmple
	}
	return monthsOfSupply.String()
}
