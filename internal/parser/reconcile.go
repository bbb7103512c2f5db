package parser

import (
	"github.com/shopspring/decimal"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

var (
	// Tolerance for matching the computed total against the printed one:
	// 1% of the printed value, floored at 5 kuruş for small receipts.
	relativeTolerance = decimal.NewFromFloat(0.01)
	absoluteTolerance = decimal.NewFromFloat(0.05)

	two = decimal.NewFromInt(2)
)

// Reconcile recomputes the total from items and discounts and compares it
// against the printed grand total. Reconciles is true only when the printed
// value exists and the difference is within tolerance.
func Reconcile(items []models.LineItem, discounts []models.Discount, totals models.Totals) models.ComputedTotals {
	ct := models.ComputedTotals{
		ItemsSum:     decimal.Zero,
		DiscountsSum: decimal.Zero,
	}
	for _, it := range items {
		ct.ItemsSum = ct.ItemsSum.Add(it.LineTotal)
	}
	for _, d := range discounts {
		ct.DiscountsSum = ct.DiscountsSum.Add(d.Amount)
	}

	if totals.GrandTotal == nil {
		return ct
	}
	computed := ct.ItemsSum.Add(ct.DiscountsSum)
	diff := computed.Sub(*totals.GrandTotal).Abs()
	ct.Reconciles = diff.LessThanOrEqual(tolerance(*totals.GrandTotal))
	return ct
}

// tolerance returns max(0.05, 1% of the printed total).
func tolerance(grand decimal.Decimal) decimal.Decimal {
	rel := grand.Abs().Mul(relativeTolerance)
	if rel.GreaterThan(absoluteTolerance) {
		return rel
	}
	return absoluteTolerance
}

// preferComputed decides whether the computed total should replace the
// printed one: only when they disagree beyond tolerance, the computed value
// is positive, and it is not more than twice the printed value (a computed
// total that far off means the item extraction, not the printed total, is
// suspect).
func preferComputed(computed, grand decimal.Decimal) bool {
	diff := computed.Sub(grand).Abs()
	if diff.LessThanOrEqual(tolerance(grand)) {
		return false
	}
	return computed.IsPositive() && computed.LessThanOrEqual(grand.Mul(two))
}
