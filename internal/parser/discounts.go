package parser

import (
	"strings"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// ExtractDiscounts collects discount lines (İNDİRİM, TUTAR İND., loyalty
// program credits). Amounts are forced negative: a discount is always a
// credit against the total, whichever sign the OCR text carried.
func ExtractDiscounts(text string, chain models.Chain) []models.Discount {
	p := profileFor(chain)
	discounts := []models.Discount{}

	for _, line := range splitLines(text) {
		alpha := AlphaNormalize(line)
		if !isDiscountLine(alpha, p) {
			continue
		}
		amount, ok := lastAmountIn(line)
		if !ok || amount.IsZero() {
			continue
		}
		discounts = append(discounts, models.Discount{
			Description: discountDescription(line),
			Amount:      amount.Abs().Neg(),
		})
	}
	return discounts
}

// discountDescription strips the amount token and decoration off the line.
func discountDescription(line string) string {
	desc := moneyRe.ReplaceAllString(line, "")
	desc = strings.Trim(desc, " \t*:-")
	if desc == "" {
		return strings.TrimSpace(line)
	}
	return desc
}
