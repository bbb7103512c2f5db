package parser

import (
	"regexp"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// Masked-PAN shapes seen on Turkish receipts, in matching order. Each
// pattern's first group is the exposed last-4 digits.
var panPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4,6}\*{4,10}(\d{4})`),
	regexp.MustCompile(`[Xx]{4}\s+[Xx]{4}\s+[Xx]{4}\s+(\d{4})`),
	regexp.MustCompile(`\*{6,}(\d{4})`),
}

var cardMarkers = []string{"kredi karti", "banka karti", "ortak pos", "temassiz", "kart"}

// ExtractPayment classifies the payment instrument and, for card payments,
// recovers the last 4 digits of the masked PAN. The PAN search runs over the
// original text; for CarrefourSA it is anchored to the lines just above the
// bottom non-VAT TUTAR line, where that chain prints the card block.
func ExtractPayment(text string, chain models.Chain) (models.PaymentMethod, string) {
	lines := splitLines(text)
	p := profileFor(chain)

	last4 := ""
	if p.panLookback > 0 {
		if i := bottomTotalLine(lines, p); i > 0 {
			start := i - p.panLookback
			if start < 0 {
				start = 0
			}
			last4 = findPAN(lines[start:i])
		}
	}
	if last4 == "" {
		last4 = findPAN(lines)
	}

	alpha := AlphaNormalize(text)
	switch {
	case containsAny(alpha, "nakit"):
		return models.PaymentCash, ""
	case last4 != "":
		return models.PaymentCard, last4
	case containsAny(alpha, cardMarkers...):
		return models.PaymentCard, ""
	default:
		return models.PaymentUnknown, ""
	}
}

// findPAN returns the last-4 digits of the first masked PAN in the lines.
func findPAN(lines []string) string {
	for _, line := range lines {
		for _, re := range panPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// bottomTotalLine finds the index of the bottom-most line matching the
// profile's total keywords while not being a VAT line, or -1.
func bottomTotalLine(lines []string, p profile) int {
	for i := len(lines) - 1; i >= 0; i-- {
		alpha := AlphaNormalize(lines[i])
		if containsAny(alpha, p.totalKeywords...) && !containsAny(alpha, vatKeywords...) {
			return i
		}
	}
	return -1
}
