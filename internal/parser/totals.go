package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// ExtractTotals recovers the printed subtotal, VAT total, and grand total
// using the chain profile's keyword order. The VAT subtotal (TOPKDV /
// TOPLAM KDV) is never accepted as the grand total. Amounts printed on a
// following line are picked up with a lookahead of up to two lines. As an
// absolute last resort the largest money value anywhere in the text is taken
// as the grand total.
func ExtractTotals(text string, chain models.Chain) models.Totals {
	lines := splitLines(text)
	alpha := make([]string, len(lines))
	for i, l := range lines {
		alpha[i] = AlphaNormalize(l)
	}
	p := profileFor(chain)

	var t models.Totals
	for i := range lines {
		if t.VATTotal == nil && containsAny(alpha[i], "topkdv", "toplam kdv", "kdv tutari") {
			if amt, ok := amountAt(lines, i, 2); ok {
				t.VATTotal = &amt
			}
		}
		if t.Subtotal == nil && containsAny(alpha[i], "ara toplam", "aratoplam") {
			if amt, ok := amountAt(lines, i, 2); ok {
				t.Subtotal = &amt
			}
		}
	}

	if p.scanBottomUp {
		// CarrefourSA: the authoritative amount is the bottom-most TUTAR /
		// TOPLAM line that is not a VAT line.
		for i := len(lines) - 1; i >= 0; i-- {
			if containsAny(alpha[i], p.totalKeywords...) && !containsAny(alpha[i], vatKeywords...) {
				if amt, ok := amountAt(lines, i, 2); ok {
					t.GrandTotal = &amt
					break
				}
			}
		}
	} else {
	keywordSearch:
		for _, kw := range p.totalKeywords {
			for i := range lines {
				if !strings.Contains(alpha[i], kw) {
					continue
				}
				// A keyword that itself names KDV ("odenecek kdv dahil tutar")
				// must not be rejected by the VAT-line exclusion.
				if !strings.Contains(kw, "kdv") && (containsAny(alpha[i], vatKeywords...) || strings.Contains(alpha[i], "ara toplam")) {
					continue
				}
				if amt, ok := amountAt(lines, i, 2); ok {
					t.GrandTotal = &amt
					break keywordSearch
				}
			}
		}
	}

	if t.GrandTotal == nil {
		if amt, ok := largestAmount(lines); ok {
			t.GrandTotal = &amt
		}
	}
	return t
}

// amountAt returns the last money token on line i, looking ahead up to
// lookahead further lines when the amount sits below its label.
func amountAt(lines []string, i, lookahead int) (decimal.Decimal, bool) {
	for j := i; j <= i+lookahead && j < len(lines); j++ {
		if amt, ok := lastAmountIn(lines[j]); ok {
			return amt, true
		}
	}
	return decimal.Zero, false
}

// largestAmount scans every line for the biggest positive money value.
func largestAmount(lines []string) (decimal.Decimal, bool) {
	best := decimal.Zero
	found := false
	for _, line := range lines {
		for _, m := range moneyRe.FindAllString(line, -1) {
			if amt, ok := ParseAmount(m); ok && amt.GreaterThan(best) {
				best = amt
				found = true
			}
		}
	}
	return best, found
}
