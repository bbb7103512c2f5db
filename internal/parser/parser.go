// Package parser implements the receipt OCR-text parsing engine: given raw
// text recovered from a photographed Turkish retail receipt it reconstructs
// merchant identity, purchase date/time, payment instrument, line items,
// discounts, and reconciled totals.
//
// Parsing is a pure, synchronous computation over one immutable input string.
// Nothing is shared across calls, so a single Parse function serves any
// number of concurrent callers. For fixed input the output is identical on
// every call; missing data degrades to absent fields plus warnings, never to
// an error.
package parser

import (
	"math"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// Parse runs the full pipeline: normalize → detect format → extract fields →
// reconcile → assemble. The detected format parameterizes every extractor
// through the chain strategy table.
func Parse(rawText string) *models.ParseResult {
	detection := DetectFormat(rawText)
	chain := detection.Chain

	merchant := ExtractMerchant(rawText, chain)
	date, clock := ExtractDateTime(rawText)
	receiptNo, posID, cashierID := ExtractDocumentIDs(rawText)
	method, last4 := ExtractPayment(rawText, chain)
	items := ExtractItems(rawText, chain)
	if items == nil {
		items = []models.LineItem{}
	}
	discounts := ExtractDiscounts(rawText, chain)
	totals := ExtractTotals(rawText, chain)
	computed := Reconcile(items, discounts, totals)

	warnings := []string{}
	if date == "" {
		warnings = append(warnings, "purchase date not found")
	}
	if totals.GrandTotal == nil {
		warnings = append(warnings, "grand total not found")
	}
	if len(items) == 0 {
		warnings = append(warnings, "no line items extracted")
	}
	if totals.GrandTotal != nil && !computed.Reconciles {
		warnings = append(warnings, "item totals do not reconcile with the printed grand total")
		sum := computed.ItemsSum.Add(computed.DiscountsSum)
		if preferComputed(sum, *totals.GrandTotal) {
			totals.GrandTotal = &sum
			warnings = append(warnings, "grand total replaced by the computed item total")
		}
	}

	return &models.ParseResult{
		Merchant: merchant,
		Receipt: models.ReceiptMeta{
			PurchaseDate:  date,
			PurchaseTime:  clock,
			ReceiptNo:     receiptNo,
			POSID:         posID,
			CashierID:     cashierID,
			PaymentMethod: method,
			CardLast4:     last4,
		},
		Items:          items,
		Discounts:      discounts,
		Totals:         totals,
		ComputedTotals: computed,
		Source: models.Source{
			FormatDetected: chain.String(),
			Confidence:     math.Round(detection.Confidence*100) / 100,
			Warnings:       warnings,
		},
		RawText: rawText,
	}
}
