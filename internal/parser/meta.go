package parser

import (
	"regexp"
	"strings"
)

var (
	receiptNoRe = regexp.MustCompile(`fis no\s*:?\s*([0-9]+)`)
	posIDRe     = regexp.MustCompile(`(?:eku no|pos no|z no)\s*:?\s*([0-9]+)`)
	cashierRe   = regexp.MustCompile(`(?:kasiyer|kasa no|kasa)\s*:?\s*([^\n]+)`)
)

// ExtractDocumentIDs pulls the receipt number, POS/device id, and cashier id
// from the folded text. Any of them may be empty.
func ExtractDocumentIDs(text string) (receiptNo, posID, cashierID string) {
	norm := Normalize(text)

	if m := receiptNoRe.FindStringSubmatch(norm); m != nil {
		receiptNo = m[1]
	}
	if m := posIDRe.FindStringSubmatch(norm); m != nil {
		posID = m[1]
	}
	if m := cashierRe.FindStringSubmatch(norm); m != nil {
		cashierID = strings.TrimSpace(m[1])
	}
	return receiptNo, posID, cashierID
}
