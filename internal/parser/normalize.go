package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// turkishFolder maps Turkish-specific letters to their ASCII counterparts in
// both cases, so folding can happen before lowercasing (Go's ToLower turns
// "İ" into "i" plus a combining dot, which breaks substring matching).
var turkishFolder = strings.NewReplacer(
	"İ", "i", "ı", "i", "I", "i",
	"Ğ", "g", "ğ", "g",
	"Ş", "s", "ş", "s",
	"Ç", "c", "ç", "c",
	"Ö", "o", "ö", "o",
	"Ü", "u", "ü", "u",
)

// chainSpellings canonicalizes OCR misreadings of the chain names that keep
// showing up in transcripts.
var chainSpellings = strings.NewReplacer(
	"m1gros", "migros",
	"migr0s", "migros",
	"mlgros", "migros",
	"carref0ur", "carrefour",
	"carrefovr", "carrefour",
	"carrefour sa", "carrefoursa",
)

// Normalize folds Turkish letters to ASCII, lowercases, and canonicalizes
// known chain-name misspellings. Digits are left untouched.
func Normalize(text string) string {
	folded := turkishFolder.Replace(text)
	folded = strings.ToLower(folded)
	return chainSpellings.Replace(folded)
}

// alphaDigits maps digits that OCR commonly substitutes for letters back to
// their likely letter counterparts.
func alphaDigits(r rune) rune {
	switch r {
	case '0':
		return 'o'
	case '1':
		return 'i'
	case '5':
		return 's'
	case '8':
		return 'b'
	}
	return r
}

// AlphaNormalize applies Normalize and additionally maps OCR-ambiguous digits
// to letters (0→o, 1→i, 5→s, 8→b). The result is used ONLY for keyword and
// section-boundary detection; numeric extraction always reads the original
// text, since the same substitution would corrupt money values.
func AlphaNormalize(text string) string {
	return strings.Map(alphaDigits, Normalize(text))
}

// moneyRe matches Turkish-formatted money tokens. Receipts always print the
// kuruş part, so a decimal group is required; this keeps barcodes and plain
// codes from ever looking like amounts.
var moneyRe = regexp.MustCompile(`-?₺?\s?(?:\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2}|\d+\.\d{2})`)

// ParseAmount parses a Turkish-formatted money token: comma decimal
// separator, optional dot thousands separators, optional ₺/TL/* decoration.
// "46,95" -> 46.95, "₺12,00" -> 12.00, "1.234,56" -> 1234.56.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "₺", "")
	cleaned = strings.ReplaceAll(cleaned, "*", "")
	upper := strings.ToUpper(cleaned)
	upper = strings.TrimSuffix(strings.TrimSpace(upper), " TL")
	upper = strings.TrimSuffix(upper, "TL")
	cleaned = strings.TrimSpace(upper)

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, false
	}
	for _, r := range cleaned {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return decimal.Zero, false
		}
	}

	if i := strings.LastIndex(cleaned, ","); i >= 0 {
		// Comma is the decimal separator; dots are thousands separators.
		intPart := strings.ReplaceAll(cleaned[:i], ".", "")
		intPart = strings.ReplaceAll(intPart, ",", "")
		cleaned = intPart + "." + cleaned[i+1:]
	} else if i := strings.LastIndex(cleaned, "."); i >= 0 {
		// No comma. A single dot followed by exactly two digits is a decimal
		// point ("12.50"); anything else is thousands grouping ("12.500").
		if len(cleaned)-i-1 == 2 && strings.Count(cleaned, ".") == 1 {
			// already in decimal form
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// lastAmountIn returns the last money token on the line, if any.
func lastAmountIn(line string) (decimal.Decimal, bool) {
	matches := moneyRe.FindAllString(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	return ParseAmount(matches[len(matches)-1])
}

// splitLines splits raw text into trimmed lines, keeping empty ones out.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// containsAny reports whether s contains at least one of the keywords.
func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
