package parser

import "github.com/puanla/receipt-ocr-service/internal/models"

// profile is the per-chain strategy row: everything an extractor needs to
// know about a chain's receipt layout lives here, so format-specific logic is
// a table lookup rather than duplicated pipelines.
//
// All marker strings are in the normalized (folded, lowercase) domain and are
// matched against alpha-normalized lines.
type profile struct {
	chain models.Chain

	// Discriminative substrings for format detection.
	keywords []string

	// Line-item section boundaries.
	itemStart []string
	itemEnd   []string

	// Grand-total keywords in descending reliability order. When scanBottomUp
	// is set the bottom-most matching non-VAT line wins instead (CarrefourSA
	// prints the authoritative TUTAR last).
	totalKeywords []string
	scanBottomUp  bool

	// How many lines above the grand-total line to scan for a masked PAN.
	panLookback int

	discountKeywords []string
}

// vatKeywords mark VAT subtotal lines; these must never be read as the grand
// total, whatever the chain.
var vatKeywords = []string{"topkdv", "toplam kdv", "kdv"}

var baseDiscountKeywords = []string{"indirim", "tutar ind"}

// profiles in declaration order; ties in detection confidence go to the
// earlier entry.
var profiles = []profile{
	{
		chain:            models.ChainMigros,
		keywords:         []string{"migros ticaret", "migros", "mersis no", "ortak pos", "money"},
		itemStart:        []string{"fis no", "tarih", "saat"},
		itemEnd:          []string{"topkdv", "toplam kdv", "ara toplam", "toplam", "kdv tutari"},
		totalKeywords:    []string{"genel toplam", "toplam"},
		panLookback:      0,
		discountKeywords: append([]string{"kocailem", "money ind"}, baseDiscountKeywords...),
	},
	{
		chain:            models.ChainBim,
		keywords:         []string{"birlesik magazalar", "bim", "ettn", "nihai tuketici", "odenecek kdv dahil"},
		itemStart:        []string{"fis no", "tarih", "saat"},
		itemEnd:          []string{"toplam kdv", "topkdv", "nihai tuketici", "odenecek kdv", "toplam"},
		totalKeywords:    []string{"odenecek kdv dahil tutar", "odenecek tutar", "toplam"},
		panLookback:      0,
		discountKeywords: baseDiscountKeywords,
	},
	{
		chain:            models.ChainSok,
		keywords:         []string{"sok marketler", "sok", "t.a.s", "ucz magazacilik"},
		itemStart:        []string{"fis no", "tarih", "saat"},
		itemEnd:          []string{"topkdv", "toplam kdv", "ara toplam", "toplam", "kdv tutari"},
		totalKeywords:    []string{"genel toplam", "toplam"},
		panLookback:      0,
		discountKeywords: baseDiscountKeywords,
	},
	{
		chain:            models.ChainCarrefourSA,
		keywords:         []string{"carrefoursa", "carrefour", "musteri ekstresi", "sabanci"},
		itemStart:        []string{"fis no", "tarih", "saat"},
		itemEnd:          []string{"topkdv", "toplam kdv", "toplam", "tutar"},
		totalKeywords:    []string{"tutar", "toplam"},
		scanBottomUp:     true,
		panLookback:      3,
		discountKeywords: append([]string{"crf ind"}, baseDiscountKeywords...),
	},
}

// unknownProfile covers receipts from chains we cannot classify; markers are
// the union of the common Turkish receipt conventions.
var unknownProfile = profile{
	chain:            models.ChainUnknown,
	itemStart:        []string{"fis no", "tarih", "saat"},
	itemEnd:          []string{"topkdv", "toplam kdv", "ara toplam", "genel toplam", "toplam", "odenecek"},
	totalKeywords:    []string{"genel toplam", "odenecek kdv dahil tutar", "toplam", "tutar"},
	panLookback:      0,
	discountKeywords: baseDiscountKeywords,
}

// profileFor returns the strategy row for a chain.
func profileFor(chain models.Chain) profile {
	for _, p := range profiles {
		if p.chain == chain {
			return p
		}
	}
	return unknownProfile
}
