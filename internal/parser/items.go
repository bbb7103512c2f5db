package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// Line patterns in matching order, applied to the ORIGINAL line so amounts
// survive untouched. Trailing single letters are VAT-group markers.
var (
	weightLineRe = regexp.MustCompile(`(?i)^(.*?)\s*(\d+[.,]\d{1,3})\s*KG\s*[xX]\s*([₺\d.,]+)\s*(?:TL\s*/\s*KG)?\s*\*\s*(-?[\d.,]+)\s*[A-Da-d]?$`)
	qtyLineRe    = regexp.MustCompile(`^(.+?)\s+[xX]\s*(\d+)\s*\*\s*(-?[₺\d.,]+)\s*[A-Da-d]?$`)
	priceLineRe  = regexp.MustCompile(`^(.+?)\s*\*\s*(-?[₺\d.,]+)\s*[A-Da-d]?$`)
	barePriceRe  = regexp.MustCompile(`^\*?\s*(-?[₺\d.,]+)\s*[A-Da-d]?$`)

	productCodeRe = regexp.MustCompile(`^(\d{6,13})\s+(\S.*)$`)
	vatGroupRe    = regexp.MustCompile(`\s*%\s*\d{1,2}\s*$`)

	barcodeLineRe   = regexp.MustCompile(`^[#\s]*\d{8,}$`)
	separatorLineRe = regexp.MustCompile(`^[-=*#._\s]+$`)
)

// noiseMarkers disqualify a line inside the item section from being an item;
// matched against the alpha-normalized line.
var noiseMarkers = []string{
	"mersis", "vergi", "v.d.", "tckn", "tel", "www", "ettn", "e-arsiv",
	"kasiyer", "z no", "eku no", "belge", "magaza kodu", "puan",
	"para ustu", "onay kodu", "ref no", "batch",
}

type sectionState int

const (
	beforeSection sectionState = iota
	inSection
	afterSection
)

// ExtractItems walks the receipt line by line through a
// BeforeSection → InSection → AfterSection state machine driven by the
// chain profile's markers and returns the purchased items. Items with the
// same normalized name are coalesced: quantities and totals sum, raw lines
// concatenate.
func ExtractItems(text string, chain models.Chain) []models.LineItem {
	lines := splitLines(text)
	p := profileFor(chain)

	state := beforeSection
	// Texts with no recognizable section start (heavily corrupted or
	// fragmentary input) are treated as one big item section.
	if !hasStartMarker(lines, p) {
		state = inSection
	}

	var acc groupedItems
	pendingName := ""

	for _, line := range lines {
		alpha := AlphaNormalize(line)

		if state == beforeSection {
			if containsAny(alpha, p.itemStart...) {
				state = inSection
			}
			continue
		}
		if state == afterSection {
			break
		}

		// Discounts belong to their own extractor; they must not end the
		// section (CarrefourSA's "TUTAR İND." contains a total keyword).
		if isDiscountLine(alpha, p) {
			continue
		}
		if containsAny(alpha, p.itemEnd...) {
			state = afterSection
			break
		}
		if containsAny(alpha, p.itemStart...) {
			continue
		}
		if isNoiseLine(line, alpha) {
			continue
		}

		if item, ok := parseWeightLine(line, &pendingName); ok {
			acc.add(item)
			continue
		}
		if item, ok := parseQtyLine(line); ok {
			acc.add(item)
			pendingName = ""
			continue
		}
		if item, ok := parsePriceLine(line); ok {
			acc.add(item)
			pendingName = ""
			continue
		}
		if amount, ok := parseBarePriceLine(line); ok {
			if pendingName != "" {
				acc.add(models.LineItem{
					Name:      pendingName,
					Qty:       models.UnitQuantity(1),
					LineTotal: amount,
					RawLine:   pendingName + "\n" + line,
				})
				pendingName = ""
			}
			continue
		}
		if isBareName(line) {
			pendingName = strings.TrimSpace(line)
		}
	}

	return acc.items
}

func hasStartMarker(lines []string, p profile) bool {
	for _, line := range lines {
		if containsAny(AlphaNormalize(line), p.itemStart...) {
			return true
		}
	}
	return false
}

func isDiscountLine(alpha string, p profile) bool {
	return containsAny(alpha, p.discountKeywords...)
}

func isNoiseLine(line, alpha string) bool {
	if barcodeLineRe.MatchString(line) || separatorLineRe.MatchString(line) {
		return true
	}
	return containsAny(alpha, noiseMarkers...)
}

// parseWeightLine handles "<name> <qty> KG x <unit_price> TL/KG *<total>".
// A weight line without a name pairs with the pending name, if any.
func parseWeightLine(line string, pendingName *string) (models.LineItem, bool) {
	m := weightLineRe.FindStringSubmatch(line)
	if m == nil {
		return models.LineItem{}, false
	}
	weight, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", "."))
	if err != nil {
		return models.LineItem{}, false
	}
	unit, okUnit := ParseAmount(m[3])
	total, okTotal := ParseAmount(m[4])
	if !okTotal {
		return models.LineItem{}, false
	}

	name, code := splitProductCode(m[1])
	if name == "" && *pendingName != "" {
		name = *pendingName
		*pendingName = ""
	}
	if name == "" {
		return models.LineItem{}, false
	}

	item := models.LineItem{
		Name:        name,
		Qty:         models.WeightQuantity(weight),
		LineTotal:   total,
		RawLine:     line,
		ProductCode: code,
	}
	if okUnit {
		item.UnitPrice = unit
	}
	return item, true
}

// parseQtyLine handles "<name> x<N> *<total>".
func parseQtyLine(line string) (models.LineItem, bool) {
	m := qtyLineRe.FindStringSubmatch(line)
	if m == nil {
		return models.LineItem{}, false
	}
	total, ok := ParseAmount(m[3])
	if !ok {
		return models.LineItem{}, false
	}
	qty, err := decimal.NewFromString(m[2])
	if err != nil || qty.IsZero() {
		return models.LineItem{}, false
	}
	name, code := splitProductCode(m[1])
	if letterCount(name) < 2 {
		return models.LineItem{}, false
	}
	return models.LineItem{
		Name:        name,
		Qty:         models.Quantity{Count: qty},
		UnitPrice:   total.Div(qty).Round(2),
		LineTotal:   total,
		RawLine:     line,
		ProductCode: code,
	}, true
}

// parsePriceLine handles "<name> *<price>".
func parsePriceLine(line string) (models.LineItem, bool) {
	m := priceLineRe.FindStringSubmatch(line)
	if m == nil {
		return models.LineItem{}, false
	}
	total, ok := ParseAmount(m[2])
	if !ok {
		return models.LineItem{}, false
	}
	name, code := splitProductCode(m[1])
	if letterCount(name) < 2 {
		return models.LineItem{}, false
	}
	return models.LineItem{
		Name:        name,
		Qty:         models.UnitQuantity(1),
		LineTotal:   total,
		RawLine:     line,
		ProductCode: code,
	}, true
}

func parseBarePriceLine(line string) (decimal.Decimal, bool) {
	m := barePriceRe.FindStringSubmatch(line)
	if m == nil {
		return decimal.Zero, false
	}
	// A bare price always carries a kuruş part; plain integers are codes.
	if !strings.ContainsAny(m[1], ".,") {
		return decimal.Zero, false
	}
	return ParseAmount(m[1])
}

// isBareName reports whether the line is a plain product-name line that may
// pair with a bare price on a following line.
func isBareName(line string) bool {
	if letterCount(line) < 3 {
		return false
	}
	return !moneyRe.MatchString(line)
}

// splitProductCode strips a leading numeric product code and a trailing
// "%NN" VAT-group marker off an item name.
func splitProductCode(raw string) (name, code string) {
	name = strings.TrimSpace(raw)
	if m := productCodeRe.FindStringSubmatch(name); m != nil {
		code = m[1]
		name = strings.TrimSpace(m[2])
	}
	name = strings.TrimSpace(vatGroupRe.ReplaceAllString(name, ""))
	return name, code
}

// groupedItems coalesces items by normalized name while preserving
// first-seen order. Weight and unit items never merge with each other.
type groupedItems struct {
	items []models.LineItem
	index map[string]int
}

func (g *groupedItems) add(item models.LineItem) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	key := Normalize(item.Name)
	if item.Qty.IsWeight {
		key += "|kg"
	}
	if i, ok := g.index[key]; ok {
		existing := &g.items[i]
		existing.Qty = existing.Qty.Add(item.Qty)
		existing.LineTotal = existing.LineTotal.Add(item.LineTotal)
		existing.RawLine = existing.RawLine + "\n" + item.RawLine
		if existing.UnitPrice.IsZero() {
			existing.UnitPrice = item.UnitPrice
		}
		if existing.ProductCode == "" {
			existing.ProductCode = item.ProductCode
		}
		return
	}
	g.index[key] = len(g.items)
	g.items = append(g.items, item)
}
