package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Chain identifies a supported Turkish retail chain.
type Chain int

const (
	ChainUnknown Chain = iota
	ChainMigros
	ChainBim
	ChainSok
	ChainCarrefourSA
)

// String returns the canonical display name of the chain.
func (c Chain) String() string {
	switch c {
	case ChainMigros:
		return "Migros"
	case ChainBim:
		return "BİM"
	case ChainSok:
		return "ŞOK"
	case ChainCarrefourSA:
		return "CarrefourSA"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the chain as its display name.
func (c Chain) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// PaymentMethod classifies how the receipt was paid.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentUnknown PaymentMethod = "unknown"
)

// MerchantInfo holds the merchant identity recovered from the receipt header.
type MerchantInfo struct {
	Name        string        `json:"name"`
	Branch      string        `json:"branch,omitempty"`
	AddressFull string        `json:"address_full,omitempty"`
	Address     ParsedAddress `json:"address_parsed"`
	TaxID       string        `json:"tax_id,omitempty"`
	Phone       string        `json:"phone,omitempty"`
}

// ParsedAddress is the best-effort decomposition of the address lines.
type ParsedAddress struct {
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
}

// ReceiptMeta holds document-level fields of the receipt.
// PurchaseDate is DD/MM/YYYY and PurchaseTime 24-hour HH:MM; both stay empty
// when the text does not contain them (no fabricated defaults).
type ReceiptMeta struct {
	PurchaseDate  string        `json:"purchase_date,omitempty"`
	PurchaseTime  string        `json:"purchase_time,omitempty"`
	ReceiptNo     string        `json:"receipt_no,omitempty"`
	POSID         string        `json:"pos_id,omitempty"`
	CashierID     string        `json:"cashier_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CardLast4     string        `json:"card_last4_masked,omitempty"`
}

// Quantity is either a unit count or a weight in kilograms.
type Quantity struct {
	Count    decimal.Decimal `json:"-"`
	WeightKG decimal.Decimal `json:"-"`
	IsWeight bool            `json:"-"`
}

// UnitQuantity builds a plain unit-count quantity.
func UnitQuantity(n int64) Quantity {
	return Quantity{Count: decimal.NewFromInt(n)}
}

// WeightQuantity builds a weight-based quantity in kilograms.
func WeightQuantity(kg decimal.Decimal) Quantity {
	return Quantity{WeightKG: kg, IsWeight: true}
}

// Add merges another quantity of the same kind into q.
func (q Quantity) Add(other Quantity) Quantity {
	if q.IsWeight || other.IsWeight {
		return Quantity{
			WeightKG: q.WeightKG.Add(other.WeightKG),
			IsWeight: true,
		}
	}
	return Quantity{Count: q.Count.Add(other.Count)}
}

// MarshalJSON encodes unit counts as numbers and weights as "<kg> KG".
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsWeight {
		return json.Marshal(fmt.Sprintf("%s KG", q.WeightKG.String()))
	}
	return []byte(q.Count.String()), nil
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		kg, err := decimal.NewFromString(strings.TrimSuffix(s, " KG"))
		if err != nil {
			return fmt.Errorf("invalid weight quantity %q", s)
		}
		*q = WeightQuantity(kg)
		return nil
	}
	var n decimal.Decimal
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid quantity %s", data)
	}
	*q = Quantity{Count: n}
	return nil
}

// LineItem is one purchased article. Identical items within a receipt are
// coalesced: quantities and totals sum, raw lines are concatenated.
type LineItem struct {
	Name        string          `json:"name"`
	Qty         Quantity        `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
	RawLine     string          `json:"raw_line"`
	ProductCode string          `json:"product_code,omitempty"`
}

// Discount is a credit against the total; Amount is always <= 0.
type Discount struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Totals are the amounts printed on the receipt. Each field is optional
// because not every chain's layout exposes every one of them.
type Totals struct {
	Subtotal   *decimal.Decimal `json:"subtotal,omitempty"`
	VATTotal   *decimal.Decimal `json:"vat_total,omitempty"`
	GrandTotal *decimal.Decimal `json:"grand_total,omitempty"`
}

// ComputedTotals are recomputed from items and discounts and compared against
// the printed grand total.
type ComputedTotals struct {
	ItemsSum     decimal.Decimal `json:"items_sum"`
	DiscountsSum decimal.Decimal `json:"discounts_sum"`
	Reconciles   bool            `json:"reconciles"`
}

// Source reports how the text was classified and what went wrong.
type Source struct {
	FormatDetected string   `json:"format_detected"`
	Confidence     float64  `json:"confidence"`
	Warnings       []string `json:"warnings"`
}

// ParseResult is the root aggregate returned for one parse call. It is
// assembled once and never mutated afterwards.
type ParseResult struct {
	Merchant       MerchantInfo   `json:"merchant"`
	Receipt        ReceiptMeta    `json:"receipt"`
	Items          []LineItem     `json:"items"`
	Discounts      []Discount     `json:"discounts"`
	Totals         Totals         `json:"totals"`
	ComputedTotals ComputedTotals `json:"computed_totals"`
	Source         Source         `json:"source"`
	RawText        string         `json:"raw_text"`
}
