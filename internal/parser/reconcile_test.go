package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

func itemWithTotal(t *testing.T, total string) models.LineItem {
	t.Helper()
	return models.LineItem{Name: "X", Qty: models.UnitQuantity(1), LineTotal: dec(t, total)}
}

func TestReconcileExactMatch(t *testing.T) {
	items := []models.LineItem{itemWithTotal(t, "4.25"), itemWithTotal(t, "2.50"), itemWithTotal(t, "134.75")}
	discounts := []models.Discount{{Description: "IND", Amount: dec(t, "-5.00")}}
	grand := dec(t, "136.50")

	ct := Reconcile(items, discounts, models.Totals{GrandTotal: &grand})
	if !ct.ItemsSum.Equal(dec(t, "141.50")) {
		t.Errorf("items sum = %s, want 141.50", ct.ItemsSum)
	}
	if !ct.DiscountsSum.Equal(dec(t, "-5.00")) {
		t.Errorf("discounts sum = %s, want -5.00", ct.DiscountsSum)
	}
	if !ct.Reconciles {
		t.Error("expected reconciliation")
	}
}

func TestReconcileWithinAbsoluteTolerance(t *testing.T) {
	items := []models.LineItem{itemWithTotal(t, "100.00")}
	grand := dec(t, "100.04")
	ct := Reconcile(items, nil, models.Totals{GrandTotal: &grand})
	if !ct.Reconciles {
		t.Error("0.04 difference is within the 5 kurus floor")
	}
}

func TestReconcileWithinRelativeTolerance(t *testing.T) {
	items := []models.LineItem{itemWithTotal(t, "1009.00")}
	grand := dec(t, "1000.00")
	ct := Reconcile(items, nil, models.Totals{GrandTotal: &grand})
	if !ct.Reconciles {
		t.Error("9 lira off a 1000 lira total is within the 1% tolerance")
	}
}

func TestReconcileBeyondTolerance(t *testing.T) {
	items := []models.LineItem{itemWithTotal(t, "90.00")}
	grand := dec(t, "100.00")
	ct := Reconcile(items, nil, models.Totals{GrandTotal: &grand})
	if ct.Reconciles {
		t.Error("10% off must not reconcile")
	}
}

func TestReconcileNoPrintedTotal(t *testing.T) {
	items := []models.LineItem{itemWithTotal(t, "10.00")}
	ct := Reconcile(items, nil, models.Totals{})
	if ct.Reconciles {
		t.Error("reconciliation requires a printed grand total")
	}
	if !ct.ItemsSum.Equal(dec(t, "10.00")) {
		t.Errorf("items sum = %s, want 10.00", ct.ItemsSum)
	}
}

func TestPreferComputed(t *testing.T) {
	cases := []struct {
		computed string
		grand    string
		want     bool
	}{
		{"150.00", "100.00", true},
		{"100.50", "100.00", false},
		{"250.00", "100.00", false},
		{"-5.00", "100.00", false},
		{"0", "100.00", false},
	}
	for _, c := range cases {
		got := preferComputed(dec(t, c.computed), dec(t, c.grand))
		if got != c.want {
			t.Errorf("preferComputed(%s, %s) = %v, want %v", c.computed, c.grand, got, c.want)
		}
	}
}

func TestToleranceFloor(t *testing.T) {
	if !tolerance(dec(t, "1.00")).Equal(decimal.NewFromFloat(0.05)) {
		t.Error("small totals use the 5 kurus floor")
	}
	if !tolerance(dec(t, "1000.00")).Equal(decimal.NewFromInt(10)) {
		t.Error("large totals use the 1% relative tolerance")
	}
}
