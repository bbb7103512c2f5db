package parser

import (
	"testing"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

func TestExtractPaymentMaskedPAN(t *testing.T) {
	cases := []struct {
		text  string
		last4 string
	}{
		{"ORTAK POS\n494314******4645\nONAY KODU: 1", "4645"},
		{"KREDİ KARTI\n521824******9016", "9016"},
		{"#521824******9016", "9016"},
		{"494314******4645 ORTAK POS", "4645"},
		{"KART: XXXX XXXX XXXX 1234", "1234"},
		{"KART ********5678", "5678"},
	}
	for _, c := range cases {
		method, last4 := ExtractPayment(c.text, models.ChainMigros)
		if method != models.PaymentCard {
			t.Errorf("ExtractPayment(%q) method = %q, want card", c.text, method)
		}
		if last4 != c.last4 {
			t.Errorf("ExtractPayment(%q) last4 = %q, want %q", c.text, last4, c.last4)
		}
	}
}

func TestExtractPaymentCash(t *testing.T) {
	method, last4 := ExtractPayment("TOPLAM *10,00\nNAKİT *10,00\nPARA ÜSTÜ *0,00", models.ChainBim)
	if method != models.PaymentCash {
		t.Errorf("method = %q, want cash", method)
	}
	if last4 != "" {
		t.Errorf("last4 = %q, want empty for cash", last4)
	}
}

func TestExtractPaymentCardMarkerWithoutPAN(t *testing.T) {
	method, last4 := ExtractPayment("TOPLAM *10,00\nTEMASSIZ ÖDEME", models.ChainMigros)
	if method != models.PaymentCard {
		t.Errorf("method = %q, want card", method)
	}
	if last4 != "" {
		t.Errorf("last4 = %q, want empty", last4)
	}
}

func TestExtractPaymentUnknown(t *testing.T) {
	method, _ := ExtractPayment("EKMEK *4,25\nTOPLAM *4,25", models.ChainSok)
	if method != models.PaymentUnknown {
		t.Errorf("method = %q, want unknown", method)
	}
}

func TestExtractPaymentCarrefourLookback(t *testing.T) {
	// The PAN block sits just above the bottom-most TUTAR line.
	text := "CARREFOURSA\nPEYNİR *45,00\nTOPKDV *3,33\n" +
		"454360******1122\nKREDİ KARTI\nTUTAR *45,00"
	method, last4 := ExtractPayment(text, models.ChainCarrefourSA)
	if method != models.PaymentCard {
		t.Errorf("method = %q, want card", method)
	}
	if last4 != "1122" {
		t.Errorf("last4 = %q, want 1122", last4)
	}
}

func TestExtractPaymentNeverLeaksFullPAN(t *testing.T) {
	_, last4 := ExtractPayment("521824******9016", models.ChainUnknown)
	if len(last4) > 4 {
		t.Fatalf("last4 = %q leaks more than 4 digits", last4)
	}
}
