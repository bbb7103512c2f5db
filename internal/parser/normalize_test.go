package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"46,95", "46.95", true},
		{"₺12,00", "12", true},
		{"1.234,56", "1234.56", true},
		{"*136,50", "136.5", true},
		{"-5,00", "-5", true},
		{"12.50", "12.5", true},
		{"12.500", "12500", true},
		{"136,50 TL", "136.5", true},
		{"", "", false},
		{"abc", "", false},
		{"12,34,56", "1234.56", true},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok {
			t.Errorf("ParseAmount(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		want, err := decimal.NewFromString(c.want)
		if err != nil {
			t.Fatalf("bad test case %q: %v", c.want, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got, want)
		}
	}
}

func TestNormalizeFoldsTurkishLetters(t *testing.T) {
	cases := []struct{ in, want string }{
		{"MİGROS", "migros"},
		{"ŞOK MARKETLER", "sok marketler"},
		{"BİRLEŞİK MAĞAZALAR", "birlesik magazalar"},
		{"GÜNLÜK SÜT", "gunluk sut"},
		{"ÇİKOLATA", "cikolata"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeCanonicalizesChainMisspellings(t *testing.T) {
	cases := []struct{ in, want string }{
		{"M1GROS", "migros"},
		{"MIGR0S", "migros"},
		{"CARREF0UR", "carrefour"},
		{"CARREFOUR SA", "carrefoursa"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAlphaNormalizeMapsAmbiguousDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"T0PLAM", "toplam"},
		{"8İM", "bim"},
		{"KA5İYER", "kasiyer"},
		{"F1S NO", "fis no"},
	}
	for _, c := range cases {
		if got := AlphaNormalize(c.in); got != c.want {
			t.Errorf("AlphaNormalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMoneyReRequiresDecimalGroup(t *testing.T) {
	if moneyRe.MatchString("8690504012345") {
		t.Error("barcode must not look like an amount")
	}
	if moneyRe.MatchString("FİŞ NO: 0062") {
		t.Error("document number must not look like an amount")
	}
	if !moneyRe.MatchString("TOPLAM *136,50") {
		t.Error("expected amount in total line")
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("  a \r\n\n b\n\n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitLines = %q", got)
	}
}
