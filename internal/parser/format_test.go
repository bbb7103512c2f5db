package parser

import (
	"testing"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

func TestDetectFormatPerChain(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.Chain
	}{
		{
			name: "migros",
			text: "MİGROS TİCARET A.Ş.\nORTAK POS\nTOPLAM *10,00",
			want: models.ChainMigros,
		},
		{
			name: "bim",
			text: "BİM BİRLEŞİK MAĞAZALAR A.Ş.\nNİHAİ TÜKETİCİ\nÖDENECEK KDV DAHİL TUTAR *10,00",
			want: models.ChainBim,
		},
		{
			name: "sok",
			text: "ŞOK MARKETLER TİCARET A.Ş.\nTOPLAM *10,00",
			want: models.ChainSok,
		},
		{
			name: "carrefoursa",
			text: "CARREFOURSA CARREFOUR SABANCI TİCARET MERKEZİ A.Ş.\nTUTAR *10,00",
			want: models.ChainCarrefourSA,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DetectFormat(c.text)
			if got.Chain != c.want {
				t.Fatalf("DetectFormat = %s, want %s", got.Chain, c.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("confidence %v out of (0,1]", got.Confidence)
			}
		})
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	got := DetectFormat("YILDIZ BAKKALİYE\nEKMEK *4,25\nTOPLAM *4,25")
	if got.Chain != models.ChainUnknown {
		t.Fatalf("DetectFormat = %s, want Unknown", got.Chain)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", got.Confidence)
	}
}

func TestDetectFormatSurvivesDigitSubstitution(t *testing.T) {
	got := DetectFormat("M1GROS TİCARET A.Ş.\nTOPLAM *10,00")
	if got.Chain != models.ChainMigros {
		t.Fatalf("DetectFormat = %s, want Migros", got.Chain)
	}
}

func TestDetectFormatMoreKeywordsRaiseConfidence(t *testing.T) {
	weak := DetectFormat("MİGROS")
	strong := DetectFormat("MİGROS TİCARET A.Ş.\nMERSİS NO: 1\nORTAK POS")
	if strong.Confidence <= weak.Confidence {
		t.Errorf("confidence should grow with matched keywords: weak=%v strong=%v",
			weak.Confidence, strong.Confidence)
	}
}
