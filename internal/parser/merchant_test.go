package parser

import (
	"strings"
	"testing"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

func TestExtractMerchantKnownChain(t *testing.T) {
	text := "MİGROS TİCARET A.Ş.\n" +
		"ATATÜRK MAH. BAĞDAT CAD. NO:5 ATAŞEHİR/İSTANBUL\n" +
		"VERGİ DAİRESİ: KOZYATAĞI V.D. 6220035905\n" +
		"TEL: 0216 123 45 67"
	info := ExtractMerchant(text, models.ChainMigros)

	if info.Name != "Migros" {
		t.Errorf("name = %q, want Migros", info.Name)
	}
	if info.TaxID != "6220035905" {
		t.Errorf("tax id = %q, want 6220035905", info.TaxID)
	}
	if info.Phone == "" {
		t.Error("phone not extracted")
	}
	if info.AddressFull == "" {
		t.Error("address not assembled")
	}
	if info.Address.City != "İstanbul" {
		t.Errorf("city = %q, want İstanbul", info.Address.City)
	}
	if info.Address.Neighborhood == "" || !strings.Contains(info.Address.Neighborhood, "mah") {
		t.Errorf("neighborhood = %q, want a MAH. fragment", info.Address.Neighborhood)
	}
}

func TestExtractMerchantUnknownChainHeaderName(t *testing.T) {
	text := "YILDIZ MARKET LTD. ŞTİ.\nANKARA\nEKMEK *4,25\nTOPLAM *4,25"
	info := ExtractMerchant(text, models.ChainUnknown)
	if info.Name != "YILDIZ MARKET LTD. ŞTİ." {
		t.Errorf("name = %q, want the header line", info.Name)
	}
	if info.Address.City != "Ankara" {
		t.Errorf("city = %q, want Ankara", info.Address.City)
	}
}

func TestExtractMerchantAddressSkipsContactLines(t *testing.T) {
	text := "MİGROS TİCARET A.Ş.\n" +
		"TEL: 0216 123 45 67 İSTANBUL\n" +
		"CUMHURİYET MAH. İZMİR"
	info := ExtractMerchant(text, models.ChainMigros)
	if strings.Contains(info.AddressFull, "TEL") {
		t.Errorf("address %q must not contain the phone line", info.AddressFull)
	}
}

func TestExtractDocumentIDs(t *testing.T) {
	text := "FİŞ NO: 0062\nEKU NO: 0001\nKASİYER: AYŞE"
	receiptNo, posID, cashierID := ExtractDocumentIDs(text)
	if receiptNo != "0062" {
		t.Errorf("receipt no = %q, want 0062", receiptNo)
	}
	if posID != "0001" {
		t.Errorf("pos id = %q, want 0001", posID)
	}
	if cashierID != "ayse" {
		t.Errorf("cashier = %q, want ayse", cashierID)
	}
}

func TestExtractDocumentIDsMissing(t *testing.T) {
	receiptNo, posID, cashierID := ExtractDocumentIDs("EKMEK *4,25")
	if receiptNo != "" || posID != "" || cashierID != "" {
		t.Errorf("got %q %q %q, want all empty", receiptNo, posID, cashierID)
	}
}
