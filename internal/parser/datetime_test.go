package parser

import "testing"

func TestExtractDateTimeLabeled(t *testing.T) {
	date, clock := ExtractDateTime("TARİH: 09.01.2025\nSAAT: 17:28")
	if date != "09/01/2025" {
		t.Errorf("date = %q, want 09/01/2025", date)
	}
	if clock != "17:28" {
		t.Errorf("clock = %q, want 17:28", clock)
	}
}

func TestExtractDateTimeSeparatorVariants(t *testing.T) {
	cases := []struct {
		text      string
		wantDate  string
		wantClock string
	}{
		{"TARİH : 5-3-24\nSAAT : 9.05", "05/03/2024", "09:05"},
		{"TARIH:01/12/2025 SAAT:08:30", "01/12/2025", "08:30"},
	}
	for _, c := range cases {
		date, clock := ExtractDateTime(c.text)
		if date != c.wantDate {
			t.Errorf("ExtractDateTime(%q) date = %q, want %q", c.text, date, c.wantDate)
		}
		if clock != c.wantClock {
			t.Errorf("ExtractDateTime(%q) clock = %q, want %q", c.text, clock, c.wantClock)
		}
	}
}

func TestExtractDateTimeBareFallback(t *testing.T) {
	date, clock := ExtractDateTime("FİŞ NO: 12\n09.01.2025 17:28\nTOPLAM *5,00")
	if date != "09/01/2025" {
		t.Errorf("date = %q, want 09/01/2025", date)
	}
	if clock != "17:28" {
		t.Errorf("clock = %q, want 17:28", clock)
	}
}

func TestExtractDateTimeRejectsImpossibleValues(t *testing.T) {
	date, _ := ExtractDateTime("TARİH: 45.13.2025")
	if date != "" {
		t.Errorf("date = %q, want empty for impossible day/month", date)
	}
}

func TestExtractDateTimeMissingStaysEmpty(t *testing.T) {
	date, clock := ExtractDateTime("EKMEK *4,25\nTOPLAM *4,25")
	if date != "" || clock != "" {
		t.Errorf("got date=%q clock=%q, want both empty", date, clock)
	}
}

func TestFormatTimeMeridiem(t *testing.T) {
	if got := formatTime("5", "30", "pm"); got != "17:30" {
		t.Errorf("formatTime pm = %q, want 17:30", got)
	}
	if got := formatTime("12", "05", "am"); got != "00:05" {
		t.Errorf("formatTime am = %q, want 00:05", got)
	}
}
