package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// Date/time extraction strategies, most reliable first. All of them read the
// folded-but-not-alpha-normalized text: keywords are matched lowercase while
// the digits stay exactly as OCR produced them.
//
// A receipt without a recoverable date stays dateless — substituting the
// current system date would make output non-deterministic, so absence is
// reported as a warning by the assembler instead.
var (
	combinedDateTimeRe = regexp.MustCompile(`(?s)tarih\s*:?\s*(\d{1,2})[./-](\d{1,2})[./-](\d{2,4}).{0,60}?saat\s*:?\s*(\d{1,2})[:.](\d{2})`)
	labeledDateRe      = regexp.MustCompile(`tarih\s*:?\s*(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})`)
	labeledTimeRe      = regexp.MustCompile(`saat\s*:?\s*(\d{1,2})[:.](\d{2})\s*(am|pm)?`)
	bareDateRe         = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)
	bareTimeRe         = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b\s*(am|pm)?`)
)

// ExtractDateTime recovers the purchase date (DD/MM/YYYY) and time (24-hour
// HH:MM) from the text. Either result may be empty when no strategy succeeds.
func ExtractDateTime(text string) (date string, clock string) {
	norm := Normalize(text)

	if m := combinedDateTimeRe.FindStringSubmatch(norm); m != nil {
		date = formatDate(m[1], m[2], m[3])
		clock = formatTime(m[4], m[5], "")
		if date != "" && clock != "" {
			return date, clock
		}
	}

	if date == "" {
		if m := labeledDateRe.FindStringSubmatch(norm); m != nil {
			date = formatDate(m[1], m[2], m[3])
		}
	}
	if clock == "" {
		if m := labeledTimeRe.FindStringSubmatch(norm); m != nil {
			clock = formatTime(m[1], m[2], m[3])
		}
	}

	// Last resorts: any date- or time-shaped substring anywhere in the text.
	if date == "" {
		for _, m := range bareDateRe.FindAllStringSubmatch(norm, -1) {
			if d := formatDate(m[1], m[2], m[3]); d != "" {
				date = d
				break
			}
		}
	}
	if clock == "" {
		for _, m := range bareTimeRe.FindAllStringSubmatch(norm, -1) {
			if t := formatTime(m[1], m[2], m[3]); t != "" {
				clock = t
				break
			}
		}
	}
	return date, clock
}

// formatDate validates day/month/year fields and renders DD/MM/YYYY.
// Two-digit years are normalized to 20xx.
func formatDate(dayS, monthS, yearS string) string {
	day, err1 := strconv.Atoi(dayS)
	month, err2 := strconv.Atoi(monthS)
	year, err3 := strconv.Atoi(yearS)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if year < 100 {
		year += 2000
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2099 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// formatTime validates an hour/minute pair and renders 24-hour HH:MM,
// normalizing an optional AM/PM suffix.
func formatTime(hourS, minS, meridiem string) string {
	hour, err1 := strconv.Atoi(hourS)
	min, err2 := strconv.Atoi(minS)
	if err1 != nil || err2 != nil || min > 59 {
		return ""
	}
	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, min)
}
