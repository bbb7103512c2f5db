package parser

import (
	"regexp"
	"strings"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// Major-city keywords in the normalized domain, mapped to display spellings.
var cities = []struct {
	key     string
	display string
}{
	{"istanbul", "İstanbul"},
	{"ankara", "Ankara"},
	{"izmir", "İzmir"},
	{"bursa", "Bursa"},
	{"antalya", "Antalya"},
	{"adana", "Adana"},
	{"konya", "Konya"},
	{"gaziantep", "Gaziantep"},
	{"sanliurfa", "Şanlıurfa"},
	{"mersin", "Mersin"},
	{"kayseri", "Kayseri"},
	{"eskisehir", "Eskişehir"},
	{"diyarbakir", "Diyarbakır"},
	{"samsun", "Samsun"},
	{"denizli", "Denizli"},
	{"kocaeli", "Kocaeli"},
	{"trabzon", "Trabzon"},
}

var addressMarkers = []string{"cad.", "cad ", "cadde", "mah.", "mah ", "mahalle", "sok.", "sokak", "bulv", "bulvar"}

// contactMarkers disqualify a line from being part of the address.
var contactMarkers = []string{"tel", "telefon", "faks", "fax", "vergi", "vkn", "tckn", "mersis", "www", "@", "e-arsiv", "musteri hizmet"}

var (
	taxIDRe  = regexp.MustCompile(`(?:vergi no|vergi dairesi|vkn|v\.d\.)[^0-9]{0,30}(\d{10,11})`)
	phoneRe  = regexp.MustCompile(`(?:telefon|tel)[^0-9]{0,6}((?:0\s*)?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2})`)
	streetRe = regexp.MustCompile(`([\p{L}0-9./]+(?:\s+[\p{L}0-9./]+)?\s+(?:cad(?:de(?:si)?)?|sok(?:ak|agi)?|bulv(?:ari)?|bulvar)\.?)`)
	hoodRe   = regexp.MustCompile(`([\p{L}0-9./]+(?:\s+[\p{L}0-9./]+)?\s+mah(?:alle(?:si)?)?\.?)`)
	branchRe = regexp.MustCompile(`([^\n]*sube[^\n]*)`)
)

// ExtractMerchant recovers merchant identity and address. The display name
// comes from the detected chain when known, otherwise from the best-looking
// header line of the raw text.
func ExtractMerchant(text string, chain models.Chain) models.MerchantInfo {
	lines := splitLines(text)
	info := models.MerchantInfo{}

	if chain != models.ChainUnknown {
		info.Name = chain.String()
	} else {
		info.Name = headerName(lines)
	}

	norm := Normalize(text)
	if m := taxIDRe.FindStringSubmatch(norm); m != nil {
		info.TaxID = m[1]
	}
	if m := phoneRe.FindStringSubmatch(norm); m != nil {
		info.Phone = strings.TrimSpace(m[1])
	}
	if m := branchRe.FindStringSubmatch(norm); m != nil {
		branch := strings.TrimSpace(m[1])
		if !containsAny(branch, contactMarkers...) {
			info.Branch = branch
		}
	}

	info.AddressFull = assembleAddress(lines)
	info.Address = parseAddress(info.AddressFull)
	return info
}

// headerName picks the merchant line for unknown chains: among the first few
// lines, prefer one carrying a company marker, else take the first line that
// reads like a name at all.
func headerName(lines []string) string {
	limit := len(lines)
	if limit > 6 {
		limit = 6
	}
	fallback := ""
	for _, line := range lines[:limit] {
		alpha := AlphaNormalize(line)
		if containsAny(alpha, contactMarkers...) || containsAny(alpha, addressMarkers...) {
			continue
		}
		if letterCount(line) < 3 {
			continue
		}
		if containsAny(alpha, "a.s", "ltd", "ticaret", "market", "magazalar", "gida") {
			return line
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r > 127 {
			n++
		}
	}
	return n
}

// assembleAddress joins the lines that look like address fragments, skipping
// anything with phone/contact/tax markers.
func assembleAddress(lines []string) string {
	var parts []string
	for _, line := range lines {
		alpha := AlphaNormalize(line)
		if containsAny(alpha, contactMarkers...) {
			continue
		}
		match := containsAny(alpha, addressMarkers...)
		if !match {
			for _, c := range cities {
				if strings.Contains(alpha, c.key) {
					match = true
					break
				}
			}
		}
		if match {
			parts = append(parts, line)
		}
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, " ")
}

// parseAddress decomposes the assembled address into street, neighborhood,
// and city. All components are best effort.
func parseAddress(full string) models.ParsedAddress {
	parsed := models.ParsedAddress{}
	if full == "" {
		return parsed
	}
	norm := Normalize(full)

	if m := streetRe.FindStringSubmatch(norm); m != nil {
		parsed.Street = strings.TrimSpace(m[1])
	}
	if m := hoodRe.FindStringSubmatch(norm); m != nil {
		parsed.Neighborhood = strings.TrimSpace(m[1])
	}
	for _, c := range cities {
		if strings.Contains(norm, c.key) {
			parsed.City = c.display
			break
		}
	}
	return parsed
}
