package parser

import (
	"strings"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// FormatDetection is the classification of raw text against the known chains.
// Confidence is the ratio of matched discriminative keywords to the chain's
// total keyword count; it is informational, never a gate — extraction runs
// even at zero confidence.
type FormatDetection struct {
	Chain      models.Chain
	Confidence float64
}

// DetectFormat scores the alpha-normalized text against every chain's keyword
// set. The highest ratio wins; ties go to the chain declared first. If no
// keyword matches anywhere the result is Unknown with confidence 0.
func DetectFormat(text string) FormatDetection {
	alpha := AlphaNormalize(text)

	best := FormatDetection{Chain: models.ChainUnknown, Confidence: 0}
	for _, p := range profiles {
		matched := 0
		for _, kw := range p.keywords {
			if strings.Contains(alpha, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		confidence := float64(matched) / float64(len(p.keywords))
		if confidence > best.Confidence {
			best = FormatDetection{Chain: p.chain, Confidence: confidence}
		}
	}
	return best
}
