package extract

import (
	"idcheck/pkg/models"
)

// aadhaarDigits is how many digits an Aadhaar number carries. Longer digit
// runs are OCR noise and get truncated before regrouping.
const aadhaarDigits = 12

// AadhaarExtractor resolves fields from the UIDAI Aadhaar card layout.
// The name heuristic leans on that layout printing the holder's name directly
// above the date of birth.
type AadhaarExtractor struct{}

// DocumentType reports the type this extractor handles.
func (AadhaarExtractor) DocumentType() models.DocumentType {
	return models.DocumentTypeAadhaar
}

// Extract resolves name, date of birth and the Aadhaar number. Each field
// falls back to the NotFound sentinel independently; nothing here fails.
func (AadhaarExtractor) Extract(text TokenizedText) models.ExtractionResult {
	result := newResult(models.DocumentTypeAadhaar)

	// DOB anchors the name: the line right above the first DD/MM/YYYY line
	// is taken as the holder's name.
	for i, line := range text.Lines {
		m := reDate.FindString(line)
		if m == "" {
			continue
		}
		result.DOB = m
		if i > 0 {
			if name := stripNonAlpha(text.Lines[i-1]); name != "" {
				result.Name = name
			}
		}
		break
	}

	for _, line := range text.Lines {
		if !reAadhaar.MatchString(line) {
			continue
		}
		digits := reNonDigit.ReplaceAllString(line, "")
		if len(digits) > aadhaarDigits {
			digits = digits[:aadhaarDigits]
		}
		result.Number = groupDigits(digits)
		break
	}

	return result
}
