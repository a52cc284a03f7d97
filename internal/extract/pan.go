package extract

import (
	"strings"

	"idcheck/pkg/models"
)

// PANExtractor resolves fields from the Indian PAN card layout. Unlike the
// Aadhaar strategy the three fields are independent: the PAN number line, the
// name label line and the DOB line carry no positional dependency on each
// other.
type PANExtractor struct{}

// DocumentType reports the type this extractor handles.
func (PANExtractor) DocumentType() models.DocumentType {
	return models.DocumentTypePAN
}

// Extract resolves the PAN number, name and date of birth.
func (PANExtractor) Extract(text TokenizedText) models.ExtractionResult {
	result := newResult(models.DocumentTypePAN)

	for _, line := range text.Lines {
		if m := rePAN.FindString(line); m != "" {
			result.Number = strings.ToUpper(m)
			break
		}
	}

	// The card prints "Name" above the holder's name and "Father's Name"
	// above the father's, so a line containing "name" but not "father"
	// points at the holder.
	for i, line := range text.Lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "name") || strings.Contains(lower, "father") {
			continue
		}
		if i+1 < len(text.Lines) {
			if name := stripNonAlpha(text.Lines[i+1]); name != "" {
				result.Name = name
			}
		}
		break
	}

	for _, line := range text.Lines {
		if m := reDate.FindString(line); m != "" {
			result.DOB = m
			break
		}
	}

	return result
}
