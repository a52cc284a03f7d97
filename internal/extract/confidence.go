package extract

import (
	"idcheck/pkg/models"
)

// Confidence weights. The score is a diagnostic quality signal over the whole
// extraction; it never gates which fields are returned.
const (
	textLengthDivisor  = 100.0
	textLengthCap      = 20.0
	nameWeight         = 25.0
	dobWeight          = 25.0
	numberWeight       = 30.0
	confidenceCeiling  = 100.0
	minResolvedNameLen = 3
	minResolvedNumLen  = 9
)

// ScoreConfidence computes a 0-100 confidence value from the raw text volume
// and which of the three core fields resolved. An empty text with nothing
// resolved scores 0.
func ScoreConfidence(rawText string, result models.ExtractionResult) float64 {
	score := float64(len(rawText)) / textLengthDivisor
	if score > textLengthCap {
		score = textLengthCap
	}

	if result.Name != models.NotFound && len(result.Name) >= minResolvedNameLen {
		score += nameWeight
	}
	if result.DOB != models.NotFound && reDate.MatchString(result.DOB) {
		score += dobWeight
	}
	if number := primaryNumber(result); number != models.NotFound && len(number) >= minResolvedNumLen {
		score += numberWeight
	}

	if score > confidenceCeiling {
		score = confidenceCeiling
	}
	return score
}

// primaryNumber picks the ID number the score weighs: the Aadhaar or PAN
// number for those types, the passport number for generic documents.
func primaryNumber(result models.ExtractionResult) string {
	if result.Type == models.DocumentTypeOther {
		return result.PassportNumber
	}
	return result.Number
}
