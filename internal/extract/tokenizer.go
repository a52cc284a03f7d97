package extract

import "strings"

// TokenizedText is the normalized form of one OCR pass over a document image.
// Lines keep their source order; every position-relative heuristic (such as
// "the line before the date of birth is the name") indexes into Lines.
type TokenizedText struct {
	// Raw is the unmodified text the OCR engine returned.
	Raw string

	// Lines holds the trimmed, non-empty lines of Raw in source order.
	Lines []string

	// Confidence is the OCR engine's own confidence (0-100), or 0 when the
	// engine reported none.
	Confidence float64
}

// Tokenize splits raw OCR text into trimmed, non-empty lines. The order is
// strict: split on newlines, trim each piece, then drop empties. Collapsing
// before trimming would shift line adjacency and break the extractors.
func Tokenize(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r", "")
	parts := strings.Split(raw, "\n")

	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines = append(lines, p)
	}
	return lines
}

// NewTokenizedText tokenizes raw text and attaches the OCR confidence.
func NewTokenizedText(raw string, confidence float64) TokenizedText {
	return TokenizedText{
		Raw:        raw,
		Lines:      Tokenize(raw),
		Confidence: confidence,
	}
}
