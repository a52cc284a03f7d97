package extract

import (
	"regexp"
	"strings"

	"idcheck/pkg/models"
)

// Bounds on auxiliary field values and next-line nationality candidates.
// Values outside the window are OCR noise (stray characters or whole
// paragraphs picked up by accident).
const (
	auxiliaryMinLen = 2
	auxiliaryMaxLen = 99

	nationalityNextLineMinLen = 2
	nationalityNextLineMaxLen = 49
)

// OtherExtractor resolves fields from passports and generic identity
// documents. With no fixed layout to lean on, every field runs a two-phase
// resolution: a cue-term phase anchored on label words, then a whole-document
// pattern scan as fallback.
type OtherExtractor struct{}

// DocumentType reports the type this extractor handles.
func (OtherExtractor) DocumentType() models.DocumentType {
	return models.DocumentTypeOther
}

// Extract resolves dob, name, passport number, serial number, expiry,
// auxiliary fields and nationality, in that order. Passport and serial
// numbers resolve independently; a line matching both shape families feeds
// both fields.
func (OtherExtractor) Extract(text TokenizedText) models.ExtractionResult {
	result := newResult(models.DocumentTypeOther)
	result.Nationality = models.NotFound
	result.PassportNumber = models.NotFound
	result.SerialNumber = models.NotFound
	result.PassportExpiry = models.NotFound

	for _, line := range text.Lines {
		if m := reDate.FindString(line); m != "" {
			result.DOB = m
			break
		}
	}

	if name, ok := extractLabeledName(text.Lines); ok {
		result.Name = name
	}

	if v, ok := cueAnchoredScan(text.Lines, passportCueTerms, passportPatterns); ok {
		result.PassportNumber = v
	}

	if v, ok := scanLines(text.Lines, serialPatterns); ok {
		result.SerialNumber = v
	}

	if v, ok := cueAnchoredScan(text.Lines, expiryCueTerms, expiryPatterns); ok {
		result.PassportExpiry = v
	}

	result.AdditionalFields = extractAuxiliaryFields(text.Lines)

	if v, ok := extractNationality(text.Lines); ok {
		result.Nationality = v
	}

	return result
}

// extractLabeledName finds the first line containing "NAME". When splitting
// on the label leaves a non-empty remainder the remainder is the name,
// otherwise the whole line is used, alphabetic-stripped either way.
func extractLabeledName(lines []string) (string, bool) {
	idx := findLine(lines, "NAME")
	if idx < 0 {
		return "", false
	}

	stripped := stripNonAlpha(lines[idx])
	if rem, ok := remainderAfter(stripped, "NAME"); ok {
		if rem = strings.TrimSpace(rem); rem != "" {
			return rem, true
		}
	}
	if stripped == "" {
		return "", false
	}
	return stripped, true
}

// cueAnchoredScan looks for the first line containing any cue term and tries
// the patterns against that line, then the line after it. Without a cue line
// it falls back to scanning the whole document.
func cueAnchoredScan(lines []string, cues []string, patterns []*regexp.Regexp) (string, bool) {
	idx := findLineAny(lines, cues)
	if idx < 0 {
		return scanLines(lines, patterns)
	}

	if v, ok := firstMatch(patterns, lines[idx]); ok {
		return v, true
	}
	if idx+1 < len(lines) {
		if v, ok := firstMatch(patterns, lines[idx+1]); ok {
			return v, true
		}
	}
	return "", false
}

// findLineAny returns the index of the first line containing any of the
// terms, or -1.
func findLineAny(lines []string, terms []string) int {
	for i, line := range lines {
		for _, term := range terms {
			if containsFold(line, term) {
				return i
			}
		}
	}
	return -1
}

// extractAuxiliaryFields resolves the fixed label dictionary. The value is
// the same-line remainder after the label when that sanitizes to something
// non-empty, else the next line. Values outside the accepted length window
// are dropped entirely; the mapping never carries the NotFound sentinel.
func extractAuxiliaryFields(lines []string) map[string]string {
	fields := make(map[string]string)

	for _, label := range auxiliaryLabels {
		idx := findLine(lines, label.Term)
		if idx < 0 {
			continue
		}

		var value string
		if rem, ok := remainderAfter(lines[idx], label.Term); ok {
			value = sanitizeAuxiliary(rem)
		}
		if value == "" && idx+1 < len(lines) {
			value = sanitizeAuxiliary(lines[idx+1])
		}

		if len(value) >= auxiliaryMinLen && len(value) <= auxiliaryMaxLen {
			fields[label.Field] = value
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// extractNationality runs the cue-term phase first: for the first cue term
// present in any line, the same-line remainder wins when non-empty, else the
// next line within the length window. Only when no cue term resolves does the
// country-name dictionary scan run.
func extractNationality(lines []string) (string, bool) {
	for _, term := range nationalityCueTerms {
		idx := findLine(lines, term)
		if idx < 0 {
			continue
		}

		if rem, ok := remainderAfter(lines[idx], term); ok {
			if candidate := stripNonAlpha(rem); candidate != "" {
				return candidate, true
			}
		}
		if idx+1 < len(lines) {
			next := stripNonAlpha(lines[idx+1])
			if len(next) >= nationalityNextLineMinLen && len(next) <= nationalityNextLineMaxLen {
				return next, true
			}
		}
	}

	for _, country := range countryNames {
		if findLine(lines, country) >= 0 {
			return country, true
		}
	}

	return "", false
}
