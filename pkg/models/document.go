package models

import "time"

// NotFound is the sentinel value reported for any field the extraction
// heuristics could not resolve. It is a real value, not an absence marker:
// callers render it as-is instead of treating the field as missing.
const NotFound = "Not found"

// DocumentType identifies which extraction strategy applies to an uploaded
// identity document.
type DocumentType string

const (
	// DocumentTypeAadhaar is an Indian Aadhaar card.
	DocumentTypeAadhaar DocumentType = "Aadhaar"

	// DocumentTypePAN is an Indian PAN card.
	DocumentTypePAN DocumentType = "PAN"

	// DocumentTypeOther covers passports and generic identity documents.
	DocumentTypeOther DocumentType = "Other"
)

// ExtractionResult holds the structured fields recovered from one document
// image. It is built fresh per run and never mutated afterwards.
type ExtractionResult struct {
	// Type is the document type the extraction ran under.
	Type DocumentType `json:"type"`

	// Name is the document holder's name, or NotFound.
	Name string `json:"name"`

	// DOB is the date of birth in the layout found on the document, or NotFound.
	DOB string `json:"dob"`

	// Number is the primary ID number: the Aadhaar number (grouped 4+4+4) or
	// the PAN number. NotFound for the Other type, which carries its numbers
	// in PassportNumber and SerialNumber instead.
	Number string `json:"number"`

	// Nationality is resolved only for the Other type.
	Nationality string `json:"nationality,omitempty"`

	// PassportNumber is resolved only for the Other type.
	PassportNumber string `json:"passport_number,omitempty"`

	// SerialNumber is resolved only for the Other type.
	SerialNumber string `json:"serial_number,omitempty"`

	// PassportExpiry is resolved only for the Other type.
	PassportExpiry string `json:"passport_expiry,omitempty"`

	// AdditionalFields maps canonical auxiliary field names (gender,
	// fatherName, placeOfBirth, ...) to resolved values. Unresolved labels are
	// omitted entirely rather than written as NotFound.
	AdditionalFields map[string]string `json:"additional_fields,omitempty"`

	// Confidence is a 0-100 quality score over the whole extraction. It is
	// diagnostic only and never gates which fields are returned.
	Confidence float64 `json:"confidence"`

	// OCRConfidence is the confidence reported by the OCR engine itself
	// (0-100), when the engine provides one.
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`

	// ProcessedAt is when the extraction run completed.
	ProcessedAt time.Time `json:"processed_at"`
}

// SimilarityTier is the qualitative band a face similarity score falls into.
type SimilarityTier string

const (
	TierLow    SimilarityTier = "Low"
	TierMedium SimilarityTier = "Medium"
	TierHigh   SimilarityTier = "High"
)

// SimilarityResult reports how closely two face images match.
type SimilarityResult struct {
	// Similarity is a percentage in [0, 100].
	Similarity float64 `json:"similarity"`

	// Distance is the raw embedding distance the percentage was derived from.
	Distance float64 `json:"distance"`

	// Tier classifies the percentage: >=70 High, 50-69 Medium, <50 Low.
	Tier SimilarityTier `json:"tier"`

	// Verdict is the human-readable reading of the tier.
	Verdict string `json:"verdict"`
}
