package extract

import (
	"idcheck/pkg/models"
)

// Extractor turns tokenized OCR text into a structured field set for one
// document type. Implementations are pure: the same TokenizedText always
// yields an identical result, and unresolved fields carry the NotFound
// sentinel instead of raising.
type Extractor interface {
	// DocumentType reports which document type the strategy handles.
	DocumentType() models.DocumentType

	// Extract resolves the field set from tokenized OCR text.
	Extract(text TokenizedText) models.ExtractionResult
}

// ForType returns the extractor strategy for the given document type, or
// ErrUnsupportedDocumentType for anything outside the known set.
func ForType(t models.DocumentType) (Extractor, error) {
	switch t {
	case models.DocumentTypeAadhaar:
		return AadhaarExtractor{}, nil
	case models.DocumentTypePAN:
		return PANExtractor{}, nil
	case models.DocumentTypeOther:
		return OtherExtractor{}, nil
	default:
		return nil, WrapError("ForType", ErrUnsupportedDocumentType, string(t))
	}
}

// newResult builds a result with every field set to the NotFound sentinel.
func newResult(t models.DocumentType) models.ExtractionResult {
	return models.ExtractionResult{
		Type:   t,
		Name:   models.NotFound,
		DOB:    models.NotFound,
		Number: models.NotFound,
	}
}
