// Package ocr provides OCR (Optical Character Recognition) over identity
// document images.
//
// Three providers implement the Service interface:
//   - Google Cloud Vision document text detection (default)
//   - Google Document AI (OCR processor)
//   - Tesseract via the gosseract client (fully offline)
//
// Required Environment Variables (Google providers):
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID (Document AI only)
//
// Implementation Details:
//   - Images are read fully into memory; the 20MB synchronous limit of the
//     Google APIs is enforced before any network call.
//   - Confidence is normalized to a 0-100 scale across providers.
package ocr

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Providers selectable via configuration.
const (
	ProviderVision     = "vision"
	ProviderDocumentAI = "documentai"
	ProviderTesseract  = "tesseract"
)

// Service defines the interface for OCR text recognition over raster images.
type Service interface {
	// RecognizeImage extracts text from a document image (JPEG, PNG, WEBP or
	// TIFF). It fails on unreadable images or backend errors; callers do not
	// retry.
	RecognizeImage(ctx context.Context, image io.Reader) (*Result, error)
}

// Result contains the recognized text with metadata.
type Result struct {
	// Text is the recognized text content in reading order.
	Text string `json:"text"`

	// Confidence is the engine's confidence in the recognition, normalized to
	// 0-100. Zero when the engine reports none.
	Confidence float64 `json:"confidence"`

	// LanguageCodes contains the languages the engine detected, when available.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is the timestamp when recognition completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long recognition took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// NewService builds the OCR provider selected by name. languages applies to
// the Tesseract provider only.
func NewService(ctx context.Context, provider string, languages []string) (Service, error) {
	switch provider {
	case ProviderVision:
		return NewGoogleVisionService(ctx)
	case ProviderDocumentAI:
		return NewDocumentAIService(ctx)
	case ProviderTesseract:
		return NewTesseractService(languages), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider %q (expected %s, %s or %s)",
			provider, ProviderVision, ProviderDocumentAI, ProviderTesseract)
	}
}
