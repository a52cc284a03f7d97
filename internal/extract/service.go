package extract

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"idcheck/internal/face"
	"idcheck/internal/logger"
	"idcheck/internal/ocr"
	"idcheck/pkg/models"
)

// Service orchestrates one extraction run: a single OCR call, tokenization,
// dispatch to the document-type strategy and confidence scoring. Face-region
// cropping is a separate call path so text extraction proceeds even when no
// face is present.
type Service struct {
	ocr      ocr.Service
	detector face.Detector
	log      zerolog.Logger
	gen      atomic.Uint64
}

// NewService builds an extraction service. detector may be nil when the
// caller never asks for a face crop.
func NewService(ocrService ocr.Service, detector face.Detector) *Service {
	return &Service{
		ocr:      ocrService,
		detector: detector,
		log:      logger.WithComponent("extract"),
	}
}

// Run tags one extraction invocation. Each new run supersedes the previous
// one for the same service; a completion whose run is no longer current must
// be discarded instead of overwriting newer state.
type Run struct {
	// Generation is the monotonically increasing run counter.
	Generation uint64

	// Type is the document type this run extracts under, fixed at run start.
	Type models.DocumentType
}

// NewRun starts a fresh run for the given document type, superseding any
// previous run.
func (s *Service) NewRun(t models.DocumentType) Run {
	return Run{
		Generation: s.gen.Add(1),
		Type:       t,
	}
}

// IsStale reports whether a newer run has superseded this one. Callers check
// this after a slow external call resolves and drop the completion if so.
func (s *Service) IsStale(run Run) bool {
	return run.Generation != s.gen.Load()
}

// Extract runs OCR over the document image and resolves the structured field
// set for the run's document type. It fails only on an unsupported document
// type or an OCR engine failure; unresolved fields come back as the NotFound
// sentinel inside an otherwise complete result.
func (s *Service) Extract(ctx context.Context, run Run, image io.Reader) (*models.ExtractionResult, error) {
	const op = "Extract"

	extractor, err := ForType(run.Type)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ocrResult, err := s.ocr.RecognizeImage(ctx, image)
	if err != nil {
		s.log.Error().
			Err(err).
			Uint64("generation", run.Generation).
			Str("type", string(run.Type)).
			Msg("OCR recognition failed")
		return nil, WrapError(op, ErrOCRFailed, err.Error())
	}

	text := NewTokenizedText(ocrResult.Text, ocrResult.Confidence)
	result := extractor.Extract(text)
	result.Confidence = ScoreConfidence(text.Raw, result)
	result.OCRConfidence = text.Confidence
	result.ProcessedAt = time.Now()

	s.log.Info().
		Uint64("generation", run.Generation).
		Str("type", string(run.Type)).
		Int("lines", len(text.Lines)).
		Float64("confidence", result.Confidence).
		Dur("duration", time.Since(start)).
		Msg("Extraction completed")

	return &result, nil
}

// CropDocumentFace detects a face in the document image and returns a PNG
// crop widened by the standard margins. A document without a detectable face
// is a normal outcome and returns (nil, nil); the caller surfaces a notice
// and carries on with text extraction.
func (s *Service) CropDocumentFace(ctx context.Context, image []byte) ([]byte, error) {
	const op = "CropDocumentFace"

	crop, err := face.DetectAndCrop(ctx, s.detector, image)
	if err != nil {
		return nil, WrapError(op, err, "")
	}
	if crop == nil {
		s.log.Warn().Msg("No face detected in document image")
		return nil, nil
	}

	s.log.Debug().Int("bytes", len(crop)).Msg("Document face cropped")
	return crop, nil
}
