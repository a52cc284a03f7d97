package ocr

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// TesseractService implements Service using a local Tesseract installation
// through the gosseract client. No credentials or network access required.
type TesseractService struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractService creates a Tesseract-backed OCR service. languages are
// Tesseract language codes ("eng", "hin", ...); empty means the Tesseract
// default.
func NewTesseractService(languages []string) *TesseractService {
	return &TesseractService{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// RecognizeImage extracts text from a document image.
func (t *TesseractService) RecognizeImage(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "RecognizeImage"
	startTime := time.Now()

	imgBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapError(op, err, "failed to read image data")
	}
	if err := validateImageBytes(imgBytes); err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("image size: %d bytes", len(imgBytes)))
	}

	// gosseract has no context support of its own; honor cancellation at the
	// call boundary.
	select {
	case <-ctx.Done():
		return nil, WrapError(op, ctx.Err(), "canceled before recognition")
	default:
	}

	client := t.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(imgBytes); err != nil {
		return nil, WrapError(op, ErrInvalidImage, fmt.Sprintf("set image: %v", err))
	}
	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return nil, WrapError(op, ErrRecognitionFailed, fmt.Sprintf("set languages: %v", err))
		}
	}

	text, err := client.Text()
	if err != nil {
		return nil, WrapError(op, ErrRecognitionFailed, fmt.Sprintf("recognize text: %v", err))
	}
	if strings.TrimSpace(text) == "" {
		return nil, WrapError(op, ErrNoText, "recognition returned no text")
	}

	processedAt := time.Now()
	return &Result{
		Text:               text,
		Confidence:         averageWordConfidence(client),
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// averageWordConfidence averages Tesseract's per-word confidences (already on
// a 0-100 scale). Zero when no word boxes are available.
func averageWordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}
