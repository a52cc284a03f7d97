package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/apiv1"
	"google.golang.org/api/option"
)

// MaxImageSizeBytes is the maximum image size for synchronous processing (20MB).
const MaxImageSizeBytes = 20 * 1024 * 1024

// GoogleVisionService implements Service using Google Cloud Vision document
// text detection.
type GoogleVisionService struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionService creates a Vision-backed OCR service with credentials
// from the environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path
// or GOOGLE_CREDENTIALS JSON in env, falling back to application default
// credentials.
func NewGoogleVisionService(ctx context.Context) (*GoogleVisionService, error) {
	client, err := NewAnnotatorClient(ctx)
	if err != nil {
		return nil, err
	}

	return &GoogleVisionService{client: client}, nil
}

// NewGoogleVisionServiceWithClient creates a Vision-backed OCR service with an
// explicit client (for testing).
func NewGoogleVisionServiceWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionService {
	return &GoogleVisionService{client: client}
}

// NewAnnotatorClient builds a Vision client from environment credentials.
// Shared with the face detector, which annotates through the same API
// surface.
func NewAnnotatorClient(ctx context.Context) (*vision.ImageAnnotatorClient, error) {
	const op = "NewAnnotatorClient"

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err := vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
		return client, nil
	}

	if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err := vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
		return client, nil
	}

	// Application default credentials as fallback
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, WrapError(op, ErrMissingCredentials, "no credentials found in environment")
	}
	return client, nil
}

// RecognizeImage extracts text from a document image.
func (g *GoogleVisionService) RecognizeImage(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "RecognizeImage"
	startTime := time.Now()

	imgBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapError(op, err, "failed to read image data")
	}
	if err := validateImageBytes(imgBytes); err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("image size: %d bytes", len(imgBytes)))
	}

	img, err := vision.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, WrapError(op, ErrInvalidImage, fmt.Sprintf("failed to prepare image: %v", err))
	}

	annotation, err := g.client.DetectDocumentText(ctx, img, nil)
	if err != nil {
		return nil, WrapError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if annotation == nil || strings.TrimSpace(annotation.Text) == "" {
		return nil, WrapError(op, ErrNoText, "document text detection returned no text")
	}

	// Average page confidence, normalized to 0-100.
	var confidenceSum float32
	var confidenceCount int
	languageSet := make(map[string]bool)
	for _, page := range annotation.Pages {
		if page.Confidence > 0 {
			confidenceSum += page.Confidence
			confidenceCount++
		}
		if page.Property != nil {
			for _, lang := range page.Property.DetectedLanguages {
				if lang.LanguageCode != "" {
					languageSet[lang.LanguageCode] = true
				}
			}
		}
	}

	var confidence float64
	if confidenceCount > 0 {
		confidence = float64(confidenceSum) / float64(confidenceCount) * 100
	}

	var languages []string
	for lang := range languageSet {
		languages = append(languages, lang)
	}

	processedAt := time.Now()
	return &Result{
		Text:               annotation.Text,
		Confidence:         confidence,
		LanguageCodes:      languages,
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// validateImageBytes rejects empty or oversized payloads before any network
// call.
func validateImageBytes(imgBytes []byte) error {
	if len(imgBytes) == 0 {
		return ErrInvalidImage
	}
	if len(imgBytes) > MaxImageSizeBytes {
		return ErrImageTooLarge
	}
	return nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionService) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
