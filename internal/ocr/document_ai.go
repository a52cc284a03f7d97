package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIConfig holds configuration for the Google Document AI provider.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID.
	ProjectID string

	// Location is the processor region ("us", "eu", ...).
	Location string

	// ProcessorID identifies an OCR processor in the project.
	ProcessorID string

	// Timeout bounds a single ProcessDocument call.
	Timeout time.Duration
}

// DocumentAIService implements Service using a Google Document AI OCR
// processor.
type DocumentAIService struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIService creates a Document AI-backed OCR service with
// credentials from the environment.
// Expects: GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS
// Requires: GOOGLE_CLOUD_PROJECT and DOCUMENT_AI_PROCESSOR_ID
// Optional: GOOGLE_CLOUD_LOCATION (defaults to "us")
func NewDocumentAIService(ctx context.Context) (*DocumentAIService, error) {
	const op = "NewDocumentAIService"

	config := DocumentAIConfig{
		ProjectID:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:    os.Getenv("GOOGLE_CLOUD_LOCATION"),
		ProcessorID: os.Getenv("DOCUMENT_AI_PROCESSOR_ID"),
		Timeout:     60 * time.Second,
	}

	if config.ProjectID == "" {
		return nil, WrapError(op, ErrMissingCredentials, "GOOGLE_CLOUD_PROJECT is required")
	}
	if config.ProcessorID == "" {
		return nil, WrapError(op, ErrMissingCredentials, "DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	var clientOptions []option.ClientOption

	// Regional endpoint for non-US processors.
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIService{client: client, config: config}, nil
}

// NewDocumentAIServiceWithConfig creates the service with an explicit config
// and client (for testing).
func NewDocumentAIServiceWithConfig(config DocumentAIConfig, client *documentai.DocumentProcessorClient) *DocumentAIService {
	return &DocumentAIService{client: client, config: config}
}

// RecognizeImage extracts text from a document image.
func (d *DocumentAIService) RecognizeImage(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "RecognizeImage"
	startTime := time.Now()

	imgBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapError(op, err, "failed to read image data")
	}
	if err := validateImageBytes(imgBytes); err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("image size: %d bytes", len(imgBytes)))
	}

	mimeType := http.DetectContentType(imgBytes)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, WrapError(op, ErrInvalidImage, fmt.Sprintf("unsupported content type: %s", mimeType))
	}

	processCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: d.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  imgBytes,
				MimeType: mimeType,
			},
		},
	}

	resp, err := d.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, d.translateAPIError(op, err)
	}
	if resp.Document == nil || strings.TrimSpace(resp.Document.Text) == "" {
		return nil, WrapError(op, ErrNoText, "processor returned no text")
	}

	processedAt := time.Now()
	return &Result{
		Text:               resp.Document.Text,
		Confidence:         pageConfidence(resp.Document),
		LanguageCodes:      detectedLanguages(resp.Document),
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// processorName constructs the full processor resource name.
func (d *DocumentAIService) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		d.config.ProjectID, d.config.Location, d.config.ProcessorID)
}

// translateAPIError converts Document AI failures to package errors.
func (d *DocumentAIService) translateAPIError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapError(op, ErrMissingCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "NOT_FOUND"):
		return WrapError(op, ErrRecognitionFailed, fmt.Sprintf("processor not found: %s", d.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapError(op, ErrInvalidImage, "image format not supported or corrupted")
	case strings.Contains(errStr, "DeadlineExceeded") || strings.Contains(errStr, "context deadline exceeded"):
		return WrapError(op, context.DeadlineExceeded, "processing timeout")
	default:
		return WrapError(op, ErrRecognitionFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// pageConfidence averages per-page layout confidence, normalized to 0-100.
func pageConfidence(doc *documentaipb.Document) float64 {
	var sum float32
	var count int
	for _, page := range doc.Pages {
		if page.Layout != nil && page.Layout.Confidence > 0 {
			sum += page.Layout.Confidence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count) * 100
}

// detectedLanguages collects the language codes the processor detected.
func detectedLanguages(doc *documentaipb.Document) []string {
	seen := make(map[string]bool)
	var languages []string
	for _, page := range doc.Pages {
		for _, lang := range page.DetectedLanguages {
			if lang.LanguageCode != "" && !seen[lang.LanguageCode] {
				seen[lang.LanguageCode] = true
				languages = append(languages, lang.LanguageCode)
			}
		}
	}
	return languages
}

// Close closes the underlying Document AI client.
func (d *DocumentAIService) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
