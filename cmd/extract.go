package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"idcheck/internal/config"
	"idcheck/internal/extract"
	"idcheck/internal/face"
	"idcheck/internal/logger"
	"idcheck/internal/ocr"
	"idcheck/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract [image-file]",
	Short: "Extract identity fields from a document image",
	Long: `Run OCR over an identity document image and extract structured fields
using per-document-type heuristics.

Supported document types:
  aadhaar - Indian Aadhaar card (name, dob, Aadhaar number)
  pan     - Indian PAN card (name, dob, PAN number)
  other   - passport or generic ID (name, dob, nationality, passport
            number, serial number, expiry, auxiliary fields)

The OCR backend is selected with OCR_PROVIDER (vision, documentai or
tesseract). Google providers need credentials:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Extract PAN card fields to stdout
  idcheck extract pan-front.jpg --type pan

  # Extract passport fields as JSON
  idcheck extract passport.png --type other --json -o result.json

  # Also detect and save the document face crop
  idcheck extract aadhaar-front.jpg --type aadhaar --face-out face.png

  # Offline extraction with Tesseract
  OCR_PROVIDER=tesseract idcheck extract pan-front.jpg --type pan`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("type", "t", "", "Document type: aadhaar, pan or other (required)")
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().String("face-out", "", "Write the detected face crop (PNG) to this path")
	extractCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
	_ = extractCmd.MarkFlagRequired("type")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract-cmd")

	typeFlag, _ := cmd.Flags().GetString("type")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	faceOutPath, _ := cmd.Flags().GetString("face-out")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	docType, err := parseDocumentType(typeFlag)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", imagePath).
		Str("type", string(docType)).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Int("timeout", timeoutSecs).
		Msg("Starting extraction")

	imageData, err := readImageFile(imagePath, log)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	ocrService, err := ocr.NewService(ctx, cfg.OCRProvider, cfg.TesseractLanguages)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.OCRProvider).Msg("Failed to create OCR service")
		return translateOCRError(err)
	}

	// The detector is only needed when a face crop was asked for. Detection
	// failure never blocks text extraction.
	var detector face.Detector
	if faceOutPath != "" {
		visionDetector, err := face.NewVisionDetector(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Face detector unavailable, continuing without face crop")
		} else {
			defer visionDetector.Close()
			detector = visionDetector
		}
	}

	service := extract.NewService(ocrService, detector)
	run := service.NewRun(docType)

	result, err := service.Extract(ctx, run, bytes.NewReader(imageData))
	if err != nil {
		return translateOCRError(err)
	}

	if faceOutPath != "" && detector != nil {
		writeFaceCrop(ctx, service, imageData, faceOutPath, log)
	}

	log.Info().
		Uint64("generation", run.Generation).
		Float64("confidence", result.Confidence).
		Msg("Extraction completed")

	return outputExtractionResult(result, outputPath, jsonOutput, log)
}

// parseDocumentType maps the --type flag onto a document type.
func parseDocumentType(value string) (models.DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "aadhaar":
		return models.DocumentTypeAadhaar, nil
	case "pan":
		return models.DocumentTypePAN, nil
	case "other":
		return models.DocumentTypeOther, nil
	default:
		return "", fmt.Errorf("unknown document type %q (expected aadhaar, pan or other)", value)
	}
}

// readImageFile validates and reads the document image.
func readImageFile(imagePath string, log zerolog.Logger) ([]byte, error) {
	fileInfo, err := os.Stat(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", imagePath).Msg("Image file not found")
			return nil, fmt.Errorf("image file not found: %s", imagePath)
		}
		return nil, fmt.Errorf("error accessing image file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("path is not a regular file: %s", imagePath)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("image file is empty: %s", imagePath)
	}
	if fileInfo.Size() > ocr.MaxImageSizeBytes {
		log.Error().
			Str("file", imagePath).
			Int64("size", fileInfo.Size()).
			Msg("Image exceeds maximum size limit")
		return nil, fmt.Errorf("image too large (%d bytes). Maximum size is %d bytes (20MB)",
			fileInfo.Size(), ocr.MaxImageSizeBytes)
	}

	return os.ReadFile(imagePath)
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// writeFaceCrop detects and saves the document face. No face is a notice,
// not a failure; extraction results are kept either way.
func writeFaceCrop(ctx context.Context, service *extract.Service, imageData []byte, faceOutPath string, log zerolog.Logger) {
	crop, err := service.CropDocumentFace(ctx, imageData)
	if err != nil {
		log.Warn().Err(err).Msg("Face crop failed, continuing without it")
		fmt.Fprintln(os.Stderr, "Notice: face crop failed; extracted fields are unaffected")
		return
	}
	if crop == nil {
		fmt.Fprintln(os.Stderr, "Notice: no face detected in the document image")
		return
	}
	if err := os.WriteFile(faceOutPath, crop, 0644); err != nil {
		log.Warn().Err(err).Str("file", faceOutPath).Msg("Failed to write face crop")
		return
	}
	log.Info().Str("file", faceOutPath).Int("bytes", len(crop)).Msg("Face crop written")
}

// translateOCRError provides user-friendly messages for extraction failures.
func translateOCRError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("processing timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("processing was canceled")
	case errors.Is(err, ocr.ErrImageTooLarge):
		return fmt.Errorf("image is too large (maximum 20MB)")
	case errors.Is(err, ocr.ErrInvalidImage):
		return fmt.Errorf("invalid or corrupted image file. Please check the file")
	case errors.Is(err, ocr.ErrNoText):
		return fmt.Errorf("no readable text found in the image")
	case errors.Is(err, ocr.ErrMissingCredentials):
		return fmt.Errorf("Google Cloud credentials not configured. Set GOOGLE_APPLICATION_CREDENTIALS "+
			"or GOOGLE_CREDENTIALS, or use OCR_PROVIDER=tesseract for offline processing: %w", err)
	case errors.Is(err, extract.ErrOCRFailed):
		return fmt.Errorf("OCR recognition failed. This may be due to network issues, quota limits, or service unavailability: %w", err)
	default:
		return err
	}
}

// outputExtractionResult formats and writes the extraction result.
func outputExtractionResult(result *models.ExtractionResult, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	var outputData []byte

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = data
	} else {
		outputData = []byte(formatExtractionResult(result))
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().Err(err).Str("output_file", outputPath).Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().Str("output_file", outputPath).Int("bytes", len(outputData)).Msg("Results written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !jsonOutput {
		fmt.Println()
	}
	return nil
}

// formatExtractionResult renders the result as the text panel shown to users.
func formatExtractionResult(result *models.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Extracted %s Info ===\n", result.Type)
	fmt.Fprintf(&b, "Name: %s\n", result.Name)
	fmt.Fprintf(&b, "DOB: %s\n", result.DOB)

	switch result.Type {
	case models.DocumentTypeAadhaar:
		fmt.Fprintf(&b, "Aadhaar Number: %s\n", result.Number)
	case models.DocumentTypePAN:
		fmt.Fprintf(&b, "PAN Number: %s\n", result.Number)
	case models.DocumentTypeOther:
		fmt.Fprintf(&b, "Nationality: %s\n", result.Nationality)
		if result.PassportNumber != models.NotFound {
			fmt.Fprintf(&b, "Passport Number: %s\n", result.PassportNumber)
		}
		if result.SerialNumber != models.NotFound {
			fmt.Fprintf(&b, "Serial Number: %s\n", result.SerialNumber)
		}
		if result.PassportExpiry != models.NotFound {
			fmt.Fprintf(&b, "Passport Expiry: %s\n", result.PassportExpiry)
		}
		for field, value := range result.AdditionalFields {
			fmt.Fprintf(&b, "%s: %s\n", field, value)
		}
	}

	fmt.Fprintf(&b, "Confidence: %.1f%%\n", result.Confidence)
	return b.String()
}
