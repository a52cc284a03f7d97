package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"idcheck/internal/config"
	"idcheck/internal/logger"
	"idcheck/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [image-file]",
	Short: "Extract raw text from a document image",
	Long: `Run the configured OCR backend over a document image and print the raw
recognized text, without any field extraction.

Useful for checking what the OCR engine actually sees before debugging
field heuristics.

The backend is selected with OCR_PROVIDER (vision, documentai or
tesseract). Google providers need credentials:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Print raw OCR text to stdout
  idcheck ocr passport.jpg

  # Save recognized text to a file
  idcheck ocr aadhaar-front.jpg -o text.txt

  # Include metadata and output as JSON
  idcheck ocr pan-card.png --metadata --json -o result.json

  # Offline recognition with Tesseract
  OCR_PROVIDER=tesseract idcheck ocr passport.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

// ocrOutput is the JSON output structure when --json is used.
type ocrOutput struct {
	Text               string    `json:"text"`
	Confidence         float64   `json:"confidence,omitempty"`
	LanguageCodes      []string  `json:"language_codes,omitempty"`
	ProcessedAt        time.Time `json:"processed_at,omitempty"`
	ProcessingDuration string    `json:"processing_duration,omitempty"`
	FileName           string    `json:"file_name"`
	FileSize           int64     `json:"file_size"`
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	ocrCmd.Flags().BoolP("metadata", "m", false, "Include metadata in output")
	ocrCmd.Flags().Bool("json", false, "Output as JSON")
	ocrCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runOCR(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ocr-cmd")

	outputPath, _ := cmd.Flags().GetString("output")
	includeMetadata, _ := cmd.Flags().GetBool("metadata")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	log.Info().
		Str("file", imagePath).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Int("timeout", timeoutSecs).
		Msg("Starting OCR")

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

	result, err := ocrService.RecognizeImage(ctx, bytes.NewReader(imageData))
	if err != nil {
		log.Error().Err(err).Msg("OCR recognition failed")
		return translateOCRError(err)
	}

	log.Info().
		Float64("confidence", result.Confidence).
		Dur("duration", result.ProcessingDuration).
		Int("text_length", len(result.Text)).
		Msg("OCR completed")

	return outputOCRResult(result, imagePath, int64(len(imageData)), outputPath, jsonOutput, includeMetadata)
}

// outputOCRResult formats and writes the raw recognition result.
func outputOCRResult(result *ocr.Result, imagePath string, fileSize int64, outputPath string, jsonOutput, includeMetadata bool) error {
	var outputData []byte

	if jsonOutput {
		data, err := json.MarshalIndent(ocrOutput{
			Text:               result.Text,
			Confidence:         result.Confidence,
			LanguageCodes:      result.LanguageCodes,
			ProcessedAt:        result.ProcessedAt,
			ProcessingDuration: result.ProcessingDuration.String(),
			FileName:           filepath.Base(imagePath),
			FileSize:           fileSize,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = data
	} else {
		var b strings.Builder
		if includeMetadata {
			fmt.Fprintf(&b, "=== OCR Results for %s ===\n", filepath.Base(imagePath))
			fmt.Fprintf(&b, "File size: %d bytes\n", fileSize)
			if result.Confidence > 0 {
				fmt.Fprintf(&b, "Confidence: %.1f%%\n", result.Confidence)
			}
			if len(result.LanguageCodes) > 0 {
				fmt.Fprintf(&b, "Languages: %s\n", strings.Join(result.LanguageCodes, ", "))
			}
			fmt.Fprintf(&b, "Processing time: %v\n", result.ProcessingDuration)
			fmt.Fprintf(&b, "Processed at: %s\n", result.ProcessedAt.Format(time.RFC3339))
			b.WriteString("\n=== Recognized Text ===\n\n")
		}
		b.WriteString(result.Text)
		outputData = []byte(b.String())
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
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
