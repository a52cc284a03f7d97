package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"idcheck/internal/config"
	"idcheck/internal/face"
	"idcheck/internal/logger"
	"idcheck/pkg/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare [reference-image] [probe-image]",
	Short: "Compare the face on a document against a second photo",
	Long: `Detect a face in both images, crop each with the standard margins,
obtain embeddings from the face service and report a similarity percentage
with a qualitative tier (High / Medium / Low).

The reference image is typically the document front; the probe is an
uploaded photo or a live camera frame (use --live for camera captures).

Required environment variables:
  FACE_API_URL - Base URL of the face embedding service
  FACE_API_KEY - API key for the service (optional)
  GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS - for face detection`,
	Example: `  # Compare a document face with an uploaded photo
  idcheck compare aadhaar-front.jpg selfie.jpg

  # Live-capture comparison with JSON output
  idcheck compare passport.png camera-frame.png --live --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Bool("live", false, "Use the live-capture similarity mapping")
	compareCmd.Flags().Bool("json", false, "Output as JSON")
	compareCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runCompare(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("compare-cmd")

	live, _ := cmd.Flags().GetBool("live")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	referencePath, probePath := args[0], args[1]

	log.Info().
		Str("reference", referencePath).
		Str("probe", probePath).
		Bool("live", live).
		Msg("Starting face comparison")

	referenceData, err := readImageFile(referencePath, log)
	if err != nil {
		return err
	}
	probeData, err := readImageFile(probePath, log)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.FaceAPIURL == "" {
		return fmt.Errorf("FACE_API_URL is required for face comparison")
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	detector, err := face.NewVisionDetector(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create face detector")
		return fmt.Errorf("failed to create face detector: %w", err)
	}
	defer detector.Close()

	referenceCrop, err := cropFaceOrNotice(ctx, detector, referenceData, "reference", log)
	if err != nil {
		return err
	}
	probeCrop, err := cropFaceOrNotice(ctx, detector, probeData, "probe", log)
	if err != nil {
		return err
	}

	compareService := face.NewCompareService(face.NewHTTPEmbedder(cfg.FaceAPIURL, cfg.FaceAPIKey))

	var result *models.SimilarityResult
	if live {
		result, err = compareService.CompareLive(ctx, referenceCrop, probeCrop)
	} else {
		result, err = compareService.Compare(ctx, referenceCrop, probeCrop)
	}
	if err != nil {
		if errors.Is(err, face.ErrComparisonUnavailable) {
			fmt.Fprintln(os.Stderr, "Notice: could not obtain a face descriptor for one or both images; no similarity score produced")
			return nil
		}
		return fmt.Errorf("face comparison failed: %w", err)
	}

	return outputSimilarityResult(result, jsonOutput)
}

// cropFaceOrNotice detects and crops the face in one image. A missing face
// here is fatal for the comparison flow, since there is nothing to compare.
func cropFaceOrNotice(ctx context.Context, detector face.Detector, imageData []byte, role string, log zerolog.Logger) ([]byte, error) {
	crop, err := face.DetectAndCrop(ctx, detector, imageData)
	if err != nil {
		log.Error().Err(err).Str("role", role).Msg("Face detection failed")
		return nil, fmt.Errorf("face detection failed for %s image: %w", role, err)
	}
	if crop == nil {
		return nil, fmt.Errorf("no face detected in %s image; please try another image", role)
	}
	return crop, nil
}

// outputSimilarityResult renders the comparison verdict.
func outputSimilarityResult(result *models.SimilarityResult, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%.2f%% Similar\n", result.Similarity)
	fmt.Println(result.Verdict)
	return nil
}
