package face

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"idcheck/internal/logger"
	"idcheck/pkg/models"
)

// Similarity tier thresholds: >=70 High, 50-69 Medium, <50 Low.
const (
	tierHighThreshold   = 70.0
	tierMediumThreshold = 50.0
)

// Tier verdicts shown to the user.
const (
	verdictHigh   = "High similarity - Likely the same person"
	verdictMedium = "Medium similarity - Possibly the same person"
	verdictLow    = "Low similarity - Different persons"
)

// CompareService turns the external embedding capability into a similarity
// verdict between a reference face (the one detected on the document) and a
// probe face (an uploaded photo or a live camera frame).
type CompareService struct {
	embedder Embedder
	log      zerolog.Logger
}

// NewCompareService builds a comparison service over the given embedder.
func NewCompareService(embedder Embedder) *CompareService {
	return &CompareService{
		embedder: embedder,
		log:      logger.WithComponent("face-compare"),
	}
}

// Compare embeds both face crops and reports their similarity using the
// upload-path mapping: similarity = max(0, 100 - distance*100). When either
// crop yields no descriptor it returns ErrComparisonUnavailable, which
// callers surface as a notice rather than a failure.
func (s *CompareService) Compare(ctx context.Context, reference, probe []byte) (*models.SimilarityResult, error) {
	return s.compare(ctx, reference, probe, uploadSimilarity)
}

// CompareLive is the live-capture variant: the distance saturates at 1.0 and
// the percentage is rounded, similarity = max(0, round((1 - distance/1.0)*100)).
func (s *CompareService) CompareLive(ctx context.Context, reference, probe []byte) (*models.SimilarityResult, error) {
	return s.compare(ctx, reference, probe, liveSimilarity)
}

func (s *CompareService) compare(ctx context.Context, reference, probe []byte, toSimilarity func(float64) float64) (*models.SimilarityResult, error) {
	const op = "Compare"

	refDescriptor, err := s.embedder.Embed(ctx, reference)
	if err != nil {
		return nil, WrapError(op, err, "reference embedding failed")
	}
	probeDescriptor, err := s.embedder.Embed(ctx, probe)
	if err != nil {
		return nil, WrapError(op, err, "probe embedding failed")
	}

	if refDescriptor == nil || probeDescriptor == nil {
		s.log.Warn().
			Bool("reference_face", refDescriptor != nil).
			Bool("probe_face", probeDescriptor != nil).
			Msg("Face comparison unavailable")
		return nil, WrapError(op, ErrComparisonUnavailable, "")
	}

	distance := EuclideanDistance(refDescriptor, probeDescriptor)
	similarity := toSimilarity(distance)
	tier, verdict := classify(similarity)

	s.log.Info().
		Float64("distance", distance).
		Float64("similarity", similarity).
		Str("tier", string(tier)).
		Msg("Face comparison completed")

	return &models.SimilarityResult{
		Similarity: similarity,
		Distance:   distance,
		Tier:       tier,
		Verdict:    verdict,
	}, nil
}

// uploadSimilarity maps a descriptor distance to a percentage, clamped at
// zero.
func uploadSimilarity(distance float64) float64 {
	return math.Max(0, 100-distance*100)
}

// liveSimilarity is the live-capture mapping: the distance saturates at 1.0
// and the percentage is rounded to a whole number.
func liveSimilarity(distance float64) float64 {
	return math.Max(0, math.Round((1-distance/1.0)*100))
}

// classify buckets a similarity percentage into its tier.
func classify(similarity float64) (models.SimilarityTier, string) {
	switch {
	case similarity >= tierHighThreshold:
		return models.TierHigh, verdictHigh
	case similarity >= tierMediumThreshold:
		return models.TierMedium, verdictMedium
	default:
		return models.TierLow, verdictLow
	}
}
