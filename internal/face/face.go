// Package face wraps the external face capabilities the intake flow relies
// on: detecting a face region in an uploaded image, obtaining a fixed-length
// embedding for a face crop, and turning the distance between two embeddings
// into a similarity verdict.
//
// Absence of a face is a normal outcome, not an error: the detector returns
// a nil box and the comparison service reports ErrComparisonUnavailable,
// both of which callers surface as notices rather than failures.
package face

import (
	"context"
	"math"
)

// BoundingBox is a detected face region in image pixel coordinates.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Descriptor is an opaque fixed-length face embedding produced by the
// external recognition capability. The package never inspects individual
// components, only measures distances.
type Descriptor []float64

// Detector locates a single face in an image.
type Detector interface {
	// DetectFace returns the bounding box of the most prominent face in the
	// image, or (nil, nil) when no face is present. Errors are backend
	// failures only.
	DetectFace(ctx context.Context, image []byte) (*BoundingBox, error)
}

// Embedder produces face embeddings for comparison.
type Embedder interface {
	// Embed returns the embedding for a face crop, or (nil, nil) when the
	// service finds no face in it.
	Embed(ctx context.Context, faceImage []byte) (Descriptor, error)
}

// EuclideanDistance measures how far apart two descriptors are. Matching
// faces land around 0.4 and below; unrelated faces around 0.8 and above.
func EuclideanDistance(a, b Descriptor) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
