package face

import (
	"bytes"
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"

	"idcheck/internal/ocr"
)

// VisionDetector implements Detector using Google Cloud Vision face
// detection.
type VisionDetector struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionDetector creates a Vision-backed face detector with credentials
// from the environment.
func NewVisionDetector(ctx context.Context) (*VisionDetector, error) {
	client, err := ocr.NewAnnotatorClient(ctx)
	if err != nil {
		return nil, WrapError("NewVisionDetector", err, "failed to create Vision client")
	}
	return &VisionDetector{client: client}, nil
}

// NewVisionDetectorWithClient creates a detector with an explicit client (for
// testing).
func NewVisionDetectorWithClient(client *vision.ImageAnnotatorClient) *VisionDetector {
	return &VisionDetector{client: client}
}

// DetectFace returns the bounding box of the most prominent face in the
// image, or (nil, nil) when Vision finds none.
func (d *VisionDetector) DetectFace(ctx context.Context, imageData []byte) (*BoundingBox, error) {
	const op = "DetectFace"

	img, err := vision.NewImageFromReader(bytes.NewReader(imageData))
	if err != nil {
		return nil, WrapError(op, err, "failed to prepare image")
	}

	faces, err := d.client.DetectFaces(ctx, img, nil, 1)
	if err != nil {
		return nil, WrapError(op, err, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(faces) == 0 {
		return nil, nil
	}

	annotation := faces[0]
	if annotation.BoundingPoly == nil || len(annotation.BoundingPoly.Vertices) == 0 {
		return nil, nil
	}

	minX, minY := annotation.BoundingPoly.Vertices[0].X, annotation.BoundingPoly.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range annotation.BoundingPoly.Vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}

	return &BoundingBox{
		X:      float64(minX),
		Y:      float64(minY),
		Width:  float64(maxX - minX),
		Height: float64(maxY - minY),
	}, nil
}

// Close closes the underlying Vision client.
func (d *VisionDetector) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
