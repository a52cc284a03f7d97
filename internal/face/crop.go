package face

import (
	"context"

	"idcheck/internal/imaging"
)

// Crop margins applied around a detected face box: 30% of the box width on
// each horizontal side and 40% of the box height on each vertical side,
// clipped at the image edges.
const (
	CropMarginX = 0.3
	CropMarginY = 0.4
)

// DetectAndCrop finds the most prominent face in the image and returns a
// margin-widened PNG crop of it. A picture without a detectable face is a
// normal outcome and returns (nil, nil).
func DetectAndCrop(ctx context.Context, detector Detector, image []byte) ([]byte, error) {
	const op = "DetectAndCrop"

	if detector == nil {
		return nil, WrapError(op, ErrDetectorUnavailable, "")
	}

	box, err := detector.DetectFace(ctx, image)
	if err != nil {
		return nil, WrapError(op, err, "face detection failed")
	}
	if box == nil {
		return nil, nil
	}

	crop, err := imaging.CropWithMargin(image, box.X, box.Y, box.Width, box.Height, CropMarginX, CropMarginY)
	if err != nil {
		return nil, WrapError(op, err, "face crop failed")
	}
	return crop, nil
}
