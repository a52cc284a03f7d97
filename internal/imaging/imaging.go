// Package imaging handles decoding of uploaded document photos and cropping
// of detected face regions. JPEG and PNG come from the standard library;
// WEBP and TIFF decoders are registered from golang.org/x/image so phone
// uploads in those formats work too.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"math"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when the payload is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported or corrupted image format")

// Decode parses an image payload and reports the detected format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, format, nil
}

// CropWithMargin cuts the given region out of the image, widened by the
// fractional margins on each side (marginX of the region width left and
// right, marginY of the region height top and bottom). The widened region is
// clipped to the image bounds, never going negative. The crop is returned
// PNG-encoded.
func CropWithMargin(data []byte, x, y, width, height, marginX, marginY float64) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	mx := width * marginX
	my := height * marginY

	sx := math.Max(0, x-mx)
	sy := math.Max(0, y-my)

	rect := image.Rect(
		int(math.Round(sx)),
		int(math.Round(sy)),
		int(math.Round(sx+width+mx*2)),
		int(math.Round(sy+height+my*2)),
	).Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("face region outside image bounds")
	}

	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", img)
	}

	return EncodePNG(sub.SubImage(rect))
}

// EncodePNG serializes an image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
