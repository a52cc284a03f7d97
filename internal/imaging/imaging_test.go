package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// testPNG renders a plain image of the given size as PNG bytes.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return data
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(testPNG(t, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q", format)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCropWithMargin(t *testing.T) {
	data := testPNG(t, 100, 100)

	// A 20x20 region widened by 30% horizontally and 40% vertically grows
	// to 32x36.
	crop, err := CropWithMargin(data, 40, 40, 20, 20, 0.3, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, format, err := Decode(crop)
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if format != "png" {
		t.Errorf("crop format = %q, want png", format)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 36 {
		t.Errorf("crop size = %dx%d, want 32x36", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCropWithMarginClipsAtOrigin(t *testing.T) {
	data := testPNG(t, 100, 100)

	// The widened region would start at negative coordinates; it is clipped
	// to the image origin instead.
	crop, err := CropWithMargin(data, 2, 2, 20, 20, 0.3, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, _, err := Decode(crop)
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 36 {
		t.Errorf("crop size = %dx%d, want 32x36", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCropWithMarginClipsAtFarEdge(t *testing.T) {
	data := testPNG(t, 100, 100)

	crop, err := CropWithMargin(data, 90, 90, 20, 20, 0.3, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, _, err := Decode(crop)
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	// Clipped to whatever remains of the image past the start point.
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 18 {
		t.Errorf("crop size = %dx%d, want 16x18", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCropWithMarginOutsideBounds(t *testing.T) {
	data := testPNG(t, 50, 50)

	if _, err := CropWithMargin(data, 200, 200, 20, 20, 0.3, 0.4); err == nil {
		t.Fatal("expected an error for a region fully outside the image")
	}
}
