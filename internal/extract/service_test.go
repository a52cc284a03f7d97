package extract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"idcheck/internal/face"
	"idcheck/internal/imaging"
	"idcheck/internal/ocr"
	"idcheck/pkg/models"
)

// fakeOCR returns a canned recognition result or error.
type fakeOCR struct {
	result *ocr.Result
	err    error
	calls  int
}

func (f *fakeOCR) RecognizeImage(ctx context.Context, image io.Reader) (*ocr.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestServiceExtract(t *testing.T) {
	fake := &fakeOCR{result: &ocr.Result{
		Text:       "JOHN SMITH\n01/02/1990\n1234 5678 9012",
		Confidence: 87.5,
	}}
	svc := NewService(fake, nil)
	run := svc.NewRun(models.DocumentTypeAadhaar)

	result, err := svc.Extract(context.Background(), run, strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Name != "JOHN SMITH" {
		t.Errorf("name = %q", result.Name)
	}
	if result.Number != "1234 5678 9012" {
		t.Errorf("number = %q", result.Number)
	}
	if result.OCRConfidence != 87.5 {
		t.Errorf("ocr confidence = %v", result.OCRConfidence)
	}
	if result.Confidence <= 0 {
		t.Errorf("confidence = %v, want > 0", result.Confidence)
	}
	if result.ProcessedAt.IsZero() {
		t.Error("processed-at timestamp not set")
	}
	if fake.calls != 1 {
		t.Errorf("ocr calls = %d, want exactly one per extraction", fake.calls)
	}
}

func TestServiceExtractUnsupportedType(t *testing.T) {
	fake := &fakeOCR{}
	svc := NewService(fake, nil)

	_, err := svc.Extract(context.Background(), Run{Type: "passport"}, strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedDocumentType) {
		t.Fatalf("error = %v, want ErrUnsupportedDocumentType", err)
	}
	if fake.calls != 0 {
		t.Errorf("ocr calls = %d, want the type check to run first", fake.calls)
	}
}

func TestServiceExtractOCRFailure(t *testing.T) {
	fake := &fakeOCR{err: errors.New("engine exploded")}
	svc := NewService(fake, nil)
	run := svc.NewRun(models.DocumentTypePAN)

	_, err := svc.Extract(context.Background(), run, strings.NewReader("image-bytes"))
	if !errors.Is(err, ErrOCRFailed) {
		t.Fatalf("error = %v, want ErrOCRFailed", err)
	}
}

// fakeDetector serves a canned bounding box.
type fakeDetector struct {
	box *face.BoundingBox
}

func (f *fakeDetector) DetectFace(_ context.Context, _ []byte) (*face.BoundingBox, error) {
	return f.box, nil
}

func TestServiceCropDocumentFaceNoFace(t *testing.T) {
	// A document without a detectable face yields (nil, nil), and text
	// extraction is unaffected.
	fake := &fakeOCR{result: &ocr.Result{Text: "JOHN SMITH\n01/02/1990\n1234 5678 9012"}}
	svc := NewService(fake, &fakeDetector{})
	run := svc.NewRun(models.DocumentTypeAadhaar)

	crop, err := svc.CropDocumentFace(context.Background(), []byte("image-bytes"))
	if err != nil {
		t.Fatalf("no face must not be an error, got: %v", err)
	}
	if crop != nil {
		t.Errorf("crop = %v, want nil when no face is detected", crop)
	}

	result, err := svc.Extract(context.Background(), run, strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	if result.Name != "JOHN SMITH" {
		t.Errorf("name = %q, want extraction unaffected by the missing face", result.Name)
	}
}

func TestServiceCropDocumentFace(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 180, B: 180, A: 255})
		}
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	detector := &fakeDetector{box: &face.BoundingBox{X: 40, Y: 40, Width: 20, Height: 20}}
	svc := NewService(&fakeOCR{}, detector)

	crop, err := svc.CropDocumentFace(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cropped, _, err := imaging.Decode(crop)
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if cropped.Bounds().Dx() != 32 || cropped.Bounds().Dy() != 36 {
		t.Errorf("crop size = %dx%d, want 32x36", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestServiceRunSupersession(t *testing.T) {
	svc := NewService(&fakeOCR{}, nil)

	first := svc.NewRun(models.DocumentTypeAadhaar)
	if svc.IsStale(first) {
		t.Fatal("fresh run reported stale")
	}

	second := svc.NewRun(models.DocumentTypePAN)
	if !svc.IsStale(first) {
		t.Error("superseded run not reported stale")
	}
	if svc.IsStale(second) {
		t.Error("current run reported stale")
	}
}

func TestServiceRunGenerationsIncrease(t *testing.T) {
	svc := NewService(&fakeOCR{}, nil)
	a := svc.NewRun(models.DocumentTypeAadhaar)
	b := svc.NewRun(models.DocumentTypeAadhaar)
	if b.Generation <= a.Generation {
		t.Fatalf("generations %d then %d, want strictly increasing", a.Generation, b.Generation)
	}
}
