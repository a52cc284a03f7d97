package config

import (
	"testing"

	"idcheck/internal/ocr"
)

// clearEnv blanks every variable Load reads so ambient environment does not
// leak into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OCR_PROVIDER", "TESSERACT_LANGUAGES",
		"GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_LOCATION", "DOCUMENT_AI_PROCESSOR_ID",
		"FACE_API_URL", "FACE_API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_TIME_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OCRProvider != ocr.ProviderVision {
		t.Errorf("provider = %q, want %q", cfg.OCRProvider, ocr.ProviderVision)
	}
	if len(cfg.TesseractLanguages) != 1 || cfg.TesseractLanguages[0] != "eng" {
		t.Errorf("tesseract languages = %v", cfg.TesseractLanguages)
	}
	if cfg.GoogleCloudLocation != "us" {
		t.Errorf("location = %q", cfg.GoogleCloudLocation)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("log defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_PROVIDER", "azure")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestLoadDocumentAIRequiresProjectAndProcessor(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_PROVIDER", ocr.ProviderDocumentAI)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without project and processor")
	}

	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error without a processor id")
	}

	t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "abc123")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadSplitsTesseractLanguages(t *testing.T) {
	clearEnv(t)
	t.Setenv("TESSERACT_LANGUAGES", "eng, deu,, fra ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"eng", "deu", "fra"}
	if len(cfg.TesseractLanguages) != len(want) {
		t.Fatalf("languages = %v, want %v", cfg.TesseractLanguages, want)
	}
	for i, lang := range want {
		if cfg.TesseractLanguages[i] != lang {
			t.Errorf("languages[%d] = %q, want %q", i, cfg.TesseractLanguages[i], lang)
		}
	}
}

func TestGetLoggerConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lc := cfg.GetLoggerConfig()
	if lc.Level != "debug" || lc.Format != "json" {
		t.Errorf("logger config = %+v", lc)
	}
}
