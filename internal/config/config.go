package config

import (
	"fmt"
	"os"
	"strings"

	"idcheck/internal/logger"
	"idcheck/internal/ocr"
)

type Config struct {
	// OCR Configuration
	OCRProvider        string
	TesseractLanguages []string

	// Google Cloud Configuration (vision and documentai providers)
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Face Service Configuration
	FaceAPIURL string
	FaceAPIKey string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OCRProvider:           getEnv("OCR_PROVIDER", ocr.ProviderVision),
		TesseractLanguages:    splitList(getEnv("TESSERACT_LANGUAGES", "eng")),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		FaceAPIURL:            getEnv("FACE_API_URL", ""),
		FaceAPIKey:            getEnv("FACE_API_KEY", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.OCRProvider {
	case ocr.ProviderVision, ocr.ProviderDocumentAI, ocr.ProviderTesseract:
	default:
		return fmt.Errorf("OCR_PROVIDER must be one of: %s, %s, %s",
			ocr.ProviderVision, ocr.ProviderDocumentAI, ocr.ProviderTesseract)
	}
	if c.OCRProvider == ocr.ProviderDocumentAI {
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the documentai provider")
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required for the documentai provider")
		}
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
