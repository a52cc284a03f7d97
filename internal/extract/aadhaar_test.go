package extract

import (
	"testing"

	"idcheck/pkg/models"
)

func TestAadhaarExtract(t *testing.T) {
	text := NewTokenizedText("JOHN SMITH\n01/02/1990\n1234 5678 9012", 0)
	result := AadhaarExtractor{}.Extract(text)

	if result.Type != models.DocumentTypeAadhaar {
		t.Fatalf("unexpected type: %s", result.Type)
	}
	if result.Name != "JOHN SMITH" {
		t.Errorf("name = %q, want %q", result.Name, "JOHN SMITH")
	}
	if result.DOB != "01/02/1990" {
		t.Errorf("dob = %q, want %q", result.DOB, "01/02/1990")
	}
	if result.Number != "1234 5678 9012" {
		t.Errorf("number = %q, want %q", result.Number, "1234 5678 9012")
	}
}

func TestAadhaarExtractNoDate(t *testing.T) {
	text := NewTokenizedText("GOVERNMENT OF INDIA\nSOME OTHER LINE", 0)
	result := AadhaarExtractor{}.Extract(text)

	if result.DOB != models.NotFound {
		t.Errorf("dob = %q, want sentinel", result.DOB)
	}
	if result.Name != models.NotFound {
		t.Errorf("name = %q, want sentinel", result.Name)
	}
	if result.Number != models.NotFound {
		t.Errorf("number = %q, want sentinel", result.Number)
	}
}

func TestAadhaarExtractDOBOnFirstLine(t *testing.T) {
	// No line above the DOB means no name, but the DOB still resolves.
	text := NewTokenizedText("01/02/1990\n1234 5678 9012", 0)
	result := AadhaarExtractor{}.Extract(text)

	if result.DOB != "01/02/1990" {
		t.Errorf("dob = %q", result.DOB)
	}
	if result.Name != models.NotFound {
		t.Errorf("name = %q, want sentinel", result.Name)
	}
}

func TestAadhaarNumberRegrouped(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"spaced groups", "1234 5678 9012", "1234 5678 9012"},
		{"no spaces", "123456789012", "1234 5678 9012"},
		{"embedded in label", "Aadhaar No: 1234 5678 9012", "1234 5678 9012"},
		{"noise digits truncated", "1234 5678 9012 99", "1234 5678 9012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NewTokenizedText(tt.line, 0)
			result := AadhaarExtractor{}.Extract(text)
			if result.Number != tt.want {
				t.Errorf("number = %q, want %q", result.Number, tt.want)
			}
		})
	}
}

func TestAadhaarNameStripsNoise(t *testing.T) {
	text := NewTokenizedText("J0HN SM1TH #42\n01/02/1990", 0)
	result := AadhaarExtractor{}.Extract(text)

	if result.Name != "JHN SMTH" {
		t.Errorf("name = %q, want %q", result.Name, "JHN SMTH")
	}
}

func TestAadhaarExtractIdempotent(t *testing.T) {
	text := NewTokenizedText("JOHN SMITH\n01/02/1990\n1234 5678 9012", 0)
	first := AadhaarExtractor{}.Extract(text)
	second := AadhaarExtractor{}.Extract(text)

	if first.Name != second.Name || first.DOB != second.DOB || first.Number != second.Number {
		t.Fatalf("extraction not idempotent: %+v vs %+v", first, second)
	}
}
