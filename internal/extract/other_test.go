package extract

import (
	"strings"
	"testing"

	"idcheck/pkg/models"
)

func TestOtherExtractFullDocument(t *testing.T) {
	raw := strings.Join([]string{
		"REPUBLIC OF UTOPIA",
		"NAME: ALICE WONDER",
		"PASSPORT NO: AB1234567",
		"DOB 12/11/1988",
		"NATIONALITY: UTOPIAN",
		"EXPIRY 01/02/2031",
		"FATHER: BOB WONDER",
	}, "\n")
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))

	if result.Type != models.DocumentTypeOther {
		t.Fatalf("unexpected type: %s", result.Type)
	}
	if result.Name != "ALICE WONDER" {
		t.Errorf("name = %q", result.Name)
	}
	if result.DOB != "12/11/1988" {
		t.Errorf("dob = %q", result.DOB)
	}
	if result.PassportNumber != "AB1234567" {
		t.Errorf("passport number = %q", result.PassportNumber)
	}
	if result.SerialNumber != "AB1234567" {
		t.Errorf("serial number = %q, want the same line to feed both fields", result.SerialNumber)
	}
	if result.Nationality != "UTOPIAN" {
		t.Errorf("nationality = %q", result.Nationality)
	}
	if result.PassportExpiry != "01/02/2031" {
		t.Errorf("expiry = %q", result.PassportExpiry)
	}
	if got := result.AdditionalFields["fatherName"]; got != "BOB WONDER" {
		t.Errorf("fatherName = %q", got)
	}
}

func TestOtherExtractEmptyDocument(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("", 0))

	for field, got := range map[string]string{
		"name":           result.Name,
		"dob":            result.DOB,
		"passportNumber": result.PassportNumber,
		"serialNumber":   result.SerialNumber,
		"nationality":    result.Nationality,
		"passportExpiry": result.PassportExpiry,
	} {
		if got != models.NotFound {
			t.Errorf("%s = %q, want sentinel", field, got)
		}
	}
	if result.AdditionalFields != nil {
		t.Errorf("additional fields = %v, want nil", result.AdditionalFields)
	}
}

func TestOtherNameRemainderAfterLabel(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("NAME: JOHN TRAVELER", 0))
	if result.Name != "JOHN TRAVELER" {
		t.Errorf("name = %q", result.Name)
	}
}

func TestOtherNameWholeLineWhenRemainderEmpty(t *testing.T) {
	// The label ends the line, so the whole stripped line is the value.
	result := OtherExtractor{}.Extract(NewTokenizedText("FULL NAME", 0))
	if result.Name != "FULL NAME" {
		t.Errorf("name = %q", result.Name)
	}
}

func TestOtherPassportNumberOnCueLine(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("PASSPORT NO: AB1234567", 0))
	if result.PassportNumber != "AB1234567" {
		t.Errorf("passport number = %q", result.PassportNumber)
	}
}

func TestOtherPassportNumberOnLineAfterCue(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("PASSPORT NUMBER\nZ12345678", 0))
	if result.PassportNumber != "Z12345678" {
		t.Errorf("passport number = %q", result.PassportNumber)
	}
}

func TestOtherPassportFallbackScanWithoutCue(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("some header\n123456789", 0))
	if result.PassportNumber != "123456789" {
		t.Errorf("passport number = %q", result.PassportNumber)
	}
}

func TestOtherPassportCueWindowLimitsSearch(t *testing.T) {
	// A cue line restricts the search to itself and the next line; a
	// matching value further down is not picked up for the passport field.
	raw := "PASSPORT\nno number here\nAB1234567"
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))

	if result.PassportNumber != models.NotFound {
		t.Errorf("passport number = %q, want sentinel", result.PassportNumber)
	}
	// The serial scan runs over the whole document and still resolves.
	if result.SerialNumber != "AB1234567" {
		t.Errorf("serial number = %q", result.SerialNumber)
	}
}

func TestOtherPassportPatternOrderWithinLine(t *testing.T) {
	// Both shapes appear on the cue line; the earlier pattern decides.
	result := OtherExtractor{}.Extract(NewTokenizedText("PASSPORT AB1234567 987654321", 0))
	if result.PassportNumber != "AB1234567" {
		t.Errorf("passport number = %q", result.PassportNumber)
	}
}

func TestOtherExpiryShapes(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"EXPIRY 01/02/2031", "01/02/2031"},
		{"EXP: 10-10-2030", "10-10-2030"},
		{"VALID UNTIL 2031-02-01", "2031-02-01"},
	}
	for _, tt := range tests {
		result := OtherExtractor{}.Extract(NewTokenizedText(tt.line, 0))
		if result.PassportExpiry != tt.want {
			t.Errorf("line %q: expiry = %q, want %q", tt.line, result.PassportExpiry, tt.want)
		}
	}
}

func TestOtherNationalityNextLine(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("NATIONALITY\nINDIAN", 0))
	if result.Nationality != "INDIAN" {
		t.Errorf("nationality = %q", result.Nationality)
	}
}

func TestOtherNationalityNextLineLengthWindow(t *testing.T) {
	// A single-character next line is OCR noise and is not accepted.
	result := OtherExtractor{}.Extract(NewTokenizedText("DOMICILE\nX", 0))
	if result.Nationality != models.NotFound {
		t.Errorf("nationality = %q, want sentinel", result.Nationality)
	}
}

func TestOtherNationalityCueTermOrder(t *testing.T) {
	// NATIONALITY is tried before FROM even though the FROM line comes first.
	raw := "FROM GERMANY\nNATIONALITY: ITALY"
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))
	if result.Nationality != "ITALY" {
		t.Errorf("nationality = %q, want %q", result.Nationality, "ITALY")
	}
}

func TestOtherNationalityWithCaseLengthChangingRunes(t *testing.T) {
	// OCR noise can include runes whose upper-case form has a different byte
	// length (U+023F). The cue-term remainder must still resolve, not panic.
	raw := strings.Repeat("ȿ", 5) + "NATIONALITY: ITALY"
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))
	if result.Nationality != "ITALY" {
		t.Errorf("nationality = %q, want %q", result.Nationality, "ITALY")
	}
}

func TestOtherAuxiliaryWithCaseLengthChangingRunes(t *testing.T) {
	raw := "ȿȿ FATHER: ROBERT DOE"
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))
	if got := result.AdditionalFields["fatherName"]; got != "ROBERT DOE" {
		t.Errorf("fatherName = %q, want %q", got, "ROBERT DOE")
	}
}

func TestOtherNationalityCountryFallback(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("REPUBLIQUE FRANCAISE\nFRANCE", 0))
	if result.Nationality != "FRANCE" {
		t.Errorf("nationality = %q", result.Nationality)
	}
}

func TestOtherAuxiliaryNextLineValue(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("DATE OF ISSUE\n01/01/2020", 0))
	if got := result.AdditionalFields["dateOfIssue"]; got != "01/01/2020" {
		t.Errorf("dateOfIssue = %q", got)
	}
}

func TestOtherAuxiliaryLengthGate(t *testing.T) {
	// A one-character value is below the accepted window and is dropped.
	result := OtherExtractor{}.Extract(NewTokenizedText("GENDER: M", 0))
	if result.AdditionalFields != nil {
		t.Errorf("additional fields = %v, want nil", result.AdditionalFields)
	}
}

func TestOtherAuxiliaryLastLabelWins(t *testing.T) {
	raw := "GENDER: MALE\nSEX: FEMALE"
	result := OtherExtractor{}.Extract(NewTokenizedText(raw, 0))
	if got := result.AdditionalFields["gender"]; got != "FEMALE" {
		t.Errorf("gender = %q, want the later label to win", got)
	}
}

func TestOtherAuxiliarySanitizesNoise(t *testing.T) {
	result := OtherExtractor{}.Extract(NewTokenizedText("SPOUSE: MARY* DOE!", 0))
	if got := result.AdditionalFields["spouseName"]; got != "MARY DOE" {
		t.Errorf("spouseName = %q", got)
	}
}
