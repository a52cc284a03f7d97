package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Shape patterns shared by the extractors. Lists are ordered: patterns are
// tried in declared order and the first match wins, so a more specific shape
// must be listed before a more general one that would also match.
var (
	// reDate matches the DD/MM/YYYY layout used on Aadhaar and PAN cards.
	reDate = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	// rePAN matches the 10-character PAN layout: 5 letters, 4 digits, 1 letter.
	rePAN = regexp.MustCompile(`(?i)[A-Z]{5}[0-9]{4}[A-Z]`)

	// reAadhaar matches a 12-digit Aadhaar number grouped 4+4+4 with optional
	// internal spaces.
	reAadhaar = regexp.MustCompile(`\d{4}\s?\d{4}\s?\d{4}`)

	reNonAlpha = regexp.MustCompile(`[^a-zA-Z\s]`)
	reNonDigit = regexp.MustCompile(`\D`)

	// reAuxiliary keeps alphanumerics, spaces, slashes and hyphens; everything
	// else is OCR noise in auxiliary field values.
	reAuxiliary = regexp.MustCompile(`[^a-zA-Z0-9\s/\-]`)
)

// passportPatterns are the passport number shapes, most specific first.
var passportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z]{2}\d{7}`),     // 2 letters + 7 digits
	regexp.MustCompile(`\d{9}`),             // 9 digits
	regexp.MustCompile(`[A-Z]\d{8}`),        // 1 letter + 8 digits
	regexp.MustCompile(`[A-Z]{3}\d{6}`),     // 3 letters + 6 digits
	regexp.MustCompile(`\d{8,9}`),           // 8 or 9 digits
	regexp.MustCompile(`[A-Z]{1,2}\d{6,8}`), // 1-2 letters + 6-8 digits
}

// serialPatterns are the document serial number shapes. They overlap with the
// passport shapes on purpose; the two fields resolve independently and the
// same line may satisfy both.
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z]{2}\d{7,8}`),       // 2 letters + 7-8 digits
	regexp.MustCompile(`\d{10,12}`),             // 10-12 digits
	regexp.MustCompile(`[A-Z]\d{9,10}`),         // 1 letter + 9-10 digits
	regexp.MustCompile(`[A-Z]{3,4}\d{5,6}`),     // 3-4 letters + 5-6 digits
	regexp.MustCompile(`\d{8,9}[A-Z]?\d{1,2}`),  // 8-9 digits + optional letter + 1-2 digits
}

// expiryPatterns are the expiry date shapes. The last entry anchors the date
// to the cue words themselves and carries a capture group; when a pattern has
// a group the group is preferred over the whole match.
var expiryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), // DD/MM/YYYY
	regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), // DD-MM-YYYY
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), // YYYY-MM-DD
	regexp.MustCompile(`\d{2}/\d{2}/\d{2}`), // DD/MM/YY
	regexp.MustCompile(`\d{2}-\d{2}/\d{4}`), // DD-MM/YYYY
	regexp.MustCompile(`(?i)(?:EXP|EXPIRY|EXPIRES|VALID\s*UNTIL|VALID\s*THRU)\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})`),
}

// passportCueTerms anchor where to look for a passport number.
var passportCueTerms = []string{"PASSPORT", "PASS NO", "PASS#"}

// expiryCueTerms anchor where to look for an expiry date. "EXP" subsumes the
// longer variants but they stay listed to document the surface forms.
var expiryCueTerms = []string{"EXP", "EXPIRY", "EXPIRES", "VALID UNTIL", "VALID THRU"}

// nationalityCueTerms are tried in listed order; the first term that yields a
// value stops the scan.
var nationalityCueTerms = []string{
	"NATIONALITY", "CITIZENSHIP", "CITIZEN", "NATIONAL",
	"ORIGIN", "DOMICILE", "RESIDENT", "BELONGS TO", "FROM",
}

// auxiliaryLabel maps a surface term found on generic ID cards to the
// canonical field name reported in AdditionalFields.
type auxiliaryLabel struct {
	Term  string
	Field string
}

// auxiliaryLabels is ordered; a slice keeps the scan order stable where a map
// would randomize it. Labels sharing a canonical field assign in order, so the
// last label present on the document wins.
var auxiliaryLabels = []auxiliaryLabel{
	{"GENDER", "gender"},
	{"SEX", "gender"},
	{"FATHER", "fatherName"},
	{"MOTHER", "motherName"},
	{"SPOUSE", "spouseName"},
	{"ISSUING AUTHORITY", "issuingAuthority"},
	{"PLACE OF BIRTH", "placeOfBirth"},
	{"DATE OF ISSUE", "dateOfIssue"},
	{"ID NO", "idNumber"},
	{"DOCUMENT NO", "documentNumber"},
	{"FILE NO", "fileNumber"},
}

// countryNames is the fallback dictionary for nationality when no cue term
// resolves. Scanned in listed order.
var countryNames = []string{
	"INDIA", "USA", "UNITED STATES", "UK", "UNITED KINGDOM", "CANADA",
	"AUSTRALIA", "GERMANY", "FRANCE", "ITALY", "SPAIN", "JAPAN", "CHINA",
	"BRAZIL", "RUSSIA", "SWITZERLAND", "NORWAY", "SWEDEN", "DENMARK",
	"FINLAND", "NETHERLANDS", "BELGIUM", "AUSTRIA", "IRELAND", "NEW ZEALAND",
	"SINGAPORE", "MALAYSIA", "THAILAND", "SOUTH KOREA", "MEXICO", "ARGENTINA",
	"CHILE", "COLOMBIA", "VENEZUELA", "PERU", "EGYPT", "SOUTH AFRICA",
	"KENYA", "NIGERIA", "GHANA", "MOROCCO", "TURKEY", "SAUDI ARABIA", "UAE",
	"QATAR", "KUWAIT", "OMAN", "PAKISTAN", "BANGLADESH", "NEPAL", "SRI LANKA",
	"MYANMAR", "VIETNAM", "INDONESIA", "PHILIPPINES", "CAMBODIA", "LAOS",
}

// firstMatch tries the patterns against line in declared order and returns
// the first hit. When the winning pattern has a capture group, the group is
// returned instead of the whole match.
func firstMatch(patterns []*regexp.Regexp, line string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return m[1], true
		}
		return m[0], true
	}
	return "", false
}

// scanLines applies firstMatch line by line and returns the first resolved
// value. Line order outranks pattern order across lines; within one line the
// pattern order decides.
func scanLines(lines []string, patterns []*regexp.Regexp) (string, bool) {
	for _, line := range lines {
		if v, ok := firstMatch(patterns, line); ok {
			return v, true
		}
	}
	return "", false
}

// containsFold reports whether line contains term ignoring case. Matching is
// substring containment, not token match, so a term also hits inside compound
// OCR lines.
func containsFold(line, term string) bool {
	return strings.Contains(strings.ToUpper(line), strings.ToUpper(term))
}

// findLine returns the index of the first line containing term (case
// insensitive), or -1.
func findLine(lines []string, term string) int {
	for i, line := range lines {
		if containsFold(line, term) {
			return i
		}
	}
	return -1
}

// remainderAfter returns the text following the first case-insensitive
// occurrence of term in line, and whether term occurs at all. The scan is
// rune-wise on the original line: upper-casing a string can change its byte
// length (U+023F grows from two bytes to three), so offsets computed on a
// cased copy cannot be used to slice the original.
func remainderAfter(line, term string) (string, bool) {
	end, ok := endOfFold(line, term)
	if !ok {
		return "", false
	}
	return line[end:], true
}

// endOfFold locates the first case-insensitive occurrence of term in s and
// returns the byte offset just past it.
func endOfFold(s, term string) (int, bool) {
	for i := 0; i <= len(s); {
		if n, ok := foldPrefixLen(s[i:], term); ok {
			return i + n, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		i += size
	}
	return 0, false
}

// foldPrefixLen reports whether s starts with term ignoring case, and how
// many bytes of s the match covers.
func foldPrefixLen(s, term string) (int, bool) {
	var n int
	for _, tr := range term {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToUpper(r) != unicode.ToUpper(tr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// stripNonAlpha drops everything except letters and spaces, then trims.
func stripNonAlpha(s string) string {
	return strings.TrimSpace(reNonAlpha.ReplaceAllString(s, ""))
}

// sanitizeAuxiliary keeps alphanumerics, spaces, slashes and hyphens, then
// trims.
func sanitizeAuxiliary(s string) string {
	return strings.TrimSpace(reAuxiliary.ReplaceAllString(s, ""))
}

// groupDigits inserts a space after every fourth digit, matching the printed
// Aadhaar layout.
func groupDigits(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
