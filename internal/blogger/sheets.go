package blogger

import (
	"fmt"
	"regexp"
)

// sheetIDPattern extracts the opaque document identifier from a Google
// Sheets document URL.
var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// sheetBaseURL is the host serving spreadsheet exports. Overridden in
// tests to point at a local server.
var sheetBaseURL = "https://docs.google.com"

// SheetExportURL converts a Google Sheets document URL into the
// deterministic export-as-CSV form, preserving the embedded document
// identifier. Returns ErrInvalidSource when the URL carries no
// recognizable identifier.
func SheetExportURL(rawURL string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, rawURL)
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", sheetBaseURL, m[1]), nil
}
