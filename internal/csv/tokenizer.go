// Package csv implements the simplified CSV dialect used by the blogger
// import spreadsheets.
//
// This is intentionally not RFC 4180. A double quote toggles the
// "inside quotes" state wherever it appears, so two adjacent quotes are
// two toggles rather than an escaped literal quote, and at most one
// quote is stripped from each end of a field. The existing spreadsheet
// exports depend on these exact parses; do not swap in encoding/csv.
package csv

import "strings"

// Tokenize splits raw CSV text into rows of fields.
//
// Commas inside a double-quoted span do not split the field. Fields are
// returned untrimmed apart from quote stripping. Input with fewer than
// two lines (a header row plus at least one data row) yields no rows.
func Tokenize(text string) [][]string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitLine(line))
	}
	return rows
}

// splitLine splits a single line into fields on unquoted commas.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, stripQuotes(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, stripQuotes(cur.String()))

	return fields
}

// stripQuotes removes at most one leading and one trailing quote.
// Quotes anywhere else in the field are kept as-is.
func stripQuotes(s string) string {
	if strings.HasPrefix(s, `"`) {
		s = s[1:]
	}
	if strings.HasSuffix(s, `"`) {
		s = s[:len(s)-1]
	}
	return s
}
