package blogger

import (
	"errors"
	"testing"
)

func TestSheetExportURL(t *testing.T) {
	url, err := SheetExportURL("https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0")
	if err != nil {
		t.Fatalf("SheetExportURL error = %v", err)
	}

	want := "https://docs.google.com/spreadsheets/d/1AbC-dEf_123/export?format=csv"
	if url != want {
		t.Errorf("export URL = %q, want %q", url, want)
	}
}

func TestSheetExportURL_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com/some/doc",
		"https://docs.google.com/document/d/abc/edit",
	} {
		_, err := SheetExportURL(raw)
		if !errors.Is(err, ErrInvalidSource) {
			t.Errorf("SheetExportURL(%q) error = %v, want ErrInvalidSource", raw, err)
		}
	}
}
