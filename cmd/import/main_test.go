package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/igbo-calendar-api/internal/database"
	"github.com/zapponejosh/igbo-calendar-api/internal/logger"
)

func TestParseYearFile(t *testing.T) {
	want := []database.YearImportEntry{
		{Label: "2024", StartDate: "2024-02-20", Notes: "observed in Nsukka"},
		{Label: "2025", StartDate: "2025-02-19"},
	}

	tests := []struct {
		name string
		path string
		data string
	}{
		{
			name: "yaml",
			path: "years.yaml",
			data: `years:
  - label: "2024"
    start_date: "2024-02-20"
    notes: observed in Nsukka
  - label: "2025"
    start_date: "2025-02-19"
`,
		},
		{
			name: "json",
			path: "years.JSON",
			data: `{"years": [
				{"label": "2024", "start_date": "2024-02-20", "notes": "observed in Nsukka"},
				{"label": "2025", "start_date": "2025-02-19"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseYearFile(tt.path, []byte(tt.data))
			if err != nil {
				t.Fatalf("parseYearFile() error = %v", err)
			}
			if diff := cmp.Diff(want, got.Years); diff != "" {
				t.Errorf("parseYearFile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseYearFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"empty yaml", "years.yaml", "years: []\n"},
		{"bad json", "years.json", `{"years": [`},
		{"bad yaml", "years.yml", "years: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseYearFile(tt.path, []byte(tt.data)); err == nil {
				t.Error("parseYearFile() error = nil, want error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	yearFile := filepath.Join(dir, "years.yaml")
	dbFile := filepath.Join(dir, "igbocal.db")

	data := "years:\n  - label: \"2024\"\n    start_date: \"2024-02-20\"\n"
	if err := os.WriteFile(yearFile, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logger.Discard()
	if err := run(yearFile, dbFile, log); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// Importing the same year again must fail as a duplicate
	err := run(yearFile, dbFile, log)
	if err == nil {
		t.Fatal("second run() error = nil, want duplicate error")
	}
	if !database.IsDuplicate(err) {
		t.Errorf("second run() error = %v, want duplicate", err)
	}
}
