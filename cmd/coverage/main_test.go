package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/igbo-calendar-api/internal/database"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildReport(t *testing.T) {
	years := []database.IgboYear{
		{Label: "2023", StartDate: "2023-02-21"},
		{Label: "2024", StartDate: "2024-02-20"},
		{Label: "2025", StartDate: "2025-02-10"},
		{Label: "2026", StartDate: "2026-04-01"},
	}

	report, err := buildReport(years, day("2023-01-01"), day("2026-12-31"))
	if err != nil {
		t.Fatalf("buildReport() error = %v", err)
	}

	// 2023-02-21 + 364 = 2024-02-20: no festival days
	// 2024-02-20 + 364 = 2025-02-18: next year starts 8 days early
	// 2025-02-10 + 364 = 2026-02-09: 51 festival days before 2026-04-01
	wantDays := []int{0, -8, 51}
	for i, want := range wantDays {
		if got := report.Years[i].FestivalDays; got != want {
			t.Errorf("Years[%d].FestivalDays = %d, want %d", i, got, want)
		}
	}
	if !report.Years[3].Open {
		t.Error("last year should be open")
	}

	if diff := cmp.Diff([]string{"2024"}, report.Overlaps); diff != "" {
		t.Errorf("Overlaps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2025"}, report.LongTails); diff != "" {
		t.Errorf("LongTails mismatch (-want +got):\n%s", diff)
	}

	// 2023-01-01 through 2023-02-20
	if report.Uncovered != 51 {
		t.Errorf("Uncovered = %d, want 51", report.Uncovered)
	}
}

func TestBuildReport_Uncovered(t *testing.T) {
	tests := []struct {
		name  string
		years []database.IgboYear
		from  string
		to    string
		want  int
	}{
		{"empty registry", nil, "2024-01-01", "2024-01-10", 10},
		{"range after first start", []database.IgboYear{{Label: "a", StartDate: "2024-02-20"}}, "2024-03-01", "2024-03-31", 0},
		{"range before first start", []database.IgboYear{{Label: "a", StartDate: "2024-02-20"}}, "2024-01-01", "2024-01-31", 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := buildReport(tt.years, day(tt.from), day(tt.to))
			if err != nil {
				t.Fatalf("buildReport() error = %v", err)
			}
			if report.Uncovered != tt.want {
				t.Errorf("Uncovered = %d, want %d", report.Uncovered, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("parseRange() error = %v", err)
	}
	if !from.Equal(day("2024-01-01")) || !to.Equal(day("2024-12-31")) {
		t.Errorf("parseRange() = %v, %v", from, to)
	}

	if _, _, err := parseRange("2024-12-31", "2024-01-01"); err == nil {
		t.Error("reversed range error = nil, want error")
	}
	if _, _, err := parseRange("yesterday", ""); err == nil {
		t.Error("bad from error = nil, want error")
	}
}

func TestPrintReport(t *testing.T) {
	years := []database.IgboYear{
		{Label: "2024", StartDate: "2024-02-20"},
		{Label: "2025", StartDate: "2025-02-18"},
	}
	report, err := buildReport(years, day("2024-02-20"), day("2025-12-31"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{"0 festival day(s)", "open", "Uncovered days:  0"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
