// Command coverage reports how well the year registry covers a date range.
//
// Usage:
//
//	go run ./cmd/coverage -db data/igbocal.db -from 2020-01-01 -to 2030-12-31
//
// For each registered year it prints the length of its festival tail, that
// is the days between day 364 and the next registered start. Dates in the
// range that precede every registered start are reported as gaps.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
	"github.com/zapponejosh/igbo-calendar-api/internal/database"
	"github.com/zapponejosh/igbo-calendar-api/internal/logger"
)

// longFestival flags tails long enough to suggest a missing year.
const longFestival = 30

// YearCoverage summarizes one registered year.
type YearCoverage struct {
	Label         string
	Start         time.Time
	FestivalStart time.Time
	// FestivalDays is negative when the next year starts before day 364
	// ends. Unset when Open.
	FestivalDays int
	// Open marks the last registered year, whose tail has no end yet.
	Open bool
}

// Report is the coverage of a date range.
type Report struct {
	From, To time.Time
	Years    []YearCoverage
	// Uncovered counts days in the range before the first registered start.
	Uncovered int
	// Overlaps lists labels whose successor starts before day 364 ends.
	Overlaps []string
	// LongTails lists labels with a festival tail of longFestival days or more.
	LongTails []string
}

func main() {
	dbPath := flag.String("db", "data/igbocal.db", "Path to SQLite database")
	fromStr := flag.String("from", "", "First date of the range (YYYY-MM-DD)")
	toStr := flag.String("to", "", "Last date of the range (YYYY-MM-DD)")
	flag.Parse()

	log := logger.New(os.Stderr, "info", "text")

	from, to, err := parseRange(*fromStr, *toStr)
	if err != nil {
		log.Error("invalid range", slog.Any("error", err))
		os.Exit(2)
	}

	db, err := database.Open(database.DefaultConfig(*dbPath), log)
	if err != nil {
		log.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	years, err := db.ListYears(context.Background())
	if err != nil {
		log.Error("list years", slog.Any("error", err))
		os.Exit(1)
	}

	report, err := buildReport(years, from, to)
	if err != nil {
		log.Error("build report", slog.Any("error", err))
		os.Exit(1)
	}
	printReport(os.Stdout, report)

	if report.Uncovered > 0 || len(report.Overlaps) > 0 {
		os.Exit(1)
	}
}

// parseRange defaults to the current Gregorian year.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if fromStr != "" {
		if from, err = calendar.ParseDateString(fromStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
		}
	}
	if toStr != "" {
		if to, err = calendar.ParseDateString(toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to %s is before from %s", calendar.FormatDate(to), calendar.FormatDate(from))
	}
	return from, to, nil
}

// buildReport expects years ordered by start date, as ListYears returns them.
func buildReport(years []database.IgboYear, from, to time.Time) (*Report, error) {
	report := &Report{From: from, To: to}

	for i, y := range years {
		start, err := y.Start()
		if err != nil {
			return nil, err
		}

		cov := YearCoverage{
			Label:         y.Label,
			Start:         start,
			FestivalStart: calendar.FestivalStart(start),
			Open:          true,
		}

		if i+1 < len(years) {
			next, err := years[i+1].Start()
			if err != nil {
				return nil, err
			}
			cov.Open = false
			cov.FestivalDays = calendar.DaysBetween(cov.FestivalStart, next)
			if cov.FestivalDays < 0 {
				report.Overlaps = append(report.Overlaps, y.Label)
			} else if cov.FestivalDays >= longFestival {
				report.LongTails = append(report.LongTails, y.Label)
			}
		}

		report.Years = append(report.Years, cov)
	}

	// Days before the first start cannot be converted from the registry
	switch {
	case len(report.Years) == 0:
		report.Uncovered = calendar.DaysBetween(from, to) + 1
	case report.Years[0].Start.After(from):
		last := report.Years[0].Start.AddDate(0, 0, -1)
		if last.After(to) {
			last = to
		}
		report.Uncovered = calendar.DaysBetween(from, last) + 1
	}

	return report, nil
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintln(w, "==============================================")
	fmt.Fprintf(w, "Registry coverage %s to %s\n", calendar.FormatDate(r.From), calendar.FormatDate(r.To))
	fmt.Fprintln(w, "==============================================")

	if len(r.Years) == 0 {
		fmt.Fprintln(w, "No years registered.")
	}
	for _, y := range r.Years {
		var tail string
		switch {
		case y.Open:
			tail = "open"
		case y.FestivalDays < 0:
			tail = "overlaps next year"
		default:
			tail = fmt.Sprintf("%d festival day(s)", y.FestivalDays)
		}
		fmt.Fprintf(w, "  %-16s %s  festival from %s  %s\n",
			y.Label, calendar.FormatDate(y.Start), calendar.FormatDate(y.FestivalStart), tail)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Uncovered days:  %d\n", r.Uncovered)
	if len(r.Overlaps) > 0 {
		fmt.Fprintf(w, "Overlapping:     %v\n", r.Overlaps)
	}
	if len(r.LongTails) > 0 {
		fmt.Fprintf(w, "Long festivals:  %v (a year may be missing)\n", r.LongTails)
	}
}
