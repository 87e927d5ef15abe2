// Package ics exports Igbo year grids as iCalendar feeds.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	ical "github.com/arran4/golang-ical"

	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
)

// ProductID identifies the generator in exported feeds.
const ProductID = "-//igbocal//Igbo Calendar//EN"

// uidDomain is appended to every event UID.
const uidDomain = "igbocal"

// Options controls which events an export contains.
type Options struct {
	// IncludeMarketDays adds one event per day naming its market day.
	IncludeMarketDays bool

	// Now is written as DTSTAMP. Zero means time.Now().
	Now time.Time
}

// YearCalendar builds the iCalendar for one Igbo year.
//
// Months become all-day events spanning their 28 days. New and full moon
// days and the first festival day get their own events. UIDs are derived from the year label
// and the date, so re-exporting a year produces the same identifiers.
func YearCalendar(grid calendar.YearGrid, opts Options) *ical.Calendar {
	stamp := opts.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}
	stamp = stamp.UTC()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(CalendarName(grid.YearLabel))
	cal.SetXWRCalDesc(fmt.Sprintf("Igbo year %s starting %s", displayLabel(grid.YearLabel), calendar.FormatDate(grid.StartDate)))

	for _, mg := range grid.Months {
		addMonth(cal, grid.YearLabel, mg, stamp)

		for _, cell := range mg.Cells() {
			if cell.LunarStage == calendar.NewMoon || cell.LunarStage == calendar.FullMoon {
				addLunarPhase(cal, mg.Meta, cell, stamp)
			}
			if opts.IncludeMarketDays {
				addMarketDay(cal, mg.Meta, cell, stamp)
			}
		}
	}

	addFestival(cal, grid, stamp)

	return cal
}

// WriteYear serializes the year's calendar to w.
func WriteYear(w io.Writer, grid calendar.YearGrid, opts Options) error {
	if err := YearCalendar(grid, opts).SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}

// CalendarName is the X-WR-CALNAME of a year's feed.
func CalendarName(yearLabel string) string {
	return "Igbo Calendar " + displayLabel(yearLabel)
}

// Filename returns the download name for a year's feed.
func Filename(yearLabel string) string {
	return fmt.Sprintf("igbo_calendar_%s.ics", uidSafe(displayLabel(yearLabel)))
}

func addMonth(cal *ical.Calendar, label string, mg calendar.MonthGrid, stamp time.Time) {
	meta := mg.Meta
	event := cal.AddEvent(uid(label, "month", meta.StartDate))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(meta.StartDate)
	// DTEND is exclusive for all-day events
	event.SetAllDayEndAt(meta.EndDate.AddDate(0, 0, 1))
	event.SetSummary(meta.DisplayName)

	desc := fmt.Sprintf("Month %d of the Igbo year %s. Begins on %s.", meta.Index, displayLabel(label), meta.StartWeekdayName)
	if meta.GregHint != "" {
		desc += " Usually falls in " + meta.GregHint + "."
	}
	if meta.Description != "" {
		desc += " " + meta.Description
	}
	event.SetDescription(desc)
	event.SetProperty(ical.ComponentPropertyCategories, "Ọnwa")
}

func addLunarPhase(cal *ical.Calendar, meta calendar.MonthMeta, cell *calendar.DayCell, stamp time.Time) {
	event := cal.AddEvent(uid(cell.YearLabel, "moon", cell.GregorianDate))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(cell.GregorianDate)
	event.SetAllDayEndAt(cell.GregorianDate.AddDate(0, 0, 1))
	event.SetSummary(fmt.Sprintf("%s (%s)", cell.LunarStage, meta.DisplayName))
	event.SetDescription(fmt.Sprintf("Day %d of %s, %s.", cell.DayInMonth, meta.DisplayName, cell.WeekdayName))
	event.SetProperty(ical.ComponentPropertyCategories, "Moon")
}

func addMarketDay(cal *ical.Calendar, meta calendar.MonthMeta, cell *calendar.DayCell, stamp time.Time) {
	event := cal.AddEvent(uid(cell.YearLabel, "day", cell.GregorianDate))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(cell.GregorianDate)
	event.SetAllDayEndAt(cell.GregorianDate.AddDate(0, 0, 1))
	event.SetSummary(fmt.Sprintf("%s · %s %d", cell.WeekdayName, meta.DisplayName, cell.DayInMonth))
	event.SetDescription(fmt.Sprintf("Day %d of the year. Moon: %s.", cell.DayOfYear, cell.LunarStage))
	event.SetProperty(ical.ComponentPropertyCategories, "Market day")
}

func addFestival(cal *ical.Calendar, grid calendar.YearGrid, stamp time.Time) {
	start := calendar.FestivalStart(grid.StartDate)
	event := cal.AddEvent(uid(grid.YearLabel, "festival", start))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(start)
	event.SetAllDayEndAt(start.AddDate(0, 0, 1))
	event.SetSummary("Festival days begin")
	event.SetDescription(fmt.Sprintf("Day %d of the Igbo year %s. Festival days last until the next year begins.", calendar.DaysPerYear+1, displayLabel(grid.YearLabel)))
	event.SetProperty(ical.ComponentPropertyCategories, "Festival")
}

// uid builds a stable event identifier.
func uid(label, kind string, day time.Time) string {
	return fmt.Sprintf("%s-%s-%s@%s", uidSafe(displayLabel(label)), kind, day.Format("20060102"), uidDomain)
}

func displayLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "unlabelled"
	}
	return strings.TrimSpace(label)
}

// uidSafe replaces anything but letters and digits with '-'.
func uidSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '-'
	}, s)
}
