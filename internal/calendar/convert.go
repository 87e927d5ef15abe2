package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrBeforeYearStart is returned by Convert when the date falls before the
// year start it is measured from.
var ErrBeforeYearStart = errors.New("date precedes year start")

// IgboDate is a Gregorian date expressed in an Igbo year.
//
// Month, DayInMonth and LunarStage are nil for festival days, which lie
// past day 364 and belong to no month.
type IgboDate struct {
	YearLabel    string      `json:"year_label"`
	DayOfYear    int         `json:"day_of_year"`
	Month        *int        `json:"month"`
	DayInMonth   *int        `json:"day_in_month"`
	WeekdayIndex int         `json:"weekday_index"`
	WeekdayName  string      `json:"weekday_name"`
	LunarStage   *LunarStage `json:"lunar_stage"`
	IsFestival   bool        `json:"is_festival"`
}

// IgboFromGregorian converts date using the year that begins on yearStart.
// It reports false when date is earlier than yearStart; that is the only
// input it rejects. Time of day is ignored on both arguments.
func (e *Engine) IgboFromGregorian(date, yearStart time.Time, yearLabel string) (IgboDate, bool) {
	diff := DaysBetween(yearStart, date)
	if diff < 0 {
		return IgboDate{}, false
	}

	if diff >= DaysPerYear {
		weekday := mod(diff, WeekLength)
		return IgboDate{
			YearLabel:    yearLabel,
			DayOfYear:    diff + 1,
			WeekdayIndex: weekday,
			WeekdayName:  WeekdayName(weekday),
			IsFestival:   true,
		}, true
	}

	month := diff/DaysPerMonth + 1
	day := diff%DaysPerMonth + 1
	weekday := e.weekdayOf(month, day)
	stage := LunarStageForDay(day)

	return IgboDate{
		YearLabel:    yearLabel,
		DayOfYear:    diff + 1,
		Month:        &month,
		DayInMonth:   &day,
		WeekdayIndex: weekday,
		WeekdayName:  WeekdayName(weekday),
		LunarStage:   &stage,
	}, true
}

// Convert is IgboFromGregorian with an error instead of a flag.
func (e *Engine) Convert(date, yearStart time.Time, yearLabel string) (IgboDate, error) {
	d, ok := e.IgboFromGregorian(date, yearStart, yearLabel)
	if !ok {
		return IgboDate{}, fmt.Errorf("%s before %s: %w", FormatDate(date), FormatDate(yearStart), ErrBeforeYearStart)
	}
	return d, nil
}

// GregorianFromIgbo returns the Gregorian date of day dayInMonth of month
// in the year beginning on yearStart.
func (e *Engine) GregorianFromIgbo(yearStart time.Time, month, dayInMonth int) (time.Time, error) {
	if month < 1 || month > MonthsPerYear {
		return time.Time{}, fmt.Errorf("month must be between 1 and %d, got %d", MonthsPerYear, month)
	}
	if dayInMonth < 1 || dayInMonth > DaysPerMonth {
		return time.Time{}, fmt.Errorf("day must be between 1 and %d, got %d", DaysPerMonth, dayInMonth)
	}
	return addDays(MonthStart(yearStart, month), dayInMonth-1), nil
}

// weekdayOf returns the market-day index of a day inside a month.
func (e *Engine) weekdayOf(month, dayInMonth int) int {
	return mod(e.MonthStartWeekdayIndex(month)+dayInMonth-1, WeekLength)
}

// IgboFromGregorian converts date with the default engine.
func IgboFromGregorian(date, yearStart time.Time, yearLabel string) (IgboDate, bool) {
	return defaultEngine.IgboFromGregorian(date, yearStart, yearLabel)
}

// Convert converts date with the default engine.
func Convert(date, yearStart time.Time, yearLabel string) (IgboDate, error) {
	return defaultEngine.Convert(date, yearStart, yearLabel)
}

// GregorianFromIgbo converts an in-month Igbo date with the default engine.
func GregorianFromIgbo(yearStart time.Time, month, dayInMonth int) (time.Time, error) {
	return defaultEngine.GregorianFromIgbo(yearStart, month, dayInMonth)
}
