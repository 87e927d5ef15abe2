// Package calendar implements the Igbo calendar: a 13-month, 364-day year
// of 28-day months built from 4-day market weeks, followed by festival days
// until the next year start.
//
// Every function here is pure. Results depend only on the arguments and on
// the month catalog and start-weekday rule an Engine was built with, so an
// Engine is safe for concurrent use.
package calendar

import "time"

// Engine converts Gregorian dates and builds year grids for one catalog
// and start-weekday rule.
type Engine struct {
	catalog   *Catalog
	startRule StartWeekdayRule
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the month catalog. A nil catalog keeps the default.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithStartWeekdayRule replaces the month start-weekday rule.
// A nil rule keeps the default.
func WithStartWeekdayRule(rule StartWeekdayRule) Option {
	return func(e *Engine) {
		if rule != nil {
			e.startRule = rule
		}
	}
}

// NewEngine creates an engine with the canonical catalog and the rotating
// start-weekday rule, then applies opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog:   defaultCatalog,
		startRule: RotatingStartWeekday,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultEngine backs the package-level functions.
var defaultEngine = NewEngine()

// Catalog returns the engine's month catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// MonthStartWeekdayIndex returns the starting market-day index of month,
// always in 0..3 whatever the configured rule returns.
func (e *Engine) MonthStartWeekdayIndex(month int) int {
	return mod(e.startRule(month), WeekLength)
}

// MonthStart returns the Gregorian date of day 1 of month m.
func MonthStart(yearStart time.Time, m int) time.Time {
	return addDays(yearStart, DaysPerMonth*(m-1))
}

// MonthEnd returns the Gregorian date of day 28 of month m.
func MonthEnd(yearStart time.Time, m int) time.Time {
	return addDays(MonthStart(yearStart, m), DaysPerMonth-1)
}

// FestivalStart returns the Gregorian date of the first festival day
// (day 365) of the year starting at yearStart.
func FestivalStart(yearStart time.Time) time.Time {
	return addDays(yearStart, DaysPerYear)
}
