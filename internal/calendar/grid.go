package calendar

import (
	"time"
)

// MonthMeta describes one month of a specific year.
type MonthMeta struct {
	Index             int       `json:"index"`
	Name              string    `json:"name"`
	AltName           string    `json:"alt_name"`
	DisplayName       string    `json:"display_name"`
	GregHint          string    `json:"greg_hint"`
	Description       string    `json:"description"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	StartWeekdayIndex int       `json:"start_weekday_index"`
	StartWeekdayName  string    `json:"start_weekday_name"`
}

// DayCell is one in-month day of a grid.
type DayCell struct {
	GregorianDate time.Time  `json:"gregorian_date"`
	YearLabel     string     `json:"year_label"`
	DayOfYear     int        `json:"day_of_year"`
	Month         int        `json:"month"`
	DayInMonth    int        `json:"day_in_month"`
	WeekdayIndex  int        `json:"weekday_index"`
	WeekdayName   string     `json:"weekday_name"`
	LunarStage    LunarStage `json:"lunar_stage"`
	IsFestival    bool       `json:"is_festival"`
}

// Row is one market week of a month grid. Nil entries are blanks.
type Row [WeekLength]*DayCell

// MonthGrid is a month laid out in market-week rows.
type MonthGrid struct {
	Meta MonthMeta `json:"meta"`
	Rows []Row     `json:"rows"`
}

// Cells returns the non-blank cells in order.
func (g MonthGrid) Cells() []*DayCell {
	cells := make([]*DayCell, 0, DaysPerMonth)
	for _, row := range g.Rows {
		for _, cell := range row {
			if cell != nil {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// YearGrid is a full Igbo year laid out month by month.
// Months holds months 1..13 in order.
type YearGrid struct {
	YearLabel string      `json:"year_label"`
	StartDate time.Time   `json:"start_date"`
	Months    []MonthGrid `json:"months"`
}

// Month returns the grid for month m (1..13).
func (g YearGrid) Month(m int) (MonthGrid, bool) {
	if m < 1 || m > len(g.Months) {
		return MonthGrid{}, false
	}
	return g.Months[m-1], true
}

// MonthMeta builds the metadata of month m for the year beginning on
// yearStart. Months absent from the catalog get a placeholder name.
func (e *Engine) MonthMeta(yearStart time.Time, m int) MonthMeta {
	def := e.catalog.Month(m)
	startIdx := e.MonthStartWeekdayIndex(m)
	return MonthMeta{
		Index:             m,
		Name:              def.Name,
		AltName:           def.AltName,
		DisplayName:       MonthDisplayName(def),
		GregHint:          def.GregHint,
		Description:       def.Description,
		StartDate:         MonthStart(yearStart, m),
		EndDate:           MonthEnd(yearStart, m),
		StartWeekdayIndex: startIdx,
		StartWeekdayName:  WeekdayName(startIdx),
	}
}

// RowCount returns the number of market-week rows needed for a month
// whose first day falls on market day startWeekday.
func RowCount(startWeekday int) int {
	return (startWeekday + DaysPerMonth + WeekLength - 1) / WeekLength
}

// MonthGrid lays out month m of the year beginning on yearStart.
//
// The first row is padded with startWeekday leading blanks and the last
// row with trailing blanks, so every row is exactly one market week wide.
func (e *Engine) MonthGrid(yearStart time.Time, yearLabel string, m int) MonthGrid {
	meta := e.MonthMeta(yearStart, m)
	startIdx := meta.StartWeekdayIndex
	rowCount := RowCount(startIdx)

	rows := make([]Row, rowCount)
	day := 0
	for r := 0; r < rowCount; r++ {
		for c := 0; c < WeekLength; c++ {
			cellIndex := r*WeekLength + c
			if cellIndex < startIdx || day >= DaysPerMonth {
				continue
			}
			day++
			rows[r][c] = e.dayCell(meta, yearLabel, day)
		}
	}

	return MonthGrid{Meta: meta, Rows: rows}
}

func (e *Engine) dayCell(meta MonthMeta, yearLabel string, dayInMonth int) *DayCell {
	weekday := mod(meta.StartWeekdayIndex+dayInMonth-1, WeekLength)
	return &DayCell{
		GregorianDate: addDays(meta.StartDate, dayInMonth-1),
		YearLabel:     yearLabel,
		DayOfYear:     (meta.Index-1)*DaysPerMonth + dayInMonth,
		Month:         meta.Index,
		DayInMonth:    dayInMonth,
		WeekdayIndex:  weekday,
		WeekdayName:   WeekdayName(weekday),
		LunarStage:    LunarStageForDay(dayInMonth),
	}
}

// IgboYearGrid lays out all 13 months of the year beginning on yearStart.
func (e *Engine) IgboYearGrid(yearStart time.Time, yearLabel string) YearGrid {
	months := make([]MonthGrid, 0, MonthsPerYear)
	for m := 1; m <= MonthsPerYear; m++ {
		months = append(months, e.MonthGrid(yearStart, yearLabel, m))
	}
	return YearGrid{
		YearLabel: yearLabel,
		StartDate: Midnight(yearStart),
		Months:    months,
	}
}

// IgboYearGrid builds a year grid with the default engine.
func IgboYearGrid(yearStart time.Time, yearLabel string) YearGrid {
	return defaultEngine.IgboYearGrid(yearStart, yearLabel)
}
