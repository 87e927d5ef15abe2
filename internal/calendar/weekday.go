package calendar

// WeekLength is the number of days in the Igbo market week.
const WeekLength = 4

// weekdayNames is the market week in order: Eke, Orie, Afọ, Nkwọ.
var weekdayNames = [WeekLength]string{"Eke", "Orie", "Afọ", "Nkwọ"}

// WeekdayNames returns the four market-day names, indexed 0 through 3.
// The returned slice is a copy and may be modified by the caller.
func WeekdayNames() []string {
	names := make([]string, WeekLength)
	copy(names, weekdayNames[:])
	return names
}

// WeekdayName returns the market-day name for index i.
// Any integer is accepted and wrapped into the 4-day cycle.
func WeekdayName(i int) string {
	return weekdayNames[mod(i, WeekLength)]
}
