package calendar

// StartWeekdayRule maps a month index (1..13) to the market-day index
// (0..3) its first day falls on.
type StartWeekdayRule func(month int) int

// RotatingStartWeekday is the default rule: month m starts on market day
// (m-1) mod 4, so Ọnwa Mbụ opens on Eke, Ọnwa Abụọ on Orie and so on.
//
// This is a placeholder pattern until the traditional start days are
// settled; engines that need another pattern pass their own rule through
// WithStartWeekdayRule.
func RotatingStartWeekday(month int) int {
	return mod(month-1, WeekLength)
}

// MonthStartWeekdayIndex returns the starting market-day index of month
// under the default rule.
func MonthStartWeekdayIndex(month int) int {
	return RotatingStartWeekday(month)
}
