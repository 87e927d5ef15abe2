package calendar

// LunarStage is a qualitative moon-phase label for a day of the month.
// Stages are derived from the day's position in the 28-day month, not
// from astronomical data.
type LunarStage string

const (
	NewMoon        LunarStage = "New moon"
	WaxingCrescent LunarStage = "Waxing crescent"
	FirstQuarter   LunarStage = "First quarter"
	WaxingGibbous  LunarStage = "Waxing gibbous"
	FullMoon       LunarStage = "Full moon"
	WaningGibbous  LunarStage = "Waning gibbous"
	LastQuarter    LunarStage = "Last quarter"
	WaningCrescent LunarStage = "Waning crescent"
	DarkMoon       LunarStage = "Dark / Old moon"
)

// LunarStages returns the nine stages in cycle order.
func LunarStages() []LunarStage {
	return []LunarStage{
		NewMoon,
		WaxingCrescent,
		FirstQuarter,
		WaxingGibbous,
		FullMoon,
		WaningGibbous,
		LastQuarter,
		WaningCrescent,
		DarkMoon,
	}
}

// IsValid checks if s is one of the nine stages.
func (s LunarStage) IsValid() bool {
	for _, valid := range LunarStages() {
		if s == valid {
			return true
		}
	}
	return false
}

// String returns the label.
func (s LunarStage) String() string {
	return string(s)
}

// LunarStageForDay classifies a day of the month (1..28).
// Values outside the range are clamped to the nearest end.
func LunarStageForDay(day int) LunarStage {
	switch d := clampDay(day); {
	case d <= 1:
		return NewMoon
	case d <= 6:
		return WaxingCrescent
	case d == 7:
		return FirstQuarter
	case d <= 13:
		return WaxingGibbous
	case d == 14:
		return FullMoon
	case d <= 21:
		return WaningGibbous
	case d == 22:
		return LastQuarter
	case d <= 27:
		return WaningCrescent
	default:
		return DarkMoon
	}
}

// LunarIllumination returns the lit fraction of the moon (0.0 to 1.0) for a
// day of the month. It rises linearly to 1.0 on day 14 and falls back to
// 0.0 on day 28. Values outside 1..28 are clamped.
func LunarIllumination(day int) float64 {
	d := clampDay(day)
	if d <= 14 {
		return float64(d-1) / 13
	}
	return float64(DaysPerMonth-d) / 14
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > DaysPerMonth {
		return DaysPerMonth
	}
	return day
}
