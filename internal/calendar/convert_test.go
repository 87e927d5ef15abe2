package calendar

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testYearStart = date(2024, time.February, 20)

func TestIgboFromGregorian_Scenario(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		dayOfYear   int
		month       int
		dayInMonth  int
		weekday     int
		weekdayName string
		stage       LunarStage
	}{
		{
			name:        "year start",
			date:        date(2024, time.February, 20),
			dayOfYear:   1,
			month:       1,
			dayInMonth:  1,
			weekday:     0,
			weekdayName: "Eke",
			stage:       NewMoon,
		},
		{
			name:        "last day of first month",
			date:        date(2024, time.March, 18),
			dayOfYear:   28,
			month:       1,
			dayInMonth:  28,
			weekday:     3,
			weekdayName: "Nkwọ",
			stage:       DarkMoon,
		},
		{
			name:        "first day of second month",
			date:        date(2024, time.March, 19),
			dayOfYear:   29,
			month:       2,
			dayInMonth:  1,
			weekday:     1,
			weekdayName: "Orie",
			stage:       NewMoon,
		},
		{
			name:        "full moon of first month",
			date:        date(2024, time.March, 4),
			dayOfYear:   14,
			month:       1,
			dayInMonth:  14,
			weekday:     1,
			weekdayName: "Orie",
			stage:       FullMoon,
		},
		{
			name:        "last month-day of the year",
			date:        date(2025, time.February, 17),
			dayOfYear:   364,
			month:       13,
			dayInMonth:  28,
			weekday:     rotatingWeekday(13, 28),
			weekdayName: WeekdayName(rotatingWeekday(13, 28)),
			stage:       DarkMoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IgboFromGregorian(tt.date, testYearStart, "2024")
			if !ok {
				t.Fatalf("IgboFromGregorian(%s) ok = false", FormatDate(tt.date))
			}
			if got.YearLabel != "2024" {
				t.Errorf("YearLabel = %q, want %q", got.YearLabel, "2024")
			}
			if got.DayOfYear != tt.dayOfYear {
				t.Errorf("DayOfYear = %d, want %d", got.DayOfYear, tt.dayOfYear)
			}
			if got.Month == nil || *got.Month != tt.month {
				t.Errorf("Month = %v, want %d", got.Month, tt.month)
			}
			if got.DayInMonth == nil || *got.DayInMonth != tt.dayInMonth {
				t.Errorf("DayInMonth = %v, want %d", got.DayInMonth, tt.dayInMonth)
			}
			if got.WeekdayIndex != tt.weekday {
				t.Errorf("WeekdayIndex = %d, want %d", got.WeekdayIndex, tt.weekday)
			}
			if got.WeekdayName != tt.weekdayName {
				t.Errorf("WeekdayName = %q, want %q", got.WeekdayName, tt.weekdayName)
			}
			if got.LunarStage == nil || *got.LunarStage != tt.stage {
				t.Errorf("LunarStage = %v, want %q", got.LunarStage, tt.stage)
			}
			if got.IsFestival {
				t.Error("IsFestival = true, want false")
			}
		})
	}
}

// rotatingWeekday is the expected market day under the rotating rule.
func rotatingWeekday(month, day int) int {
	return ((month-1)%4 + day - 1) % 4
}

func TestIgboFromGregorian_RoundTrip(t *testing.T) {
	for k := 0; k < DaysPerYear; k++ {
		d := testYearStart.AddDate(0, 0, k)
		got, ok := IgboFromGregorian(d, testYearStart, "")
		if !ok {
			t.Fatalf("day %d: ok = false", k)
		}
		if got.DayOfYear != k+1 {
			t.Errorf("day %d: DayOfYear = %d, want %d", k, got.DayOfYear, k+1)
		}
		if got.Month == nil || *got.Month != k/28+1 {
			t.Errorf("day %d: Month = %v, want %d", k, got.Month, k/28+1)
		}
		if got.DayInMonth == nil || *got.DayInMonth != k%28+1 {
			t.Errorf("day %d: DayInMonth = %v, want %d", k, got.DayInMonth, k%28+1)
		}
		if got.IsFestival {
			t.Errorf("day %d: IsFestival = true", k)
		}
		if got.WeekdayIndex < 0 || got.WeekdayIndex > 3 {
			t.Errorf("day %d: WeekdayIndex = %d", k, got.WeekdayIndex)
		}

		back, err := GregorianFromIgbo(testYearStart, *got.Month, *got.DayInMonth)
		if err != nil {
			t.Fatalf("day %d: GregorianFromIgbo() error = %v", k, err)
		}
		if !back.Equal(d) {
			t.Errorf("day %d: GregorianFromIgbo() = %s, want %s", k, FormatDate(back), FormatDate(d))
		}
	}
}

func TestIgboFromGregorian_Festival(t *testing.T) {
	got, ok := IgboFromGregorian(testYearStart.AddDate(0, 0, 364), testYearStart, "2024")
	if !ok {
		t.Fatal("ok = false for festival day")
	}
	if !got.IsFestival {
		t.Error("IsFestival = false, want true")
	}
	if got.DayOfYear != 365 {
		t.Errorf("DayOfYear = %d, want 365", got.DayOfYear)
	}
	if got.WeekdayIndex != 0 || got.WeekdayName != "Eke" {
		t.Errorf("weekday = %d %q, want 0 Eke", got.WeekdayIndex, got.WeekdayName)
	}
	if got.Month != nil || got.DayInMonth != nil || got.LunarStage != nil {
		t.Errorf("month fields = %v %v %v, want nil", got.Month, got.DayInMonth, got.LunarStage)
	}

	// The tail continues linearly
	far, ok := IgboFromGregorian(testYearStart.AddDate(0, 0, 1000), testYearStart, "2024")
	if !ok || !far.IsFestival || far.DayOfYear != 1001 || far.WeekdayIndex != 1000%4 {
		t.Errorf("far festival = %+v, ok %v", far, ok)
	}
}

func TestIgboFromGregorian_BeforeYearStart(t *testing.T) {
	if _, ok := IgboFromGregorian(testYearStart.AddDate(0, 0, -1), testYearStart, ""); ok {
		t.Error("ok = true for date before year start")
	}

	_, err := Convert(testYearStart.AddDate(0, 0, -1), testYearStart, "")
	if !errors.Is(err, ErrBeforeYearStart) {
		t.Errorf("Convert() error = %v, want ErrBeforeYearStart", err)
	}
}

func TestIgboFromGregorian_IgnoresTimeOfDay(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	late := time.Date(2024, time.February, 20, 23, 59, 0, 0, lagos)
	early := time.Date(2024, time.February, 20, 0, 1, 0, 0, lagos)

	for _, d := range []time.Time{late, early} {
		got, ok := IgboFromGregorian(d, testYearStart, "")
		if !ok || got.DayOfYear != 1 {
			t.Errorf("IgboFromGregorian(%v) = %+v, ok %v; want day 1", d, got, ok)
		}
	}

	// A year start with a time component still counts from its calendar day
	start := time.Date(2024, time.February, 20, 18, 0, 0, 0, time.UTC)
	got, ok := IgboFromGregorian(date(2024, time.February, 21), start, "")
	if !ok || got.DayOfYear != 2 {
		t.Errorf("with timed year start = %+v, ok %v; want day 2", got, ok)
	}
}

func TestGregorianFromIgbo_Invalid(t *testing.T) {
	tests := []struct{ month, day int }{
		{0, 1}, {14, 1}, {1, 0}, {1, 29},
	}
	for _, tt := range tests {
		if _, err := GregorianFromIgbo(testYearStart, tt.month, tt.day); err == nil {
			t.Errorf("GregorianFromIgbo(%d, %d) error = nil", tt.month, tt.day)
		}
	}
}

func TestFestivalStart(t *testing.T) {
	want := date(2025, time.February, 18)
	if got := FestivalStart(testYearStart); !got.Equal(want) {
		t.Errorf("FestivalStart() = %s, want %s", FormatDate(got), FormatDate(want))
	}
}

func TestDaysBetween(t *testing.T) {
	// Leap day sits inside the first Igbo month of 2024
	if got := DaysBetween(date(2024, time.February, 28), date(2024, time.March, 1)); got != 2 {
		t.Errorf("DaysBetween() across leap day = %d, want 2", got)
	}
	if got := DaysBetween(date(2024, time.March, 1), date(2024, time.February, 28)); got != -2 {
		t.Errorf("DaysBetween() backwards = %d, want -2", got)
	}
}

func TestIgboFromGregorian_Centuries(t *testing.T) {
	start := date(2024, time.February, 20)

	// 2100, 2200 and 2300 are not leap years: 72 leap days in the first 300
	// years, 91 in 376
	tests := []struct {
		name        string
		date        time.Time
		wantDiff    int
		wantWeekday int
	}{
		{"300 years", date(2324, time.February, 20), 300*365 + 72, (300*365 + 72) % 4},
		{"376 years", date(2400, time.February, 20), 376*365 + 91, (376*365 + 91) % 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(start, tt.date); got != tt.wantDiff {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.wantDiff)
			}

			got, ok := IgboFromGregorian(tt.date, start, "2024")
			if !ok {
				t.Fatal("IgboFromGregorian() ok = false, want true")
			}
			if got.DayOfYear != tt.wantDiff+1 {
				t.Errorf("DayOfYear = %d, want %d", got.DayOfYear, tt.wantDiff+1)
			}
			if !got.IsFestival {
				t.Error("IsFestival = false, want true")
			}
			if got.WeekdayIndex != tt.wantWeekday {
				t.Errorf("WeekdayIndex = %d, want %d", got.WeekdayIndex, tt.wantWeekday)
			}
		})
	}
}
