package calendar

import (
	"strings"
	"testing"
)

func TestWeekdayNames(t *testing.T) {
	want := []string{"Eke", "Orie", "Afọ", "Nkwọ"}
	got := WeekdayNames()
	if len(got) != len(want) {
		t.Fatalf("len(WeekdayNames()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WeekdayNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Mutating the copy must not leak into the table
	got[0] = "changed"
	if WeekdayNames()[0] != "Eke" {
		t.Error("WeekdayNames() returned the shared table")
	}
}

func TestWeekdayName_Wraps(t *testing.T) {
	tests := map[int]string{0: "Eke", 3: "Nkwọ", 4: "Eke", 7: "Nkwọ", -1: "Nkwọ"}
	for i, want := range tests {
		if got := WeekdayName(i); got != want {
			t.Errorf("WeekdayName(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestMonthDefinitions(t *testing.T) {
	defs := MonthDefinitions()
	if len(defs) != MonthsPerYear {
		t.Fatalf("len(MonthDefinitions()) = %d, want %d", len(defs), MonthsPerYear)
	}

	for m := 1; m <= MonthsPerYear; m++ {
		def, ok := defs[m]
		if !ok {
			t.Errorf("month %d missing", m)
			continue
		}
		if def.Index != m {
			t.Errorf("defs[%d].Index = %d", m, def.Index)
		}
		if !strings.HasPrefix(def.Name, "Ọnwa ") {
			t.Errorf("defs[%d].Name = %q, want Ọnwa prefix", m, def.Name)
		}
		if def.GregHint == "" {
			t.Errorf("defs[%d].GregHint is empty", m)
		}
	}

	if defs[1].Name != "Ọnwa Mbụ" {
		t.Errorf("defs[1].Name = %q, want %q", defs[1].Name, "Ọnwa Mbụ")
	}
	if defs[9].AltName != "Ọnwa Ala" {
		t.Errorf("defs[9].AltName = %q, want %q", defs[9].AltName, "Ọnwa Ala")
	}

	// The returned map is a copy
	delete(defs, 1)
	if _, ok := MonthDefinitions()[1]; !ok {
		t.Error("MonthDefinitions() returned the shared catalog")
	}
}

func TestMonthDisplayName(t *testing.T) {
	tests := []struct {
		name string
		def  MonthDefinition
		want string
	}{
		{
			name: "no alternate name",
			def:  MonthDefinition{Name: "Ọnwa Mbụ"},
			want: "Ọnwa Mbụ",
		},
		{
			name: "alternate name with prefix",
			def:  MonthDefinition{Name: "Ọnwa Ajana", AltName: "Ọnwa Ajala"},
			want: "Ọnwa Ajana/Ajala",
		},
		{
			name: "ana and ala",
			def:  MonthDefinition{Name: "Ọnwa Ana", AltName: "Ọnwa Ala"},
			want: "Ọnwa Ana/Ala",
		},
		{
			name: "prefix with extra whitespace",
			def:  MonthDefinition{Name: "Ọnwa Ana", AltName: "  Ọnwa   Ala  "},
			want: "Ọnwa Ana/Ala",
		},
		{
			name: "prefix in other case",
			def:  MonthDefinition{Name: "Ọnwa Ana", AltName: "ọnwa Ala"},
			want: "Ọnwa Ana/Ala",
		},
		{
			name: "decomposed prefix",
			def:  MonthDefinition{Name: "Ọnwa Ana", AltName: "O\u0323nwa Ala"},
			want: "Ọnwa Ana/Ala",
		},
		{
			name: "alternate without prefix",
			def:  MonthDefinition{Name: "Ọnwa Ede Ajana", AltName: "Ede Ajala"},
			want: "Ọnwa Ede Ajana/Ede Ajala",
		},
		{
			name: "prefix glued to word is kept",
			def:  MonthDefinition{Name: "Ọnwa Ana", AltName: "Ọnwaala"},
			want: "Ọnwa Ana/Ọnwaala",
		},
		{
			name: "name normalized without alternate",
			def:  MonthDefinition{Name: "  O\u0323nwa Mbu\u0323 "},
			want: "Ọnwa Mbụ",
		},
		{
			name: "name normalized with alternate",
			def:  MonthDefinition{Name: " O\u0323nwa Ana ", AltName: "Ọnwa Ala"},
			want: "Ọnwa Ana/Ala",
		},
		{
			name: "whitespace only alternate",
			def:  MonthDefinition{Name: "Ọnwa Okike", AltName: "   "},
			want: "Ọnwa Okike",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthDisplayName(tt.def); got != tt.want {
				t.Errorf("MonthDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalog_Fallback(t *testing.T) {
	c := NewCatalog([]MonthDefinition{
		{Index: 1, Name: "Ọnwa Mbụ"},
		{Index: 14, Name: "ignored"},
		{Index: 0, Name: "ignored"},
	})

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := c.Month(1).Name; got != "Ọnwa Mbụ" {
		t.Errorf("Month(1).Name = %q", got)
	}
	if got := c.Month(5); got.Name != "Month 5" || got.Index != 5 {
		t.Errorf("Month(5) = %+v, want placeholder", got)
	}
	if c.Has(5) {
		t.Error("Has(5) = true, want false")
	}
	if got := len(c.Ordered()); got != MonthsPerYear {
		t.Errorf("len(Ordered()) = %d, want %d", got, MonthsPerYear)
	}

	var nilCatalog *Catalog
	if got := nilCatalog.Month(3).Name; got != "Month 3" {
		t.Errorf("nil catalog Month(3).Name = %q, want placeholder", got)
	}
}

func TestParseCatalogYAML(t *testing.T) {
	t.Run("partial catalog", func(t *testing.T) {
		data := []byte(`
months:
  - index: 1
    name: Ọnwa Mbụ
    greg_hint: February
  - index: 9
    name: Ọnwa Ana
    alt_name: Ọnwa Ala
`)
		c, err := ParseCatalogYAML(data)
		if err != nil {
			t.Fatalf("ParseCatalogYAML() error = %v", err)
		}
		if c.Len() != 2 {
			t.Errorf("Len() = %d, want 2", c.Len())
		}
		if got := MonthDisplayName(c.Month(9)); got != "Ọnwa Ana/Ala" {
			t.Errorf("display name = %q", got)
		}
		if got := c.Indexes(); len(got) != 2 || got[0] != 1 || got[1] != 9 {
			t.Errorf("Indexes() = %v, want [1 9]", got)
		}
	})

	invalid := map[string]string{
		"bad yaml":        "months: [",
		"index too large": "months:\n  - index: 14\n    name: x\n",
		"missing name":    "months:\n  - index: 2\n",
		"duplicate index": "months:\n  - index: 2\n    name: a\n  - index: 2\n    name: b\n",
	}
	for name, data := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalogYAML([]byte(data)); err == nil {
				t.Error("ParseCatalogYAML() error = nil, want error")
			}
		})
	}
}

func TestMonthStartWeekdayIndex(t *testing.T) {
	for m := 1; m <= MonthsPerYear; m++ {
		got := MonthStartWeekdayIndex(m)
		if got != (m-1)%4 {
			t.Errorf("MonthStartWeekdayIndex(%d) = %d, want %d", m, got, (m-1)%4)
		}
		if got < 0 || got > 3 {
			t.Errorf("MonthStartWeekdayIndex(%d) = %d, outside [0,3]", m, got)
		}
	}

	if got := MonthStartWeekdayIndex(0); got != 3 {
		t.Errorf("MonthStartWeekdayIndex(0) = %d, want 3", got)
	}
}

func TestEngine_CustomStartRule(t *testing.T) {
	e := NewEngine(WithStartWeekdayRule(func(int) int { return 6 }))
	for m := 1; m <= MonthsPerYear; m++ {
		if got := e.MonthStartWeekdayIndex(m); got != 2 {
			t.Errorf("MonthStartWeekdayIndex(%d) = %d, want 2", m, got)
		}
	}

	// nil options keep the defaults
	e = NewEngine(WithStartWeekdayRule(nil), WithCatalog(nil))
	if got := e.MonthStartWeekdayIndex(2); got != 1 {
		t.Errorf("MonthStartWeekdayIndex(2) = %d, want 1", got)
	}
	if e.Catalog() != DefaultCatalog() {
		t.Error("WithCatalog(nil) replaced the default catalog")
	}
}
