package calendar

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Calendar shape constants.
const (
	// MonthsPerYear is the number of Ọnwa in an Igbo year.
	MonthsPerYear = 13

	// DaysPerMonth is the length of every Ọnwa (seven market weeks).
	DaysPerMonth = 28

	// DaysPerYear is the length of the month-structured part of a year.
	// Days after this belong to the festival period.
	DaysPerYear = MonthsPerYear * DaysPerMonth
)

// monthPrefix is stripped from alternate names when building display names.
const monthPrefix = "Ọnwa"

// MonthDefinition is the static metadata of one Igbo month.
type MonthDefinition struct {
	Index       int    `json:"index" yaml:"index"`
	Name        string `json:"name" yaml:"name"`
	AltName     string `json:"alt_name,omitempty" yaml:"alt_name"`
	GregHint    string `json:"greg_hint" yaml:"greg_hint"`
	Description string `json:"description" yaml:"description"`
}

// defaultMonths is the canonical 13-month catalog.
var defaultMonths = []MonthDefinition{
	{
		Index:       1,
		Name:        "Ọnwa Mbụ",
		GregHint:    "February",
		Description: "First month. The year opens and farmland is cleared for planting.",
	},
	{
		Index:       2,
		Name:        "Ọnwa Abụọ",
		GregHint:    "March",
		Description: "Second month. Bush burning and preparation of yam mounds.",
	},
	{
		Index:       3,
		Name:        "Ọnwa Ife Eke",
		GregHint:    "April",
		Description: "Third month. Yam seedlings are planted.",
	},
	{
		Index:       4,
		Name:        "Ọnwa Anọ",
		GregHint:    "May",
		Description: "Fourth month. Planting of cocoyam and other crops.",
	},
	{
		Index:       5,
		Name:        "Ọnwa Agwụ",
		GregHint:    "June",
		Description: "Fifth month. Season of the Agwụ priesthood and weeding.",
	},
	{
		Index:       6,
		Name:        "Ọnwa Ifejiọkụ",
		GregHint:    "July",
		Description: "Sixth month. Rites for Ifejiọkụ, the yam deity.",
	},
	{
		Index:       7,
		Name:        "Ọnwa Alọm Chi",
		GregHint:    "August",
		Description: "Seventh month. Offerings to the personal chi; early harvest.",
	},
	{
		Index:       8,
		Name:        "Ọnwa Ilo Mmụọ",
		GregHint:    "September",
		Description: "Eighth month. Ancestral spirits are honoured.",
	},
	{
		Index:       9,
		Name:        "Ọnwa Ana",
		AltName:     "Ọnwa Ala",
		GregHint:    "October",
		Description: "Ninth month. Month of Ala, the earth deity.",
	},
	{
		Index:       10,
		Name:        "Ọnwa Okike",
		GregHint:    "November",
		Description: "Tenth month. Creation rites and the main yam harvest.",
	},
	{
		Index:       11,
		Name:        "Ọnwa Ajana",
		AltName:     "Ọnwa Ajala",
		GregHint:    "December",
		Description: "Eleventh month. Thanksgiving to Ala for the harvest.",
	},
	{
		Index:       12,
		Name:        "Ọnwa Ede Ajana",
		AltName:     "Ọnwa Ede Ajala",
		GregHint:    "January",
		Description: "Twelfth month. Cocoyam harvest and dry-season work.",
	},
	{
		Index:       13,
		Name:        "Ọnwa Ụzọ Alụsị",
		GregHint:    "January–February",
		Description: "Thirteenth month. Rites that close the year before the festival days.",
	},
}

// Catalog is a total mapping from month index to MonthDefinition.
//
// Lookups never fail: a month missing from the catalog is synthesized as
// a "Month {m}" placeholder.
type Catalog struct {
	months map[int]MonthDefinition
}

// defaultCatalog is built once and never mutated.
var defaultCatalog = NewCatalog(defaultMonths)

// NewCatalog builds a catalog from defs. Entries with an index outside
// 1..13 are ignored; a later entry replaces an earlier one with the same
// index.
func NewCatalog(defs []MonthDefinition) *Catalog {
	c := &Catalog{months: make(map[int]MonthDefinition, len(defs))}
	for _, def := range defs {
		if def.Index < 1 || def.Index > MonthsPerYear {
			continue
		}
		c.months[def.Index] = def
	}
	return c
}

// DefaultCatalog returns the canonical 13-month catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Month returns the definition for month m, or a placeholder when the
// catalog has no entry for it.
func (c *Catalog) Month(m int) MonthDefinition {
	if c != nil {
		if def, ok := c.months[m]; ok {
			return def
		}
	}
	return placeholderMonth(m)
}

// Has reports whether month m is defined in the catalog.
func (c *Catalog) Has(m int) bool {
	if c == nil {
		return false
	}
	_, ok := c.months[m]
	return ok
}

// Len returns the number of months actually defined.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.months)
}

// Definitions returns a copy of the defined entries keyed by index.
func (c *Catalog) Definitions() map[int]MonthDefinition {
	out := make(map[int]MonthDefinition, c.Len())
	if c == nil {
		return out
	}
	for k, v := range c.months {
		out[k] = v
	}
	return out
}

// Ordered returns all 13 months in order, filling gaps with placeholders.
func (c *Catalog) Ordered() []MonthDefinition {
	out := make([]MonthDefinition, 0, MonthsPerYear)
	for m := 1; m <= MonthsPerYear; m++ {
		out = append(out, c.Month(m))
	}
	return out
}

// Indexes returns the defined month indexes in ascending order.
func (c *Catalog) Indexes() []int {
	idx := make([]int, 0, c.Len())
	for k := range c.Definitions() {
		idx = append(idx, k)
	}
	sort.Ints(idx)
	return idx
}

func placeholderMonth(m int) MonthDefinition {
	return MonthDefinition{
		Index: m,
		Name:  fmt.Sprintf("Month %d", m),
	}
}

// MonthDefinitions returns the canonical catalog keyed by month index 1..13.
func MonthDefinitions() map[int]MonthDefinition {
	return defaultCatalog.Definitions()
}

// MonthDisplayName returns the label shown for a month.
//
// Without an alternate name this is just the name. Otherwise the leading
// "Ọnwa " is removed from the alternate name and the two are joined with a
// slash: ("Ọnwa Ana", "Ọnwa Ala") gives "Ọnwa Ana/Ala".
func MonthDisplayName(def MonthDefinition) string {
	name := strings.TrimSpace(norm.NFC.String(def.Name))
	alt := strings.TrimSpace(trimMonthPrefix(strings.TrimSpace(norm.NFC.String(def.AltName))))
	if alt == "" {
		return name
	}
	return name + "/" + alt
}

// trimMonthPrefix removes a case-insensitive "Ọnwa" word from the start
// of s, which must already be NFC-normalized. The prefix only counts when
// followed by whitespace or the end of s.
func trimMonthPrefix(s string) string {
	n := utf8.RuneCountInString(monthPrefix)
	runes := []rune(s)
	if len(runes) < n {
		return s
	}
	head := string(runes[:n])
	if !strings.EqualFold(head, monthPrefix) {
		return s
	}
	rest := runes[n:]
	if len(rest) > 0 && !unicode.IsSpace(rest[0]) {
		// "Ọnwaala" is a different word, not a prefixed name.
		return s
	}
	return string(rest)
}
