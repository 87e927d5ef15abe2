package database

import (
	"fmt"
	"time"
)

// dateLayout is how start dates are stored.
const dateLayout = "2006-01-02"

// IgboYear is one entry of the year registry.
type IgboYear struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD
	Notes     *string   `json:"notes"`      // nullable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Start parses StartDate as midnight UTC.
func (y IgboYear) Start() (time.Time, error) {
	t, err := time.Parse(dateLayout, y.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start date %q: %w", y.StartDate, err)
	}
	return t, nil
}

// YearImport is the file format read by cmd/import.
type YearImport struct {
	Years []YearImportEntry `json:"years" yaml:"years"`
}

// YearImportEntry is one year in an import file.
type YearImportEntry struct {
	Label     string `json:"label" yaml:"label"`
	StartDate string `json:"start_date" yaml:"start_date"`
	Notes     string `json:"notes,omitempty" yaml:"notes"`
}
