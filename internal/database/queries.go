package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}

	return nil
}

// nullString converts an optional string to a NULL-able column value.
func nullString(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// normalizeStartDate validates a YYYY-MM-DD string and returns it in
// canonical form.
func normalizeStartDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("start date must be YYYY-MM-DD: %w", err)
	}
	return t.Format(dateLayout), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const yearColumns = `id, label, start_date, notes, created_at, updated_at`

func scanYear(s rowScanner) (*IgboYear, error) {
	var year IgboYear
	var notes, createdAt, updatedAt sql.NullString

	if err := s.Scan(&year.ID, &year.Label, &year.StartDate, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if notes.Valid {
		year.Notes = &notes.String
	}
	if t := parseTimestamp(createdAt); t != nil {
		year.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAt); t != nil {
		year.UpdatedAt = *t
	}

	return &year, nil
}

// CreateYear registers a new Igbo year.
// Returns ErrDuplicate if the label or start date is already registered.
func (db *DB) CreateYear(ctx context.Context, label, startDate string, notes *string) (*IgboYear, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("label is required")
	}
	start, err := normalizeStartDate(startDate)
	if err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO igbo_years (label, start_date, notes) VALUES (?, ?, ?)`,
		label, start, nullString(notes),
	)
	if err != nil {
		return nil, fmt.Errorf("insert year: %w", translateError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get year id: %w", err)
	}

	return db.getYearByID(ctx, id)
}

// UpsertYear creates the year or moves an existing label to a new start
// date. Used to seed the configured default year at startup.
func (db *DB) UpsertYear(ctx context.Context, label, startDate string, notes *string) (*IgboYear, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("label is required")
	}
	start, err := normalizeStartDate(startDate)
	if err != nil {
		return nil, err
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO igbo_years (label, start_date, notes) VALUES (?, ?, ?)
			ON CONFLICT(label) DO UPDATE SET
				start_date = excluded.start_date,
				notes = COALESCE(excluded.notes, igbo_years.notes),
				updated_at = datetime('now')
		`, label, start, nullString(notes))
		return translateError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert year: %w", err)
	}

	return db.GetYear(ctx, label)
}

// GetYear retrieves a year by label.
// Returns ErrNotFound if no year has that label.
func (db *DB) GetYear(ctx context.Context, label string) (*IgboYear, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+yearColumns+` FROM igbo_years WHERE label = ?`, label)

	year, err := scanYear(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year by label: %w", err)
	}
	return year, nil
}

func (db *DB) getYearByID(ctx context.Context, id int64) (*IgboYear, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+yearColumns+` FROM igbo_years WHERE id = ?`, id)

	year, err := scanYear(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year by id: %w", err)
	}
	return year, nil
}

// ListYears returns all registered years ordered by start date.
// Returns an empty slice when the registry is empty.
func (db *DB) ListYears(ctx context.Context) ([]IgboYear, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+yearColumns+` FROM igbo_years ORDER BY start_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	years := []IgboYear{}
	for rows.Next() {
		year, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scan year row: %w", err)
		}
		years = append(years, *year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}

	return years, nil
}

// FindYearForDate returns the year with the latest start date on or
// before date. Returns ErrNotFound when every registered year starts
// after date.
func (db *DB) FindYearForDate(ctx context.Context, date time.Time) (*IgboYear, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+yearColumns+`
		FROM igbo_years
		WHERE start_date <= ?
		ORDER BY start_date DESC
		LIMIT 1
	`, date.Format(dateLayout))

	year, err := scanYear(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year for date: %w", err)
	}
	return year, nil
}

// DeleteYear removes a year by label.
// Returns ErrNotFound if no year has that label.
func (db *DB) DeleteYear(ctx context.Context, label string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM igbo_years WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete year: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportYears registers every entry in a single transaction. Nothing is
// written if any entry fails. Returns the number of years imported.
func (db *DB) ImportYears(ctx context.Context, entries []YearImportEntry) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		for i, entry := range entries {
			label := strings.TrimSpace(entry.Label)
			if label == "" {
				return fmt.Errorf("entry %d: label is required", i)
			}
			start, err := normalizeStartDate(entry.StartDate)
			if err != nil {
				return fmt.Errorf("entry %d (%s): %w", i, label, err)
			}
			notes := entry.Notes

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO igbo_years (label, start_date, notes) VALUES (?, ?, ?)`,
				label, start, nullString(&notes),
			); err != nil {
				return fmt.Errorf("entry %d (%s): %w", i, label, translateError(err))
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
