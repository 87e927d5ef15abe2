package database

// migrationsSQL maps schema version to its DDL. Versions are contiguous
// from 1 and Migrate applies them in ascending order.
var migrationsSQL = map[int]string{
	1: migrationV1IgboYears,
	2: migrationV2YearStartIndex,
}

// migrationV1IgboYears creates the year registry.
//
// A row says "the Igbo year called <label> begins on <start_date>". The
// engine derives every month, market day and lunar stage from that date,
// so nothing else about the year is stored.
//
// start_date is TEXT in YYYY-MM-DD form, which sorts chronologically and
// lets "latest year starting on or before a date" be a plain comparison.
const migrationV1IgboYears = `
-- Migration 001: Igbo year registry

CREATE TABLE IF NOT EXISTS igbo_years (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Opaque caller-chosen label, e.g. "2024" or "Afọ 2024/25"
    label TEXT NOT NULL UNIQUE,

    -- Gregorian date of day 1 of Ọnwa Mbụ
    start_date TEXT NOT NULL UNIQUE
        CHECK (start_date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'),

    notes TEXT,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2YearStartIndex adds the index used by date lookups.
const migrationV2YearStartIndex = `
-- Migration 002: index for year-for-date lookups

CREATE INDEX IF NOT EXISTS idx_igbo_years_start_date
    ON igbo_years(start_date DESC);
`
