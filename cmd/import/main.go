// Command import registers Igbo year starts from a YAML or JSON file.
//
// Usage:
//
//	go run ./cmd/import -file data/years.yaml -db data/igbocal.db
//
// The file lists years with their label and first day:
//
//	years:
//	  - label: "2024"
//	    start_date: 2024-02-20
//	    notes: observed in Nsukka
//
// All entries are imported in a single transaction. A label or start date
// that is already registered fails the whole import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/igbo-calendar-api/internal/database"
)

func main() {
	// Parse command line flags
	filePath := flag.String("file", "data/years.yaml", "Path to YAML or JSON year file")
	dbPath := flag.String("db", "data/igbocal.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*filePath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(filePath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse the year file
	// =========================================================================
	logger.Info("reading year file", slog.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read year file: %w", err)
	}

	importData, err := parseYearFile(filePath, data)
	if err != nil {
		return err
	}
	logger.Info("parsed year file", slog.Int("years", len(importData.Years)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import and verify
	// =========================================================================
	imported, err := db.ImportYears(ctx, importData.Years)
	if err != nil {
		return fmt.Errorf("import years: %w", err)
	}

	years, err := db.ListYears(ctx)
	if err != nil {
		return fmt.Errorf("list years: %w", err)
	}

	elapsed := time.Since(startTime)
	logger.Info("import verified",
		slog.Int("imported", imported),
		slog.Int("registered", len(years)),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Years imported:      %d\n", imported)
	fmt.Printf("Years registered:    %d\n", len(years))
	for _, y := range years {
		fmt.Printf("  %-16s %s\n", y.Label, y.StartDate)
	}
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// parseYearFile decodes data as JSON when path ends in .json and as YAML
// otherwise.
func parseYearFile(path string, data []byte) (*database.YearImport, error) {
	var importData database.YearImport

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &importData); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &importData); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	if len(importData.Years) == 0 {
		return nil, fmt.Errorf("%s lists no years", path)
	}
	return &importData, nil
}
