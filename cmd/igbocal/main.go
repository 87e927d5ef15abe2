// Command igbocal converts dates and prints Igbo calendar grids.
//
// Usage:
//
//	igbocal convert 2024-03-04 --year-start 2024-02-20 --label 2024
//	igbocal grid --year-start 2024-02-20 --month 4
//	igbocal months
//	igbocal lunar 14
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cliOptions holds the persistent flags shared by every command.
type cliOptions struct {
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "igbocal",
		Short: "Igbo calendar conversions and grids",
		Long:  `Converts Gregorian dates to the 13-month Igbo calendar and prints month grids laid out by the four-day market week.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", os.Getenv("MONTH_CATALOG_PATH"),
		"YAML month catalog overriding the built-in month names")

	root.AddCommand(
		newConvertCmd(opts),
		newGridCmd(opts),
		newMonthsCmd(opts),
		newLunarCmd(),
	)
	return root
}

// engine builds the calendar engine for the current flags.
func (o *cliOptions) engine() (*calendar.Engine, error) {
	if o.catalogPath == "" {
		return calendar.NewEngine(), nil
	}
	catalog, err := calendar.LoadCatalogFile(o.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load month catalog: %w", err)
	}
	return calendar.NewEngine(calendar.WithCatalog(catalog)), nil
}
