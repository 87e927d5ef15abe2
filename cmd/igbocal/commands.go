package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
)

// =============================================================================
// CONVERT
// =============================================================================

func newConvertCmd(opts *cliOptions) *cobra.Command {
	var yearStart, label string

	cmd := &cobra.Command{
		Use:   "convert <YYYY-MM-DD>",
		Short: "Convert a Gregorian date to an Igbo date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDateString(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
			}
			start, err := calendar.ParseDateString(yearStart)
			if err != nil {
				return fmt.Errorf("invalid --year-start %q: use YYYY-MM-DD", yearStart)
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			igbo, err := engine.Convert(date, start, label)
			if err != nil {
				if errors.Is(err, calendar.ErrBeforeYearStart) {
					return fmt.Errorf("%s is before the year start %s", args[0], yearStart)
				}
				return err
			}

			printIgboDate(cmd.OutOrStdout(), engine, date, start, igbo)
			return nil
		},
	}

	cmd.Flags().StringVar(&yearStart, "year-start", "", "first day of the Igbo year (YYYY-MM-DD)")
	cmd.Flags().StringVar(&label, "label", "", "label of the Igbo year")
	_ = cmd.MarkFlagRequired("year-start")
	return cmd
}

func printIgboDate(w io.Writer, engine *calendar.Engine, date, start time.Time, igbo calendar.IgboDate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Gregorian:\t%s\n", calendar.FormatDate(date))
	if igbo.YearLabel != "" {
		fmt.Fprintf(tw, "Year:\t%s (starts %s)\n", igbo.YearLabel, calendar.FormatDate(start))
	} else {
		fmt.Fprintf(tw, "Year:\tstarts %s\n", calendar.FormatDate(start))
	}
	fmt.Fprintf(tw, "Day of year:\t%d\n", igbo.DayOfYear)

	if igbo.IsFestival {
		fmt.Fprintf(tw, "Month:\tfestival days\n")
	} else {
		def := engine.Catalog().Month(*igbo.Month)
		fmt.Fprintf(tw, "Month:\t%d %s\n", *igbo.Month, calendar.MonthDisplayName(def))
		fmt.Fprintf(tw, "Day of month:\t%d\n", *igbo.DayInMonth)
	}

	fmt.Fprintf(tw, "Market day:\t%s\n", igbo.WeekdayName)
	if igbo.LunarStage != nil {
		fmt.Fprintf(tw, "Moon:\t%s\n", *igbo.LunarStage)
	}
}

// =============================================================================
// GRID
// =============================================================================

func newGridCmd(opts *cliOptions) *cobra.Command {
	var yearStart, label string
	var month int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print month grids laid out by market week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := calendar.ParseDateString(yearStart)
			if err != nil {
				return fmt.Errorf("invalid --year-start %q: use YYYY-MM-DD", yearStart)
			}
			if month < 0 || month > calendar.MonthsPerYear {
				return fmt.Errorf("--month must be between 1 and %d", calendar.MonthsPerYear)
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if month != 0 {
				printMonthGrid(w, engine.MonthGrid(start, label, month))
				return nil
			}

			grid := engine.IgboYearGrid(start, label)
			for i, mg := range grid.Months {
				if i > 0 {
					fmt.Fprintln(w)
				}
				printMonthGrid(w, mg)
			}
			fmt.Fprintf(w, "\nFestival days begin %s\n", calendar.FormatDate(calendar.FestivalStart(start)))
			return nil
		},
	}

	cmd.Flags().StringVar(&yearStart, "year-start", "", "first day of the Igbo year (YYYY-MM-DD)")
	cmd.Flags().StringVar(&label, "label", "", "label of the Igbo year")
	cmd.Flags().IntVar(&month, "month", 0, "print only this month (1-13)")
	_ = cmd.MarkFlagRequired("year-start")
	return cmd
}

// printMonthGrid writes a month as a four-column table. New moon days are
// suffixed with "n" and full moon days with "f".
func printMonthGrid(w io.Writer, mg calendar.MonthGrid) {
	meta := mg.Meta
	fmt.Fprintf(w, "%d. %s  (%s to %s)\n", meta.Index, meta.DisplayName,
		calendar.FormatDate(meta.StartDate), calendar.FormatDate(meta.EndDate))

	tw := tabwriter.NewWriter(w, 4, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(calendar.WeekdayNames(), "\t")+"\t")
	for _, row := range mg.Rows {
		cols := make([]string, len(row))
		for i, cell := range row {
			cols[i] = cellLabel(cell)
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
	}
	tw.Flush()
}

func cellLabel(cell *calendar.DayCell) string {
	if cell == nil {
		return ""
	}
	label := strconv.Itoa(cell.DayInMonth)
	switch cell.LunarStage {
	case calendar.NewMoon:
		label += "n"
	case calendar.FullMoon:
		label += "f"
	}
	return label
}

// =============================================================================
// MONTHS
// =============================================================================

func newMonthsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the thirteen months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()

			fmt.Fprintln(tw, "#\tName\tStarts on\tUsually")
			for m := 1; m <= calendar.MonthsPerYear; m++ {
				def := engine.Catalog().Month(m)
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m, calendar.MonthDisplayName(def),
					calendar.WeekdayName(engine.MonthStartWeekdayIndex(m)), def.GregHint)
			}
			return nil
		},
	}
}

// =============================================================================
// LUNAR
// =============================================================================

func newLunarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lunar <day>",
		Short: "Show the moon stage for a day of the month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q: use an integer", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.0f%% lit)\n",
				calendar.LunarStageForDay(day), calendar.LunarIllumination(day)*100)
			return nil
		},
	}
}
