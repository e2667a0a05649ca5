package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/souramoo/calorie-counter-vibe/client"
	"github.com/souramoo/calorie-counter-vibe/stats"

	"github.com/spf13/cobra"
)

var (
	addDate     string
	addCalories int
	addNotes    string

	listFrom  string
	listTo    string
	listPage  int
	listLimit int

	statsPeriod string

	chartRange string
	chartFrom  string
	chartTo    string
	chartWidth int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a calorie entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		if addDate == "" {
			addDate = time.Now().Format(stats.DateLayout)
		}
		e, err := apiClient().AddEntry(cmd.Context(), s, client.NewEntry{Date: addDate, Calories: addCalories, Notes: addNotes})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %d kcal on %s\n", e.ID, e.Calories, e.Date.Format(stats.DateLayout))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List calorie entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		out, err := apiClient().ListEntries(cmd.Context(), s, client.ListOptions{
			From: listFrom, To: listTo, Page: listPage, Limit: listLimit,
		})
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tCALORIES\tNOTES")
		for _, e := range out.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", e.ID, e.Date.Format(stats.DateLayout), e.Calories, e.Notes)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		p := out.Pagination
		fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d entries total\n", p.Page, p.Pages, p.Total)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm ENTRY_ID",
	Short: "Delete a calorie entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || id == 0 {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		if err := apiClient().DeleteEntry(cmd.Context(), s, uint(id)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show calorie statistics for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := stats.ParsePeriod(statsPeriod); !ok {
			return fmt.Errorf("invalid --period %q (day, week, month or year)", statsPeriod)
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		st, err := apiClient().Stats(cmd.Context(), s, statsPeriod)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Period:          %s\n", statsPeriod)
		fmt.Fprintf(w, "Total:           %d kcal\n", st.PeriodTotal)
		fmt.Fprintf(w, "Period average:  %.0f kcal\n", st.PeriodAverage)
		fmt.Fprintf(w, "Daily average:   %.0f kcal (%d entries overall)\n", st.DailyAverage, st.TotalEntries)
		if st.HighestDay != nil {
			fmt.Fprintf(w, "Highest day:     %s  %d kcal\n", st.HighestDay.Date.Format(stats.DateLayout), st.HighestDay.Calories)
		}
		if st.LowestDay != nil {
			fmt.Fprintf(w, "Lowest day:      %s  %d kcal\n", st.LowestDay.Date.Format(stats.DateLayout), st.LowestDay.Calories)
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw daily calories as a bar chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (chartFrom == "") != (chartTo == "") {
			return fmt.Errorf("--from and --to must be used together")
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		series, err := apiClient().Series(cmd.Context(), s, client.SeriesOptions{
			Range: chartRange, From: chartFrom, To: chartTo,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s .. %s\n", series.StartDate, series.EndDate)
		return client.WriteBarChart(cmd.OutOrStdout(), series.Points, chartWidth)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Entry date YYYY-MM-DD (default today)")
	addCmd.Flags().IntVarP(&addCalories, "calories", "c", 0, "Calories (required)")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Optional notes")
	_ = addCmd.MarkFlagRequired("calories")

	listCmd.Flags().StringVar(&listFrom, "from", "", "Start date YYYY-MM-DD")
	listCmd.Flags().StringVar(&listTo, "to", "", "End date YYYY-MM-DD (inclusive)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 30, "Entries per page (max 100)")

	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", string(stats.PeriodWeek), "day, week, month or year")

	chartCmd.Flags().StringVarP(&chartRange, "range", "r", stats.RangeWeek, "week, month or lastMonth")
	chartCmd.Flags().StringVar(&chartFrom, "from", "", "Start date YYYY-MM-DD")
	chartCmd.Flags().StringVar(&chartTo, "to", "", "End date YYYY-MM-DD")
	chartCmd.Flags().IntVarP(&chartWidth, "width", "w", 40, "Width of the longest bar")

	rootCmd.AddCommand(addCmd, listCmd, rmCmd, statsCmd, chartCmd)
}
