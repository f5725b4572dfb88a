package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/agentic-research/a11yname/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyDB    string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "", "SQLite database written by check --db")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or the diagnostics of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDB == "" {
			return errors.New("--db is required")
		}
		r, err := store.OpenReader(historyDB)
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		if len(args) == 1 {
			rows, err := r.Diagnostics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, d := range rows {
				fmt.Fprintf(tw, "%s:%d:%d:\t%s\t(%s)\n", d.File, d.Line, d.Column, d.Message, d.Rule)
			}
			return tw.Flush()
		}

		runs, err := r.Runs(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tFILES\tPROBLEMS")
		for _, run := range runs {
			duration := "-"
			if !run.FinishedAt.IsZero() {
				duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", run.ID, run.StartedAt.Format(time.RFC3339), duration, run.Files, run.Problems)
		}
		return tw.Flush()
	},
}
