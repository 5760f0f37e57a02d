package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent outreach records",
	RunE:  runHistory,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the outreach history",
	RunE:  runStats,
}

var historyDays int

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 30, "How many days back to show")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tr, err := newTracker(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	records, err := tr.Recent(ctx, historyDays)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintRecent(records, historyDays)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tr, err := newTracker(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	stats, err := tr.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintStatistics(stats)
	return nil
}
