package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/pipeline"
	"github.com/jonathan/outreach-agent/internal/types"
)

var markSentCmd = &cobra.Command{
	Use:   "mark-sent",
	Short: "Record an outreach made for a company and role",
	Long:  "Append an outreach record so future duplicate checks know about it. Use this after sending an email outside the tool.",
	RunE:  runMarkSent,
}

var (
	markCompany string
	markTitle   string
	markStatus  string
)

func init() {
	markSentCmd.Flags().StringVarP(&markCompany, "company", "c", "", "Company name (required)")
	markSentCmd.Flags().StringVarP(&markTitle, "title", "r", "", "Job title (required)")
	markSentCmd.Flags().StringVarP(&markStatus, "status", "s", string(types.StatusMarkedSent), "Outreach status (sent, marked_sent, failed)")

	_ = markSentCmd.MarkFlagRequired("company")
	_ = markSentCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(markSentCmd)
}

func runMarkSent(cmd *cobra.Command, args []string) error {
	status := types.OutreachStatus(markStatus)
	switch status {
	case types.StatusSent, types.StatusMarkedSent, types.StatusFailed:
	default:
		return fmt.Errorf("invalid status %q; expected sent, marked_sent, or failed", markStatus)
	}

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

	runner := &pipeline.Runner{Tracker: tr}
	rec := types.JobRecord{Title: markTitle, Company: markCompany}

	entry, err := runner.MarkSent(ctx, rec, status)
	if err != nil {
		return fmt.Errorf("failed to record outreach: %w", err)
	}

	if tr.Degraded() {
		fmt.Fprintln(os.Stderr, "Warning: outreach store unavailable; this record will not persist past the session.")
	}

	fmt.Fprintf(os.Stdout, "Recorded outreach %s to %q for %q (%s)\n", entry.ID, markCompany, markTitle, entry.Status)
	return nil
}
