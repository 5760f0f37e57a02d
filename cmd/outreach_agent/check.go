package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/observability"
	"github.com/jonathan/outreach-agent/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a company and role against the outreach history",
	RunE:  runCheck,
}

var (
	checkCompany string
	checkTitle   string
)

func init() {
	checkCmd.Flags().StringVarP(&checkCompany, "company", "c", "", "Company name (required)")
	checkCmd.Flags().StringVarP(&checkTitle, "title", "r", "", "Job title (required)")

	_ = checkCmd.MarkFlagRequired("company")
	_ = checkCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	rec := types.JobRecord{Title: checkTitle, Company: checkCompany}
	verdict, err := tr.Check(ctx, rec, time.Now())
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintVerdict(&verdict)
	return nil
}
