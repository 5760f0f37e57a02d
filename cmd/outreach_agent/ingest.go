package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/observability"
	"github.com/jonathan/outreach-agent/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Acquire a job posting and extract a structured record",
	Long:  "Fetch a job posting from a URL (or read pasted text), extract a structured record, and check it against the outreach history.",
	RunE:  runIngest,
}

var (
	ingestURL      string
	ingestTextFile string
	ingestJSON     bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestCmd.Flags().StringVarP(&ingestTextFile, "text-file", "t", "", "Path to a file containing the posting text")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "Print the extracted record as JSON")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestURL == "" && ingestTextFile == "" {
		return fmt.Errorf("either --url or --text-file must be provided")
	}
	if ingestURL != "" && ingestTextFile != "" {
		return fmt.Errorf("--url and --text-file are mutually exclusive; provide only one")
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, cleanup, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var source types.JobSource
	if ingestURL != "" {
		source = types.URLSource(ingestURL)
	} else {
		data, err := os.ReadFile(ingestTextFile)
		if err != nil {
			return fmt.Errorf("failed to read posting text: %w", err)
		}
		source = types.ManualSource(string(data))
	}

	result, err := runner.Run(ctx, source)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if result.NeedsManualInput {
		return fmt.Errorf("could not fetch %s; re-run with --text-file and the pasted posting", ingestURL)
	}

	if ingestJSON {
		encoded, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(encoded))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJobRecord(&result.Record)
	if cfg.Verbose {
		printer.PrintAttempts(result.Attempts)
	}
	printer.PrintVerdict(&result.Verdict)

	return nil
}
