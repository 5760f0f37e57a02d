package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/outreach-agent/internal/config"
	"github.com/jonathan/outreach-agent/internal/extract"
	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/pipeline"
	"github.com/jonathan/outreach-agent/internal/scrape"
	"github.com/jonathan/outreach-agent/internal/tracker"
)

// loadAppConfig loads the config file (if any), applies defaults and
// validates the result.
func loadAppConfig() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if verbose {
		cfg.Verbose = true
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newTracker opens the record store named by the config: Postgres when a
// database URL is set, the JSON-lines file otherwise.
func newTracker(ctx context.Context, cfg config.Config) (*tracker.Tracker, error) {
	var store tracker.Store
	var err error

	if cfg.DatabaseURL != "" {
		store, err = tracker.NewPGStore(ctx, cfg.DatabaseURL)
	} else {
		store, err = tracker.NewFileStore(cfg.StoragePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open outreach store: %w", err)
	}

	cooldown := time.Duration(cfg.CooldownDays) * 24 * time.Hour
	return tracker.NewTracker(store, cooldown, cfg.Verbose), nil
}

// newRunner assembles the pipeline from config. The returned cleanup closes
// the store and the LLM client.
func newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, func(), error) {
	tr, err := newTracker(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	limiter := fetch.NewHostLimiter(cfg.RatePerHost, 1)
	fetcher := fetch.NewFetcher(limiter, &fetch.Options{
		Timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	})

	runner := &pipeline.Runner{
		Fetcher:    fetcher,
		Chain:      scrape.NewChain(),
		Tracker:    tr,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	}

	var closeClient func()
	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			_ = tr.Close()
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		adapter, err := extract.NewAdapter(client)
		if err != nil {
			_ = client.Close()
			_ = tr.Close()
			return nil, nil, err
		}
		runner.Structurer = adapter
		closeClient = func() { _ = client.Close() }
	} else if cfg.Verbose {
		fmt.Fprintln(os.Stderr, "No API key configured; structured extraction disabled, scraping only.")
	}

	cleanup := func() {
		if closeClient != nil {
			closeClient()
		}
		_ = tr.Close()
	}
	return runner, cleanup, nil
}
