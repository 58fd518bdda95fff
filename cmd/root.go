// Package cmd defines and implements the CLI commands for the nominee
// importer executable.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
	"github.com/gavital/oscar-betting-app-sub000/internal/config"
	"github.com/gavital/oscar-betting-app-sub000/internal/engine"
	"github.com/gavital/oscar-betting-app-sub000/internal/extract"
	"github.com/gavital/oscar-betting-app-sub000/internal/fetch"
	"github.com/gavital/oscar-betting-app-sub000/internal/logging"
	"github.com/gavital/oscar-betting-app-sub000/internal/metrics"
	"github.com/gavital/oscar-betting-app-sub000/internal/resolve"
	"github.com/gavital/oscar-betting-app-sub000/internal/store"
)

var cfgFile string

// app bundles every service a command needs. Built once per invocation in
// the root command's PersistentPreRunE.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Postgres
	engine   *engine.Engine
	registry *prometheus.Registry
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

type appKeyType struct{}

var appKey appKeyType

// buildApp wires the full service graph from configuration. It's a
// variable so tests can swap in a stub.
var buildApp = func(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.New(ctx, store.Config{
		DSN:             cfg.DB.DSN,
		MaxConns:        cfg.DB.MaxConns,
		MinConns:        cfg.DB.MinConns,
		MaxConnLifetime: cfg.ConnLifetime(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}

	synonyms, err := resolve.DefaultSynonyms()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load synonyms: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	fetcher := fetch.New(fetch.Config{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		RetryBackoff: cfg.RetryBackoff(),
	}, logger)

	eng := engine.New(
		st,
		fetcher,
		extract.NewHTMLExtractor(extract.DefaultPatterns(), logger),
		extract.NewFeedExtractor(logger, cfg.Triggers...),
		synonyms,
		metrics.New(registry),
		logger,
		engine.Config{DefaultMaxNominees: cfg.Resolver.DefaultMaxNominees},
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		engine:   eng,
		registry: registry,
	}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nominee-importer",
		Short: "Imports award nominees from curated web sources.",
		Long: `nominee-importer fetches curated articles and feeds, extracts
nominee candidates heuristically, resolves their categories against the
catalog, and inserts anything not already stored.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app); ok && a != nil {
				a.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func appFrom(ctx context.Context) (*app, error) {
	a, ok := ctx.Value(appKey).(*app)
	if !ok || a == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return a, nil
}

// findTarget looks up the category pinned via --category.
func findTarget(ctx context.Context, st awards.Store, id int64) (*awards.Category, error) {
	if id == 0 {
		return nil, nil
	}
	cat, err := st.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("target category %d: %w", id, err)
	}
	return &cat, nil
}

// Execute is the main entry point. It installs signal handling so a run in
// flight returns its partial summary instead of being torn down.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
