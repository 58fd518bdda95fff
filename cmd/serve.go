package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/api"
)

// newServeCmd creates the 'serve' subcommand: the admin HTTP server that
// triggers imports on demand and exposes health and metrics endpoints.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the admin HTTP server",
		Long: `Serves the admin API: POST /api/import triggers an import run over the
configured sources, GET /healthz reports liveness, and GET /metrics
exposes Prometheus metrics. The server shuts down cleanly on SIGINT or
SIGTERM.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd.Context())
			if err != nil {
				return err
			}

			srv := api.New(a.engine, a.store, a.cfg.Sources, a.registry, a.logger)
			a.logger.Info("admin server listening", zap.Int("port", a.cfg.Server.Port))
			return srv.ListenAndServe(cmd.Context(), a.cfg.Server.Port)
		},
	}
}
