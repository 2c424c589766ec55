package main

import (
	"fmt"

	"github.com/jonathan/resume-enhancer/internal/config"
	"github.com/jonathan/resume-enhancer/internal/server"
	"github.com/jonathan/resume-enhancer/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var (
		port        int
		metricsPort int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that holds review sessions in memory and persists them to the configured
storage backend. Requires JWT_SECRET; rate limits are read from RATE_LIMIT_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") || cfg.Port == 0 {
				cfg.Port = port
			}
			if cmd.Flags().Changed("metrics-port") {
				cfg.MetricsPort = metricsPort
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			jwtConfig, err := config.NewJWTConfig()
			if err != nil {
				return fmt.Errorf("failed to create JWT config: %w", err)
			}

			provider, watch, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}

			srv, err := server.New(server.Config{
				Port:        cfg.Port,
				MetricsPort: cfg.MetricsPort,
				Catalog:     provider,
				Store:       store,
				JWT:         jwtConfig,
				RateLimit:   ratelimit.LoadConfig(),
				Watch:       watch,
			})
			if err != nil {
				_ = store.Close()
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Serve /metrics on a separate port (0: API port only)")
	return cmd
}
