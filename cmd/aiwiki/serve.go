package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aiwiki/aiwiki/handlers"
	"github.com/aiwiki/aiwiki/internal/artifacts"
	"github.com/aiwiki/aiwiki/internal/config"
	"github.com/aiwiki/aiwiki/pkg/logger"
	"github.com/aiwiki/aiwiki/pkg/metrics"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = fmt.Sprintf("%d", servePort)
		}

		store := artifacts.NewStore(cfg.Docs.Dir)
		if !store.Load().Available() {
			logger.Warnf("no documentation found in %s; run 'aiwiki generate' first", cfg.Docs.Dir)
		}

		metrics.RegisterCollectors(prometheus.DefaultRegisterer)
		r := handlers.NewRouter(cfg, store)

		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Infof("starting dashboard on http://localhost:%s (docs dir %s, log level %s)",
			cfg.Server.Port, cfg.Docs.Dir, logger.LevelString())
		if err := r.Run(addr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to run the dashboard on")
}
