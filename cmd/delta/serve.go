package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/retention"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the long-lived runtime process",
	Long: `Run the long-lived runtime process.

The process serves the Prometheus scrape endpoint when a metrics listen
address is configured, and runs the retention scheduler pruning expired
audit records and dataset metadata. It stops on SIGINT or SIGTERM.

Examples:
  # Run with the default config
  delta serve

  # Run with an explicit config
  delta serve --config /etc/delta/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Retention scheduler
	retentionCfg := rt.cfg.Audit.Retention
	if retentionCfg.Days > 0 && retentionCfg.PruneSchedule != "" {
		pruner := retention.NewPruner(rt.auditStore, rt.metaStore, retention.Config{
			RetentionDays: retentionCfg.Days,
			PruneSchedule: retentionCfg.PruneSchedule,
		}, rt.logger.Slog())
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
		if next := pruner.NextPruning(); next != nil {
			rt.logger.Info("retention scheduler started", "next_pruning", next)
		}
	}

	// Metrics endpoint
	errChan := make(chan error, 1)
	var metricsServer *http.Server
	metricsCfg := rt.cfg.Telemetry.Metrics
	if metricsCfg.Enabled && metricsCfg.ListenAddress != "" {
		mux := http.NewServeMux()
		mux.Handle(metricsCfg.Path, rt.metrics.Handler())
		metricsServer = &http.Server{
			Addr:              metricsCfg.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			rt.logger.Info("metrics endpoint listening",
				"address", metricsCfg.ListenAddress,
				"path", metricsCfg.Path,
			)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	fmt.Fprintf(os.Stderr, "delta %s running, press Ctrl+C to stop\n", Version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		rt.logger.Info("shutting down", "signal", sig.String())
		cancel()
		if metricsServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
		return nil
	}
}
