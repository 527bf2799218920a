// cmd/edal/cmd_serve.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tamzrod/edal/internal/config"
	"github.com/tamzrod/edal/internal/metrics"
	"github.com/tamzrod/edal/internal/shadow"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Own the chain, keep the peer shadow current and export metrics",
	Long: `serve builds the chain from the config and hands it to a single owner
goroutine. Every interval it scans for pending writes, refreshes the local
backup and pushes the image and status block to the mirror (if configured).
Metrics are served on /metrics and the last good backup on /dump.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, chain, err := buildChain(cfgPath)
	if err != nil {
		return err
	}
	log := slog.Default().With("enclosure", cfg.Enclosure.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	var pusher shadow.Pusher
	interval := time.Duration(config.DefaultIntervalMs) * time.Millisecond
	if cfg.Mirror != nil {
		mir, cli, err := openMirror(cfg)
		if err != nil {
			return err
		}
		defer cli.Close()
		pusher = mir
		interval = time.Duration(cfg.Mirror.IntervalMs) * time.Millisecond
	}

	runner, err := shadow.New(shadow.Config{Interval: interval}, chain, pusher, m, log)
	if err != nil {
		return err
	}

	// ------------------------------------------------------------
	// HTTP (optional)
	// ------------------------------------------------------------
	var srv *http.Server
	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.HandleFunc("/dump", func(w http.ResponseWriter, r *http.Request) {
			c, err := runner.LastGood(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_ = c.Dump(w)
		})

		srv = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server failed", "listen", cfg.Metrics.Listen, "err", err)
				stop()
			}
		}()
		log.Info("http listening", "listen", cfg.Metrics.Listen)
	}

	log.Info("shadow runner started", "interval", interval, "blocks", chain.Len())
	err = runner.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}

	if errors.Is(err, context.Canceled) {
		log.Info("shadow runner stopped")
		return nil
	}
	return err
}
