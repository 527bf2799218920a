// cmd/edal/root.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tamzrod/edal/internal/config"
	"github.com/tamzrod/edal/internal/edal"
)

var (
	cfgPath  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "edal",
		Short: "Inspect, verify and serve enclosure data chains",
		Long: `edal builds an enclosure data chain from a YAML description, prints
and verifies relocatable chain images, and keeps a peer shadow of the
chain in a Modbus register memory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
				return fmt.Errorf("log level %q: %w", logLevel, err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "edal.yaml",
		"Enclosure description (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig runs the full config pipeline: load, validate, normalize.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

func buildChain(path string) (*config.Config, *edal.Chain, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	chain, err := config.Build(cfg, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return cfg, chain, nil
}

// readImage loads an image file and repairs its block relations.
func readImage(path string) (*edal.Chain, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := edal.RepairImage(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	chain, err := edal.Decode(raw, edal.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chain, nil
}
