// cmd/edal/cmd_mirror.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/edal/internal/config"
	"github.com/tamzrod/edal/internal/edal"
	"github.com/tamzrod/edal/internal/mirror"
	"github.com/tamzrod/edal/internal/status"
)

var (
	mirrorCmd = &cobra.Command{
		Use:   "mirror",
		Short: "Push or pull the peer shadow in a Modbus register memory",
	}

	mirrorPushCmd = &cobra.Command{
		Use:   "push",
		Short: "Build the chain from the config and push it once",
		Args:  cobra.NoArgs,
		RunE:  runMirrorPush,
	}

	pullOut       string
	mirrorPullCmd = &cobra.Command{
		Use:   "pull",
		Short: "Read the peer shadow back, repair and decode it",
		Long: `pull reads the status block and image from the peer memory. The
decoded chain is printed; with --output the raw repaired image is also
written to a file.`,
		Args: cobra.NoArgs,
		RunE: runMirrorPull,
	}
)

func init() {
	mirrorCmd.AddCommand(mirrorPushCmd)
	mirrorCmd.AddCommand(mirrorPullCmd)
	mirrorPullCmd.Flags().StringVarP(&pullOut, "output", "o", "", "Also write the pulled image to this file")
}

// openMirror connects the configured endpoint. The caller closes the client.
func openMirror(cfg *config.Config) (*mirror.Mirror, *mirror.EndpointClient, error) {
	if cfg.Mirror == nil {
		return nil, nil, errors.New("mirror: not configured")
	}
	cli, err := mirror.NewEndpointClient(mirror.ClientConfig{
		Endpoint: cfg.Mirror.Endpoint,
		Timeout:  time.Duration(cfg.Mirror.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}
	m, err := mirror.New(mirror.Config{
		UnitID:      cfg.Mirror.UnitID,
		BaseAddress: cfg.Mirror.BaseAddress,
		Name:        cfg.Enclosure.Name,
	}, cli, slog.Default())
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}
	return m, cli, nil
}

func runMirrorPush(cmd *cobra.Command, args []string) error {
	cfg, chain, err := buildChain(cfgPath)
	if err != nil {
		return err
	}
	m, cli, err := openMirror(cfg)
	if err != nil {
		return err
	}
	defer cli.Close()

	img, err := chain.Encode()
	if err != nil {
		return err
	}
	gen, _ := chain.GenerationCount()
	sc, _ := chain.OverallStateChangeCount()

	snap := status.Snapshot{
		Health:       status.HealthOK,
		Generation:   gen,
		StateChanges: uint16(sc),
	}
	if err := m.Push(snap, img); err != nil {
		return err
	}
	slog.Info("mirror pushed", "endpoint", cfg.Mirror.Endpoint, "bytes", len(img))
	return nil
}

func runMirrorPull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	m, cli, err := openMirror(cfg)
	if err != nil {
		return err
	}
	defer cli.Close()

	chain, snap, err := m.Restore(edal.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "health=%d last_error=%d seconds_in_error=%d generation=%d\n",
		snap.Health, snap.LastErrorCode, snap.SecondsInError, snap.Generation)

	if pullOut != "" {
		img, err := chain.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(pullOut, img, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", pullOut, err)
		}
	}
	return chain.Dump(w)
}
