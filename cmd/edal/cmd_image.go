// cmd/edal/cmd_image.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/edal/internal/edal"
)

var (
	dumpCmd = &cobra.Command{
		Use:   "dump [image]",
		Short: "Print a chain built from the config, or decoded from an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDump,
	}

	imageOut string
	imageCmd = &cobra.Command{
		Use:   "image",
		Short: "Build the chain from the config and write its relocatable image",
		Args:  cobra.NoArgs,
		RunE:  runImage,
	}
)

func init() {
	imageCmd.Flags().StringVarP(&imageOut, "output", "o", "edal.img", "Image file to write")
}

func runDump(cmd *cobra.Command, args []string) error {
	var (
		chain *edal.Chain
		err   error
	)
	if len(args) == 1 {
		chain, err = readImage(args[0])
	} else {
		_, chain, err = buildChain(cfgPath)
	}
	if err != nil {
		return err
	}
	return chain.Dump(cmd.OutOrStdout())
}

func runImage(cmd *cobra.Command, args []string) error {
	_, chain, err := buildChain(cfgPath)
	if err != nil {
		return err
	}
	img, err := chain.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(imageOut, img, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", imageOut, err)
	}
	slog.Info("image written", "path", imageOut, "bytes", len(img), "blocks", chain.Len())
	return nil
}
