package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/raster-tools/internal/logging"
)

// NewRoot builds the rasterctl command tree.
func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logCloser io.Closer
	cmd := &cobra.Command{
		Use:   "rasterctl",
		Short: "batch geometry, filtering and conversion of PGM/PPM rasters",
		Long: "rasterctl applies one raster operation to each input file and writes the results.\n" +
			"Inputs may be P2, P5 or P6 files or any PNG, JPEG, GIF, BMP or TIFF image; color\n" +
			"inputs are reduced to luminance. Outputs ending in .pgm are written as raw P5,\n" +
			"other extensions select the image format.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")

			level, ok := logging.ParseLevel(logLevel)
			cfg := logging.Config{Level: level, File: logFile, MaxSizeMB: 10, MaxBackups: 3}
			var w io.WriteCloser = nopCloser{cmd.ErrOrStderr()}
			if logFile != "" {
				w = cfg.Writer()
			}
			logCloser = w
			slog.SetDefault(logging.Logger(w, false, level))

			if !ok {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewInfoCmd(ctx),
		NewCropCmd(ctx),
		NewEnlargeCmd(ctx),
		NewShrinkCmd(ctx),
		NewMirrorCmd(ctx),
		NewShiftCmd(ctx),
		NewRotateCmd(ctx),
		NewInvertCmd(ctx),
		NewCombineCmd(ctx),
		NewSmoothCmd(ctx),
		NewStretchCmd(ctx),
		NewEnergyCmd(ctx),
		NewThresholdCmd(ctx),
		NewEdgesCmd(ctx),
		NewSegmentCmd(ctx),
		NewRegionsCmd(ctx),
		NewToPNGCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "Write logs to this file, rotated by size, instead of stderr")
	pf.Bool("swap-rb", false, "Read and write P6 triples as blue, green, red, including P6 inputs reduced to gray")
	pf.IntP("workers", "w", 4, "Number of inputs processed concurrently")
	return cmd
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
