package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

func NewInvertCmd(ctx context.Context) *cobra.Command {
	return newUnaryCmd(ctx, "invert", "replace each sample v with 255-v", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		return pure(imaging.Invert), nil
	})
}

func NewSmoothCmd(ctx context.Context) *cobra.Command {
	return newUnaryCmd(ctx, "smooth", "3x3 separable Gaussian blur", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		return pure(imaging.Smooth), nil
	})
}

func NewStretchCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "stretch", "linear contrast stretch between histogram percentiles", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		cutoff, _ := cmd.Flags().GetFloat64("cutoff")
		return func(g *imaging.Grid) (*imaging.Grid, error) { return imaging.StretchContrast(g, cutoff) }, nil
	})
	cmd.Flags().Float64("cutoff", imaging.DefaultStretchCutoff, "Fraction clipped at each end of the histogram")
	return cmd
}

func NewEnergyCmd(ctx context.Context) *cobra.Command {
	return newUnaryCmd(ctx, "energy", "gradient magnitude from central differences", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		return pure(imaging.GradientEnergy), nil
	})
}

func NewThresholdCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "threshold", "map samples above t to 255, others to 0", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		t, _ := cmd.Flags().GetInt("threshold")
		return pure(func(g *imaging.Grid) *imaging.Grid { return imaging.Threshold(g, t) }), nil
	})
	cmd.Flags().IntP("threshold", "t", imaging.DefaultEnergyThreshold, "Threshold")
	return cmd
}

// NewEdgesCmd runs the edge pipeline: shrink, smooth, stretch, gradient
// energy, threshold.
func NewEdgesCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "edges", "shrink, smooth, stretch, energy and threshold in one pass", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		k, _ := cmd.Flags().GetInt("factor")
		cutoff, _ := cmd.Flags().GetFloat64("cutoff")
		t, _ := cmd.Flags().GetInt("threshold")
		return func(g *imaging.Grid) (*imaging.Grid, error) {
			small, err := imaging.Shrink(g, k)
			if err != nil {
				return nil, err
			}
			stretched, err := imaging.StretchContrast(imaging.Smooth(small), cutoff)
			if err != nil {
				return nil, fmt.Errorf("stretch: %w", err)
			}
			return imaging.Threshold(imaging.GradientEnergy(stretched), t), nil
		}, nil
	})
	f := cmd.Flags()
	f.IntP("factor", "k", 2, "Shrink factor")
	f.Float64("cutoff", imaging.DefaultStretchCutoff, "Stretch cutoff")
	f.IntP("threshold", "t", imaging.DefaultEnergyThreshold, "Energy threshold")
	return cmd
}

// NewCombineCmd averages or differences two rasters of equal size.
func NewCombineCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine A B",
		Short: "average or difference of two rasters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			out, _ := cmd.Flags().GetString("out")

			var op func(a, b *imaging.Grid) (*imaging.Grid, error)
			switch mode {
			case "average":
				op = imaging.CombineAverage
			case "difference":
				op = imaging.CombineDifference
			default:
				return fmt.Errorf("mode must be average or difference, got %q", mode)
			}
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			a, b, err := loadPair(ctx, loader(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			res, err := op(a, b)
			if err != nil {
				return err
			}
			return writeGrid(out, res)
		},
	}
	cmd.Flags().String("mode", "average", "Combination mode (average|difference)")
	cmd.Flags().StringP("out", "o", "", "Output file")
	return cmd
}
