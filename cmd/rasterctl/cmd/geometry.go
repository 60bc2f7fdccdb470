package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

// NewCropCmd crops a rectangle or a named region.
func NewCropCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "crop", "copy a rectangle or named region", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		region, _ := cmd.Flags().GetString("region")
		if region != "" {
			return func(g *imaging.Grid) (*imaging.Grid, error) {
				return imaging.CropRegion(g, region)
			}, nil
		}
		top, _ := cmd.Flags().GetInt("top")
		left, _ := cmd.Flags().GetInt("left")
		bottom, _ := cmd.Flags().GetInt("bottom")
		right, _ := cmd.Flags().GetInt("right")
		return func(g *imaging.Grid) (*imaging.Grid, error) {
			return imaging.Crop(g, top, left, bottom, right)
		}, nil
	})
	f := cmd.Flags()
	f.Int("top", 0, "First row (inclusive)")
	f.Int("left", 0, "First column (inclusive)")
	f.Int("bottom", 0, "Last row (exclusive)")
	f.Int("right", 0, "Last column (exclusive)")
	f.String("region", "", "Named region (top-left, ..., center); overrides the rectangle")
	return cmd
}

func factorCmd(ctx context.Context, use, short string, op func(*imaging.Grid, int) (*imaging.Grid, error)) *cobra.Command {
	cmd := newUnaryCmd(ctx, use, short, ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		k, _ := cmd.Flags().GetInt("factor")
		return func(g *imaging.Grid) (*imaging.Grid, error) { return op(g, k) }, nil
	})
	cmd.Flags().IntP("factor", "k", 2, "Integer scale factor")
	return cmd
}

// NewEnlargeCmd replicates samples into factor × factor blocks.
func NewEnlargeCmd(ctx context.Context) *cobra.Command {
	return factorCmd(ctx, "enlarge", "nearest-neighbor enlarge by an integer factor", imaging.Enlarge)
}

// NewShrinkCmd keeps every factor-th sample.
func NewShrinkCmd(ctx context.Context) *cobra.Command {
	return factorCmd(ctx, "shrink", "decimate by an integer factor", imaging.Shrink)
}

func NewMirrorCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "mirror", "reverse rows (horizontal) or columns (vertical)", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		axis, _ := cmd.Flags().GetString("axis")
		switch axis {
		case "horizontal":
			return pure(func(g *imaging.Grid) *imaging.Grid { return imaging.Mirror(g, true) }), nil
		case "vertical":
			return pure(func(g *imaging.Grid) *imaging.Grid { return imaging.Mirror(g, false) }), nil
		default:
			return nil, fmt.Errorf("axis must be horizontal or vertical, got %q", axis)
		}
	})
	cmd.Flags().String("axis", "horizontal", "Mirror axis (horizontal|vertical)")
	return cmd
}

func NewShiftCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "shift", "translate down and right along the diagonal", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		delta, _ := cmd.Flags().GetInt("delta")
		return func(g *imaging.Grid) (*imaging.Grid, error) { return imaging.Shift(g, delta) }, nil
	})
	cmd.Flags().IntP("delta", "d", 0, "Shift in rows and columns")
	return cmd
}

func NewRotateCmd(ctx context.Context) *cobra.Command {
	cmd := newUnaryCmd(ctx, "rotate", "rotate about the center by whole degrees", ".pgm", func(cmd *cobra.Command) (gridOp, error) {
		deg, _ := cmd.Flags().GetInt("degrees")
		return pure(func(g *imaging.Grid) *imaging.Grid { return imaging.Rotate(g, deg) }), nil
	})
	cmd.Flags().Int("degrees", 90, "Rotation angle")
	return cmd
}

// NewToPNGCmd converts inputs to PNG unchanged.
func NewToPNGCmd(ctx context.Context) *cobra.Command {
	return newUnaryCmd(ctx, "topng", "convert to PNG", ".png", func(cmd *cobra.Command) (gridOp, error) {
		return pure(func(g *imaging.Grid) *imaging.Grid { return g }), nil
	})
}
