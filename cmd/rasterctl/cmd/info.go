package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/raster-tools/internal/chroma"
	"github.com/ironsheep/raster-tools/internal/imaging"
	"github.com/ironsheep/raster-tools/internal/netpbm"
)

type fileInfo struct {
	Path string `json:"path"`
	imaging.GridInfo
}

// NewInfoCmd prints dimensions, maximum sample and mean of each input.
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info INPUT...",
		Short: "print rows, columns, maximum sample and mean",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			workers, _ := cmd.Flags().GetInt("workers")
			load := loader(cmd)

			infos := make([]fileInfo, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(max(workers, 1))
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					grid, err := load(path)
					if err != nil {
						return err
					}
					infos[i] = fileInfo{Path: path, GridInfo: grid.Info()}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				return json.NewEncoder(w).Encode(infos)
			case "text":
				for _, fi := range infos {
					fmt.Fprintf(w, "%s: %dx%d max=%d mean=%d\n", fi.Path, fi.Rows, fi.Cols, fi.MaxSample, fi.Mean)
				}
				return nil
			default:
				return fmt.Errorf("format must be text or json, got %q", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "text", "output format (text|json)")
	return cmd
}

// loadPair loads two inputs concurrently.
func loadPair(ctx context.Context, load imaging.LoadFunc, a, b string) (*imaging.Grid, *imaging.Grid, error) {
	var ga, gb *imaging.Grid
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ga, err = load(a)
		return err
	})
	g.Go(func() (err error) {
		gb, err = load(b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ga, gb, nil
}

// NewSegmentCmd masks the dominant hue of a P6 file.
func NewSegmentCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment INPUT.ppm",
		Short: "mask the dominant hue of a color pixmap",
		Long: "segment builds the 8-bin hue histogram of a P6 file, picks the most populated bin\n" +
			"and writes a mask with 255 where a pixel falls in that bin and is more saturated\n" +
			"and brighter than the floors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			swap, _ := cmd.Flags().GetBool("swap-rb")
			minSat, _ := cmd.Flags().GetInt("min-sat")
			minVal, _ := cmd.Flags().GetInt("min-val")
			minArea, _ := cmd.Flags().GetInt("min-area")
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				jobs, err := planOutputs(args, "", "segment", ".pgm")
				if err != nil {
					return err
				}
				out = jobs[0].out
			}

			img, err := netpbm.ReadColor(args[0], swap)
			if err != nil {
				return err
			}
			seg := chroma.SegmentDominant(img, minSat, minVal)
			if err := writeGrid(out, seg.Mask); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "histogram: %v\n", seg.Histogram)
			fmt.Fprintf(w, "dominant bin: %d\n", seg.Bin)
			fmt.Fprintf(w, "coverage: %d of %d\n", seg.Coverage, len(img.Pix))
			fmt.Fprintf(w, "regions: %d\n", len(imaging.FindRegions(seg.Mask, max(minArea, 1))))
			return nil
		},
	}
	cmd.Flags().Int("min-sat", chroma.DefaultMinSat, "Saturation floor (exclusive)")
	cmd.Flags().Int("min-val", chroma.DefaultMinVal, "Value floor (exclusive)")
	cmd.Flags().Int("min-area", 1, "Smallest region to count, in samples")
	cmd.Flags().StringP("out", "o", "", "Mask output file")
	return cmd
}

// NewRegionsCmd lists the connected nonzero regions of a mask.
func NewRegionsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions INPUT",
		Short: "list 8-connected regions of nonzero samples, largest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minArea, _ := cmd.Flags().GetInt("min-area")
			if minArea < 0 {
				return fmt.Errorf("min-area must be non-negative, got %d: %w", minArea, imaging.ErrInvalidParameter)
			}
			g, err := loader(cmd)(args[0])
			if err != nil {
				return err
			}
			regions := imaging.FindRegions(g, max(minArea, 1))

			w := cmd.OutOrStdout()
			for _, r := range regions {
				b := r.Bounds
				fmt.Fprintf(w, "area=%d rows=%d-%d cols=%d-%d centroid=%d,%d\n",
					r.Area, b.Top, b.Bottom, b.Left, b.Right, r.Centroid.Row, r.Centroid.Col)
			}
			return nil
		},
	}
	cmd.Flags().Int("min-area", 1, "Smallest region to list, in samples")
	return cmd
}
