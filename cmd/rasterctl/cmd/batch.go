package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/raster-tools/internal/imaging"
	"github.com/ironsheep/raster-tools/internal/logging"
	"github.com/ironsheep/raster-tools/internal/netpbm"
)

// gridOp transforms one grid.
type gridOp func(*imaging.Grid) (*imaging.Grid, error)

// pure adapts an operation that cannot fail.
func pure(f func(*imaging.Grid) *imaging.Grid) gridOp {
	return func(g *imaging.Grid) (*imaging.Grid, error) { return f(g), nil }
}

// newUnaryCmd builds a command applying the op returned by build to every
// input. build reads the command's own flags.
func newUnaryCmd(ctx context.Context, use, short, ext string, build func(cmd *cobra.Command) (gridOp, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " INPUT...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := build(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			workers, _ := cmd.Flags().GetInt("workers")

			jobs, err := planOutputs(args, out, use, ext)
			if err != nil {
				return err
			}
			return runBatch(ctx, jobs, workers, loader(cmd), op)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Output file for one input, output directory for several (default: next to each input)")
	return cmd
}

// job is one input and the path its result is written to.
type job struct {
	in  string
	out string
}

// planOutputs names the output of every input. With one input, out is the
// output file; with several it is a directory. An empty out writes
// "<name>-<suffix><ext>" next to each input.
func planOutputs(inputs []string, out, suffix, ext string) ([]job, error) {
	jobs := make([]job, len(inputs))
	base := func(in string) string {
		return strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}

	switch {
	case out == "":
		for i, in := range inputs {
			jobs[i] = job{in, filepath.Join(filepath.Dir(in), base(in)+"-"+suffix+ext)}
		}
	case len(inputs) == 1:
		jobs[0] = job{inputs[0], out}
	default:
		if err := os.MkdirAll(out, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		seen := make(map[string]string)
		for i, in := range inputs {
			name := base(in) + ext
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("inputs %s and %s both write %s", prev, in, name)
			}
			seen[name] = in
			jobs[i] = job{in, filepath.Join(out, name)}
		}
	}
	return jobs, nil
}

// loader returns the grid loader for the --swap-rb order.
func loader(cmd *cobra.Command) imaging.LoadFunc {
	swap, _ := cmd.Flags().GetBool("swap-rb")
	return netpbm.Loader(swap)
}

// runBatch processes jobs with at most workers running at once and stops
// at the first failure.
func runBatch(ctx context.Context, jobs []job, workers int, load imaging.LoadFunc, op gridOp) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			jctx := logging.AppendCtx(ctx, slog.String("input", j.in))

			src, err := load(j.in)
			if err != nil {
				return err
			}
			dst, err := op(src)
			if err != nil {
				return fmt.Errorf("%s: %w", j.in, err)
			}
			if err := writeGrid(j.out, dst); err != nil {
				return err
			}
			slog.InfoContext(jctx, "wrote", "output", j.out, "rows", dst.Rows(), "cols", dst.Cols())
			return nil
		})
	}
	return g.Wait()
}

// writeGrid writes P5 for .pgm paths and lets imaging pick the format from
// the extension otherwise.
func writeGrid(path string, g *imaging.Grid) error {
	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		return netpbm.WriteGray(path, g)
	}
	return imaging.Export(g, path)
}
