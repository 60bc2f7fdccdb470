package imaging

import (
	"fmt"
	"math"
)

// Enlarge scales g up by an integer factor, replicating each sample into a
// factor × factor block (nearest-neighbor). A factor of 1 returns a copy.
//
// A factor that would make either side exceed MaxDimension, or the grid
// exceed MaxSamples, is rejected with ErrInvalidParameter.
func Enlarge(g *Grid, factor int) (*Grid, error) {
	if factor < 1 {
		return nil, fmt.Errorf("enlarge factor %d must be >= 1: %w", factor, ErrInvalidParameter)
	}
	if !g.Empty() && !fitsScaled(g.rows, g.cols, factor) {
		return nil, fmt.Errorf("enlarge factor %d too large for %dx%d grid: %w", factor, g.rows, g.cols, ErrInvalidParameter)
	}

	out := NewGrid(g.rows*factor, g.cols*factor, g.maxSample)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			v := g.At(r, c)
			r0 := r * factor
			c0 := c * factor
			for i := r0; i < r0+factor; i++ {
				for j := c0; j < c0+factor; j++ {
					out.Set(i, j, v)
				}
			}
		}
	}
	return out, nil
}

// fitsScaled reports whether rows*factor × cols*factor stays within
// MaxDimension per side and MaxSamples overall. Divisions keep the check
// free of overflow.
func fitsScaled(rows, cols, factor int) bool {
	if factor > MaxDimension/rows || factor > MaxDimension/cols {
		return false
	}
	return rows*factor <= MaxSamples/(cols*factor)
}

// Shrink scales g down by an integer factor by decimation: output sample
// (r, c) is input sample (r*factor, c*factor). No averaging is applied.
//
// The result is (rows/factor) × (cols/factor); a factor that would leave
// a zero dimension is rejected.
func Shrink(g *Grid, factor int) (*Grid, error) {
	if factor < 1 {
		return nil, fmt.Errorf("shrink factor %d must be >= 1: %w", factor, ErrInvalidParameter)
	}
	rows := g.rows / factor
	cols := g.cols / factor
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("shrink factor %d too large for %dx%d grid: %w", factor, g.rows, g.cols, ErrInvalidParameter)
	}

	out := NewGrid(rows, cols, g.maxSample)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Set(r, c, g.At(r*factor, c*factor))
		}
	}
	return out, nil
}

// Mirror reflects g. With horizontal set the row order is reversed (a flip
// about the horizontal axis); otherwise the column order is reversed.
func Mirror(g *Grid, horizontal bool) *Grid {
	out := NewGrid(g.rows, g.cols, g.maxSample)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if horizontal {
				out.Set(g.rows-1-r, c, g.At(r, c))
			} else {
				out.Set(r, g.cols-1-c, g.At(r, c))
			}
		}
	}
	return out
}

// Shift translates g down and right by delta samples along both axes.
// Positions not covered by the translated image are zero. A delta at or
// beyond either dimension yields an all-zero grid.
func Shift(g *Grid, delta int) (*Grid, error) {
	if delta < 0 {
		return nil, fmt.Errorf("shift %d must be >= 0: %w", delta, ErrInvalidParameter)
	}

	out := NewGrid(g.rows, g.cols, g.maxSample)
	for r := 0; r < g.rows-delta; r++ {
		for c := 0; c < g.cols-delta; c++ {
			out.Set(r+delta, c+delta, g.At(r, c))
		}
	}
	return out, nil
}

// rotationPi is the value of pi used by the rotation, kept at the precision
// reference outputs were produced with.
const rotationPi = 3.14159265

// Rotate turns g by degrees about its center, (rows/2, cols/2), using
// nearest-neighbor forward mapping.
//
// Every source sample (r, c) is written to its rotated position when that
// position lies inside the grid; destination samples never written stay
// zero. A single row-major pass then replaces each zero destination sample
// with its right-hand neighbor, so isolated gaps left by the integer
// mapping are closed. The last column has no right neighbor and is left
// as-is.
func Rotate(g *Grid, degrees int) *Grid {
	out := NewGrid(g.rows, g.cols, g.maxSample)

	// The mapping is evaluated in single precision. The explicit float32
	// conversions round each product on its own so no multiply-add is fused.
	rads := float32(float64(degrees) * rotationPi / 180.0)
	cos := float32(math.Cos(float64(rads)))
	sin := float32(math.Sin(float64(rads)))

	r0 := g.rows / 2
	c0 := g.cols / 2

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			dr := float32(r - r0)
			dc := float32(c - c0)
			r1 := int(float32(r0) + float32(dr*cos) - float32(dc*sin))
			c1 := int(float32(c0) + float32(dr*sin) + float32(dc*cos))
			if out.InBounds(r1, c1) {
				out.Set(r1, c1, g.At(r, c))
			}
		}
	}

	for r := 0; r < out.rows; r++ {
		for c := 0; c+1 < out.cols; c++ {
			if out.At(r, c) == 0 {
				out.Set(r, c, out.At(r, c+1))
			}
		}
	}
	return out
}
