package imaging

import (
	"fmt"
	"math"
)

// DefaultEnergyThreshold separates high-energy samples from the background
// in GradientEnergy output.
const DefaultEnergyThreshold = 30

// DefaultStretchCutoff is the fraction of samples clipped at each end of
// the histogram by StretchContrast.
const DefaultStretchCutoff = 0.05

// Smooth applies a separable 3x3 binomial filter to g.
//
// # Algorithm
//
//  1. Vertical pass: every row except the first and last becomes
//     (above + 2*center + below) / 4. The first and last rows are copied.
//  2. Horizontal pass over the vertical result: every column except the
//     first and last becomes (left + 2*center + right) / 4.
//
// The first and last columns of the result keep g's original samples.
// Division truncates.
func Smooth(g *Grid) *Grid {
	rows, cols := g.rows, g.cols

	vert := g.Clone()
	for r := 1; r < rows-1; r++ {
		for c := 0; c < cols; c++ {
			vert.Set(r, c, (g.At(r-1, c)+2*g.At(r, c)+g.At(r+1, c))/4)
		}
	}

	out := g.Clone()
	for r := 0; r < rows; r++ {
		for c := 1; c < cols-1; c++ {
			out.Set(r, c, (vert.At(r, c-1)+2*vert.At(r, c)+vert.At(r, c+1))/4)
		}
	}
	return out
}

// GradientEnergy computes the gradient magnitude of g from central
// differences, scaled by 1/sqrt(2) so 8-bit input stays within [0, 255].
//
// The one-sample border has no complete neighborhood and is zero. The
// magnitude is evaluated in single precision and truncated.
func GradientEnergy(g *Grid) *Grid {
	out := NewGrid(g.rows, g.cols, g.maxSample)
	sqrt2 := float32(math.Sqrt(2))

	for r := 1; r < g.rows-1; r++ {
		for c := 1; c < g.cols-1; c++ {
			gx := g.At(r, c+1) - g.At(r, c-1)
			gy := g.At(r+1, c) - g.At(r-1, c)
			mag := float32(math.Sqrt(float64(float32(gx*gx + gy*gy))))
			out.Set(r, c, int(mag/sqrt2))
		}
	}
	return out
}

// Threshold binarizes g: samples greater than t become 255, all others 0.
func Threshold(g *Grid, t int) *Grid {
	out := NewGrid(g.rows, g.cols, g.maxSample)
	for i, v := range g.pix {
		if v > t {
			out.pix[i] = 255
		}
	}
	return out
}

// StretchContrast expands the gray range of an 8-bit grid so that the
// darkest and brightest cutoff fraction of samples saturate at 0 and 255.
//
// # Algorithm
//
//  1. Build a 256-bin histogram.
//  2. Walk the bins accumulating counts. The lower bound is the last bin
//     whose running total is still <= cutoff*N; the upper bound is the
//     first bin whose running total reaches (1-cutoff)*N.
//  3. Map every sample linearly: 255/(upper-lower) * (v-lower), truncated
//     and clamped to [0, 255].
//
// The scale factor and percentiles are computed in single precision. A
// histogram whose bounds coincide is returned unchanged.
//
// # Errors
//
//   - ErrInvalidParameter if cutoff is outside [0, 0.5), the grid is
//     empty, or a sample lies outside [0, 255]
func StretchContrast(g *Grid, cutoff float64) (*Grid, error) {
	if cutoff < 0 || cutoff >= 0.5 || math.IsNaN(cutoff) {
		return nil, fmt.Errorf("stretch cutoff %v must be in [0, 0.5): %w", cutoff, ErrInvalidParameter)
	}
	if g.Empty() {
		return nil, fmt.Errorf("stretch of empty grid: %w", ErrInvalidParameter)
	}

	var hist [256]int
	for i, v := range g.pix {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("sample %d at index %d outside 8-bit range: %w", v, i, ErrInvalidParameter)
		}
		hist[v]++
	}

	cut := float32(cutoff)
	lowerPercentile := int(cut * float32(g.cols) * float32(g.rows))
	upperPercentile := int((1 - cut) * float32(g.cols) * float32(g.rows))

	lower, upper := 0, 255
	accu := 0
	for h := 0; h < 256; h++ {
		accu += hist[h]
		if accu <= lowerPercentile {
			lower = h
			continue
		}
		if accu >= upperPercentile {
			upper = h
			break
		}
	}

	if upper <= lower {
		return g.Clone(), nil
	}

	scale := float32(255.0 / float64(upper-lower))
	out := NewGrid(g.rows, g.cols, g.maxSample)
	for i, v := range g.pix {
		out.pix[i] = clamp(int(scale*float32(v-lower)), 0, 255)
	}
	return out, nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
