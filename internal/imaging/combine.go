package imaging

import "fmt"

// DifferenceNoiseFloor is the smallest absolute difference CombineDifference
// keeps; smaller differences are treated as sensor noise and zeroed.
const DifferenceNoiseFloor = 35

// CombineAverage returns the per-sample integer mean of a and b.
//
// The result takes b's dimensions and maximum sample. Grids of different
// size are rejected with ErrDimensionMismatch.
func CombineAverage(a, b *Grid) (*Grid, error) {
	if !a.SameSize(b) {
		return nil, mismatch(a, b)
	}
	out := NewGrid(b.rows, b.cols, b.maxSample)
	for i := range out.pix {
		out.pix[i] = (a.pix[i] + b.pix[i]) / 2
	}
	return out, nil
}

// CombineDifference returns the per-sample absolute difference of a and b,
// with differences below DifferenceNoiseFloor set to zero.
//
// The result takes b's dimensions and maximum sample. Grids of different
// size are rejected with ErrDimensionMismatch.
func CombineDifference(a, b *Grid) (*Grid, error) {
	if !a.SameSize(b) {
		return nil, mismatch(a, b)
	}
	out := NewGrid(b.rows, b.cols, b.maxSample)
	for i := range out.pix {
		d := a.pix[i] - b.pix[i]
		if d < 0 {
			d = -d
		}
		if d < DifferenceNoiseFloor {
			d = 0
		}
		out.pix[i] = d
	}
	return out, nil
}

// Invert returns the tonal negative of g, 255 - sample for every sample.
// The 8-bit range is assumed whatever g's maximum sample is.
func Invert(g *Grid) *Grid {
	out := NewGrid(g.rows, g.cols, g.maxSample)
	for i, v := range g.pix {
		out.pix[i] = 255 - v
	}
	return out
}

// MeanSample returns the integer average of all samples of g.
func MeanSample(g *Grid) (int, error) {
	if len(g.pix) == 0 {
		return 0, fmt.Errorf("mean of empty grid: %w", ErrInvalidParameter)
	}
	total := 0
	for _, v := range g.pix {
		total += v
	}
	return total / len(g.pix), nil
}

func mismatch(a, b *Grid) error {
	return fmt.Errorf("grids %dx%d and %dx%d differ in size: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
}
