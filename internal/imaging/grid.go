package imaging

import "fmt"

// DefaultMaxSample is the maximum sample value of 8-bit grids.
const DefaultMaxSample = 255

// Size limits for grids produced by scaling. MaxDimension bounds each side,
// MaxSamples the total.
const (
	MaxDimension = 1 << 16
	MaxSamples   = 1 << 26
)

// Grid is a dense single-channel raster: rows × cols integer samples in
// row-major order plus the declared maximum sample value.
//
// A Grid owns its sample buffer. Operations in this package never modify
// their input grids; they return a freshly allocated Grid, and the caller
// decides whether to replace its existing value.
//
// The zero value is an empty 0×0 grid.
type Grid struct {
	rows      int
	cols      int
	maxSample int
	pix       []int
}

// NewGrid returns a rows × cols grid with every sample set to zero.
// Negative dimensions are treated as zero.
func NewGrid(rows, cols, maxSample int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:      rows,
		cols:      cols,
		maxSample: maxSample,
		pix:       make([]int, rows*cols),
	}
}

// Rows returns the number of rows (the image height).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns (the image width).
func (g *Grid) Cols() int { return g.cols }

// MaxSample returns the declared maximum sample value.
func (g *Grid) MaxSample() int { return g.maxSample }

// Len returns the number of samples, rows × cols.
func (g *Grid) Len() int { return len(g.pix) }

// Empty reports whether the grid has no samples.
func (g *Grid) Empty() bool { return len(g.pix) == 0 }

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		rows:      g.rows,
		cols:      g.cols,
		maxSample: g.maxSample,
		pix:       make([]int, len(g.pix)),
	}
	copy(out.pix, g.pix)
	return out
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols
}

// InBounds reports whether (row, col) addresses a sample of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the sample at (row, col). It does not check bounds; use
// Sample for caller-supplied coordinates.
func (g *Grid) At(row, col int) int {
	return g.pix[row*g.cols+col]
}

// Set stores v at (row, col) without bounds or range checks.
func (g *Grid) Set(row, col, v int) {
	g.pix[row*g.cols+col] = v
}

// Sample returns the sample at (row, col), or ErrOutOfBounds.
func (g *Grid) Sample(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("sample (%d,%d) outside %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfBounds)
	}
	return g.At(row, col), nil
}

// SetSample stores v at (row, col), clamped to [0, MaxSample].
func (g *Grid) SetSample(row, col, v int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("sample (%d,%d) outside %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfBounds)
	}
	g.Set(row, col, clamp(v, 0, g.maxSample))
	return nil
}

// Samples returns a copy of the samples in row-major order.
func (g *Grid) Samples() []int {
	out := make([]int, len(g.pix))
	copy(out, g.pix)
	return out
}

// Bytes returns the samples as 8-bit values in row-major order, clamping
// each sample to [0, 255].
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.pix))
	for i, v := range g.pix {
		out[i] = uint8(clamp(v, 0, 255))
	}
	return out
}

// GridFromBytes builds a rows × cols grid with maximum sample 255 from
// row-major 8-bit samples. data must hold at least rows*cols bytes.
func GridFromBytes(rows, cols int, data []byte) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", rows, cols, ErrInvalidParameter)
	}
	if len(data) < rows*cols {
		return nil, fmt.Errorf("have %d samples, need %d: %w", len(data), rows*cols, ErrTruncatedBody)
	}
	g := NewGrid(rows, cols, DefaultMaxSample)
	for i := range g.pix {
		g.pix[i] = int(data[i])
	}
	return g, nil
}

// Fill returns a rows × cols grid with every sample set to v.
func Fill(rows, cols, maxSample, v int) *Grid {
	g := NewGrid(rows, cols, maxSample)
	for i := range g.pix {
		g.pix[i] = v
	}
	return g
}

// Equal reports whether g and o have the same dimensions, maximum sample
// and samples.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) || g.maxSample != o.maxSample {
		return false
	}
	for i, v := range g.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// GridInfo summarizes a grid.
type GridInfo struct {
	Rows      int `json:"rows"`
	Cols      int `json:"cols"`
	MaxSample int `json:"max_sample"`
	Mean      int `json:"mean"`
}

// Info returns the dimensions, maximum sample value and mean sample of g.
// The mean of an empty grid is reported as zero.
func (g *Grid) Info() GridInfo {
	mean, _ := MeanSample(g)
	return GridInfo{
		Rows:      g.rows,
		Cols:      g.cols,
		MaxSample: g.maxSample,
		Mean:      mean,
	}
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d max=%d)", g.rows, g.cols, g.maxSample)
}
