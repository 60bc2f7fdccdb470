package imaging

import "fmt"

// Crop extracts the rectangle [top, bottom) × [left, right) from g.
//
// The result is (bottom-top) × (right-left) and keeps g's maximum sample.
//
// # Errors
//
//   - ErrOutOfBounds if the rectangle reaches outside g
//   - ErrInvalidParameter if the rectangle is empty or inverted
func Crop(g *Grid, top, left, bottom, right int) (*Grid, error) {
	if top < 0 || left < 0 || bottom > g.rows || right > g.cols {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside grid bounds (0,0)-(%d,%d): %w",
			top, left, bottom, right, g.rows, g.cols, ErrOutOfBounds)
	}
	if top >= bottom || left >= right {
		return nil, fmt.Errorf("invalid crop region: top must be < bottom, left must be < right: %w", ErrInvalidParameter)
	}

	out := NewGrid(bottom-top, right-left, g.maxSample)
	for r := top; r < bottom; r++ {
		copy(out.pix[(r-top)*out.cols:(r-top+1)*out.cols], g.pix[r*g.cols+left:r*g.cols+right])
	}
	return out, nil
}

// CropRegion extracts a named region of g.
//
// Supported names are top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half and center (the middle 50%
// in each direction).
func CropRegion(g *Grid, region string) (*Grid, error) {
	h := g.rows
	w := g.cols
	midR := h / 2
	midC := w / 2

	var top, left, bottom, right int

	switch region {
	case "top-left":
		top, left, bottom, right = 0, 0, midR, midC
	case "top-right":
		top, left, bottom, right = 0, midC, midR, w
	case "bottom-left":
		top, left, bottom, right = midR, 0, h, midC
	case "bottom-right":
		top, left, bottom, right = midR, midC, h, w
	case "top-half":
		top, left, bottom, right = 0, 0, midR, w
	case "bottom-half":
		top, left, bottom, right = midR, 0, h, w
	case "left-half":
		top, left, bottom, right = 0, 0, h, midC
	case "right-half":
		top, left, bottom, right = 0, midC, h, w
	case "center":
		qR := h / 4
		qC := w / 4
		top, left, bottom, right = qR, qC, h-qR, w-qC
	default:
		return nil, fmt.Errorf("unknown region %q: %w", region, ErrInvalidParameter)
	}

	return Crop(g, top, left, bottom, right)
}
