package chroma

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

// Image is a width × height raster of color samples in row-major order.
type Image struct {
	Width  int
	Height int
	Pix    []Sample
}

// NewImage returns a width × height image of opaque black samples.
func NewImage(width, height int) *Image {
	pix := make([]Sample, width*height)
	for i := range pix {
		pix[i] = New(0, 0, 0)
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// At returns the sample at column x, row y.
func (m *Image) At(x, y int) Sample {
	return m.Pix[y*m.Width+x]
}

// Set stores s at column x, row y.
func (m *Image) Set(x, y int, s Sample) {
	m.Pix[y*m.Width+x] = s
}

// SampleAt returns the sample at (x, y), or imaging.ErrOutOfBounds.
func (m *Image) SampleAt(x, y int) (Sample, error) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0, fmt.Errorf("coordinates (%d,%d) outside %dx%d image: %w", x, y, m.Width, m.Height, imaging.ErrOutOfBounds)
	}
	return m.At(x, y), nil
}

// NRGBA converts m to a standard library image.
func (m *Image) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, s := range m.Pix {
		o := i * 4
		img.Pix[o] = s.R()
		img.Pix[o+1] = s.G()
		img.Pix[o+2] = s.B()
		img.Pix[o+3] = s.A()
	}
	return img
}

// FromImage converts any image.Image to a sample image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := &Image{Width: b.Dx(), Height: b.Dy(), Pix: make([]Sample, b.Dx()*b.Dy())}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(Sample))
		}
	}
	return m
}

// Channel extracts one channel ('r', 'g', 'b' or 'v' for value) as a grid.
func (m *Image) Channel(ch byte) (*imaging.Grid, error) {
	var pick func(Sample) uint8
	switch ch {
	case 'r':
		pick = Sample.R
	case 'g':
		pick = Sample.G
	case 'b':
		pick = Sample.B
	case 'v':
		pick = Sample.Value
	default:
		return nil, fmt.Errorf("unknown channel %q: %w", ch, imaging.ErrInvalidParameter)
	}

	g := imaging.NewGrid(m.Height, m.Width, imaging.DefaultMaxSample)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			g.Set(y, x, int(pick(m.At(x, y))))
		}
	}
	return g, nil
}

var _ color.Color = Sample(0)
