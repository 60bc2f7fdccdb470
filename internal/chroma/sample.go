// Package chroma provides the packed four-channel color sample used by the
// three-channel raster codec, its hue/saturation/value accessors, and the
// hue histogram and segmentation built on them.
//
// All derived values are 8-bit: hue is the 0-360 degree circle scaled to
// 0-255, saturation and value span 0-255.
package chroma

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Sample is a packed 8-bit RGBA color, stored as A<<24 | R<<16 | G<<8 | B.
// It is not alpha-premultiplied.
type Sample uint32

// Opaque is the alpha of samples built from fewer than four channels.
const Opaque = 255

// New returns an opaque sample.
func New(r, g, b uint8) Sample {
	return NewRGBA(r, g, b, Opaque)
}

// NewRGBA returns a sample with an explicit alpha channel.
func NewRGBA(r, g, b, a uint8) Sample {
	return Sample(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromGray returns an opaque sample with all three color channels set to v.
func FromGray(v uint8) Sample {
	return New(v, v, v)
}

// R returns the red channel.
func (s Sample) R() uint8 { return uint8(s >> 16) }

// G returns the green channel.
func (s Sample) G() uint8 { return uint8(s >> 8) }

// B returns the blue channel.
func (s Sample) B() uint8 { return uint8(s) }

// A returns the alpha channel.
func (s Sample) A() uint8 { return uint8(s >> 24) }

// SwapRB returns s with the red and blue channels exchanged.
func (s Sample) SwapRB() Sample {
	return NewRGBA(s.B(), s.G(), s.R(), s.A())
}

// Value returns the largest of the three color channels.
func (s Sample) Value() uint8 {
	return max(s.R(), s.G(), s.B())
}

// Hue returns the hue on a 0-255 circle.
//
// Black and achromatic samples have hue 0. Otherwise the sector is chosen
// by the channel holding the maximum (red, then green, then blue on ties)
// and the hue is offset + 43*(difference)/(max-min) with offsets 0, 85 and
// 171. Red-sector hues below zero wrap around the top of the circle.
func (s Sample) Hue() uint8 {
	r, g, b := int(s.R()), int(s.G()), int(s.B())

	v := max(r, g, b)
	if v == 0 {
		return 0
	}
	diff := v - min(r, g, b)
	if diff == 0 {
		return 0
	}

	var h int
	switch v {
	case r:
		h = (43 * (g - b)) / diff
	case g:
		h = 85 + (43*(b-r))/diff
	default:
		h = 171 + (43*(r-g))/diff
	}
	return uint8(h)
}

// Sat returns the saturation, 255*(max-min)/max.
//
// Max and min are tracked with two comparisons: red is the baseline, green
// either raises the max or becomes the min, and blue either raises the max
// or lowers the min.
func (s Sample) Sat() uint8 {
	r, g, b := int(s.R()), int(s.G()), int(s.B())

	hi, lo := r, r
	if g > hi {
		hi = g
	} else {
		lo = g
	}
	if b > hi {
		hi = b
	} else if b < lo {
		lo = b
	}

	if hi == 0 {
		return 0
	}
	return uint8((255 * (hi - lo)) / hi)
}

// RGBA implements color.Color.
func (s Sample) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: s.R(), G: s.G(), B: s.B(), A: s.A()}.RGBA()
}

// Colorful returns the color channels as a go-colorful color. Alpha is
// dropped.
func (s Sample) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(s.R()) / 255.0,
		G: float64(s.G()) / 255.0,
		B: float64(s.B()) / 255.0,
	}
}

// Hex returns the color as "#rrggbb". Alpha is not included.
func (s Sample) Hex() string {
	return s.Colorful().Hex()
}

// Model converts any color to a Sample.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if s, ok := c.(Sample); ok {
		return s
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewRGBA(n.R, n.G, n.B, n.A)
})
