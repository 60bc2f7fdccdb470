package chroma

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleChannels(t *testing.T) {
	s := NewRGBA(10, 20, 30, 40)

	assert.Equal(t, uint8(10), s.R())
	assert.Equal(t, uint8(20), s.G())
	assert.Equal(t, uint8(30), s.B())
	assert.Equal(t, uint8(40), s.A())
	assert.Equal(t, Sample(0x280A141E), s)
}

func TestNewIsOpaque(t *testing.T) {
	assert.Equal(t, uint8(255), New(1, 2, 3).A())
	assert.Equal(t, uint8(255), FromGray(7).A())
	assert.Equal(t, New(7, 7, 7), FromGray(7))
}

func TestSwapRB(t *testing.T) {
	s := NewRGBA(1, 2, 3, 4)
	swapped := s.SwapRB()

	assert.Equal(t, NewRGBA(3, 2, 1, 4), swapped)
	assert.Equal(t, s, swapped.SwapRB())
}

func TestHSV(t *testing.T) {
	tests := []struct {
		name          string
		r, g, b       uint8
		hue, sat, val uint8
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"gray", 128, 128, 128, 0, 0, 128},
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 85, 255, 255},
		{"blue", 0, 0, 255, 171, 255, 255},
		{"magenta wraps", 255, 0, 255, 213, 255, 255},
		{"olive", 100, 100, 50, 43, 127, 100},
		{"sky truncates toward zero", 50, 100, 200, 157, 191, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.r, tt.g, tt.b)
			assert.Equal(t, tt.hue, s.Hue(), "hue")
			assert.Equal(t, tt.sat, s.Sat(), "sat")
			assert.Equal(t, tt.val, s.Value(), "value")
		})
	}
}

func TestHueIgnoresAlpha(t *testing.T) {
	assert.Equal(t, New(0, 255, 0).Hue(), NewRGBA(0, 255, 0, 0).Hue())
}

func TestSampleIsColor(t *testing.T) {
	var c color.Color = NewRGBA(255, 0, 0, 255)
	r, g, b, a := c.RGBA()

	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestModel(t *testing.T) {
	got := Model.Convert(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	require.IsType(t, Sample(0), got)
	assert.Equal(t, New(10, 20, 30), got)

	s := New(1, 2, 3)
	assert.Equal(t, s, Model.Convert(s))
}

func TestHexAndColorful(t *testing.T) {
	assert.Equal(t, "#ff8000", New(255, 128, 0).Hex())
	assert.Equal(t, "#000000", NewRGBA(0, 0, 0, 0).Hex())

	c := New(255, 0, 0).Colorful()
	h, s, v := c.Hsv()
	assert.InDelta(t, 0.0, h, 1e-9)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.InDelta(t, 1.0, v, 1e-9)
}
