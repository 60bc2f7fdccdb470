package imaging

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSmooth(t *testing.T) {
	g := gridFromRows([][]int{
		{8, 0, 8},
		{8, 0, 8},
		{8, 0, 8},
	})

	got := Smooth(g)

	want := gridFromRows([][]int{
		{8, 4, 8},
		{8, 4, 8},
		{8, 4, 8},
	})
	if diff := cmp.Diff(want.Samples(), got.Samples()); diff != "" {
		t.Errorf("Smooth mismatch (-want +got):\n%s", diff)
	}
}

func TestSmooth_Impulse(t *testing.T) {
	g := gridFromRows([][]int{
		{0, 0, 0},
		{0, 8, 0},
		{0, 0, 0},
	})

	got := Smooth(g)

	// Vertical pass leaves 4 at the center, horizontal pass halves it again.
	want := gridFromRows([][]int{
		{0, 0, 0},
		{0, 2, 0},
		{0, 0, 0},
	})
	if diff := cmp.Diff(want.Samples(), got.Samples()); diff != "" {
		t.Errorf("Smooth mismatch (-want +got):\n%s", diff)
	}
	if g.At(1, 1) != 8 {
		t.Error("Smooth modified its input")
	}
}

func TestSmooth_ConstantGrid(t *testing.T) {
	g := Fill(10, 10, 255, 77)

	if !Smooth(g).Equal(g) {
		t.Error("Smooth of a constant grid should be unchanged")
	}
}

func TestGradientEnergy(t *testing.T) {
	g := gridFromRows([][]int{
		{0, 0, 0},
		{0, 0, 100},
		{0, 0, 0},
	})

	got := GradientEnergy(g)

	// gx = 100, gy = 0: 100 / sqrt(2) truncates to 70. Border stays zero.
	want := gridFromRows([][]int{
		{0, 0, 0},
		{0, 70, 0},
		{0, 0, 0},
	})
	if diff := cmp.Diff(want.Samples(), got.Samples()); diff != "" {
		t.Errorf("GradientEnergy mismatch (-want +got):\n%s", diff)
	}
}

func TestGradientEnergy_ConstantGrid(t *testing.T) {
	got := GradientEnergy(Fill(6, 6, 255, 200))

	if diff := cmp.Diff(NewGrid(6, 6, 255).Samples(), got.Samples()); diff != "" {
		t.Errorf("energy of a constant grid should be zero (-want +got):\n%s", diff)
	}
}

func TestThreshold(t *testing.T) {
	g := gridFromRows([][]int{{0, 30, 31, 255}})

	got := Threshold(g, DefaultEnergyThreshold)

	want := gridFromRows([][]int{{0, 0, 255, 255}})
	if diff := cmp.Diff(want.Samples(), got.Samples()); diff != "" {
		t.Errorf("Threshold mismatch (-want +got):\n%s", diff)
	}
}

func TestStretchContrast(t *testing.T) {
	g := NewGrid(10, 10, 255)
	for i := 0; i < 100; i++ {
		v := 100
		if i >= 50 {
			v = 150
		}
		g.Set(i/10, i%10, v)
	}

	got, err := StretchContrast(g, DefaultStretchCutoff)
	if err != nil {
		t.Fatalf("StretchContrast failed: %v", err)
	}

	// Lower bound 99, upper bound 150: scale 255/51 = 5.
	if v := got.At(0, 0); v != 5 {
		t.Errorf("dark sample: got %d, want 5", v)
	}
	if v := got.At(9, 9); v != 255 {
		t.Errorf("bright sample: got %d, want 255", v)
	}
}

func TestStretchContrast_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		grid   *Grid
		cutoff float64
	}{
		{"negative cutoff", Fill(2, 2, 255, 1), -0.1},
		{"cutoff too large", Fill(2, 2, 255, 1), 0.5},
		{"empty grid", NewGrid(0, 0, 255), 0.05},
		{"sample above 8 bits", Fill(2, 2, 4095, 4000), 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := StretchContrast(tt.grid, tt.cutoff); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("StretchContrast: got %v, want ErrInvalidParameter", err)
			}
		})
	}
}
