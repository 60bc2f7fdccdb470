package chroma

import "github.com/ironsheep/raster-tools/internal/imaging"

// HueBins is the number of bins in a hue histogram; each bin spans 32 hue
// steps.
const HueBins = 8

// Default segmentation floors: samples must be strictly more saturated and
// brighter than these to count as part of a hue segment.
const (
	DefaultMinSat = 100
	DefaultMinVal = 100
)

// HueBin returns the histogram bin of the sample's hue.
func HueBin(s Sample) int {
	return int(s.Hue() >> 5)
}

// HueHistogram counts the samples of m per hue bin.
func HueHistogram(m *Image) [HueBins]int {
	var hist [HueBins]int
	for _, s := range m.Pix {
		hist[HueBin(s)]++
	}
	return hist
}

// DominantHueBin returns the first bin holding the largest count, or -1 if
// the histogram is empty.
func DominantHueBin(hist [HueBins]int) int {
	best := -1
	bestCount := 0
	for bin, n := range hist {
		if n > bestCount {
			bestCount = n
			best = bin
		}
	}
	return best
}

// SegmentHue returns a mask grid the size of m, 255 where a sample falls in
// hue bin and is more saturated than minSat and brighter than minVal, 0
// elsewhere.
func SegmentHue(m *Image, bin, minSat, minVal int) *imaging.Grid {
	mask := imaging.NewGrid(m.Height, m.Width, imaging.DefaultMaxSample)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			s := m.At(x, y)
			if HueBin(s) == bin && int(s.Sat()) > minSat && int(s.Value()) > minVal {
				mask.Set(y, x, 255)
			}
		}
	}
	return mask
}

// SegmentResult summarizes a dominant-hue segmentation.
type SegmentResult struct {
	Histogram [HueBins]int  `json:"histogram"`
	Bin       int           `json:"dominant_bin"`
	Mask      *imaging.Grid `json:"-"`
	Coverage  int           `json:"coverage"`
}

// SegmentDominant finds the dominant hue bin of m and segments it with the
// given saturation and value floors.
func SegmentDominant(m *Image, minSat, minVal int) *SegmentResult {
	hist := HueHistogram(m)
	bin := DominantHueBin(hist)
	mask := SegmentHue(m, bin, minSat, minVal)

	covered := 0
	for _, v := range mask.Samples() {
		if v != 0 {
			covered++
		}
	}
	return &SegmentResult{
		Histogram: hist,
		Bin:       bin,
		Mask:      mask,
		Coverage:  covered,
	}
}
