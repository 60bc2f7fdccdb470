package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ToGray converts g to an 8-bit *image.Gray. Samples are clamped to
// [0, 255]; row r, column c becomes pixel (x=c, y=r).
func ToGray(g *Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.cols, g.rows))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			img.Pix[r*img.Stride+c] = uint8(clamp(g.At(r, c), 0, 255))
		}
	}
	return img
}

// FromImage converts any image.Image to a grid with maximum sample 255.
//
// *image.Gray is copied directly. Other images are reduced to luminance
// with bild's grayscale effect first.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := NewGrid(b.Dy(), b.Dx(), DefaultMaxSample)

	if gray, ok := img.(*image.Gray); ok {
		for r := 0; r < g.rows; r++ {
			off := gray.PixOffset(b.Min.X, b.Min.Y+r)
			for c := 0; c < g.cols; c++ {
				g.Set(r, c, int(gray.Pix[off+c]))
			}
		}
		return g
	}

	lum := effect.Grayscale(img)
	lb := lum.Bounds()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			off := lum.PixOffset(lb.Min.X+c, lb.Min.Y+r)
			g.Set(r, c, int(lum.Pix[off]))
		}
	}
	return g
}

// OpenImage decodes any registered image format from path into a grid.
// Color images are converted to luminance.
func OpenImage(path string) (*Grid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %v: %w", path, err, ErrIOFailure)
	}
	return FromImage(img), nil
}

// Export writes g to path in the format implied by the file extension
// (png, jpg, gif, tif, bmp).
func Export(g *Grid, path string) error {
	if err := imaging.Save(ToGray(g), path); err != nil {
		return fmt.Errorf("failed to save %s: %v: %w", path, err, ErrIOFailure)
	}
	return nil
}

// PreviewResult contains a PNG rendering of a grid.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders g as a base64 PNG, optionally scaled by scale with
// nearest-neighbor resampling so sample boundaries stay visible.
func Preview(g *Grid, scale float64) (*PreviewResult, error) {
	if g.Empty() {
		return nil, fmt.Errorf("preview of empty grid: %w", ErrInvalidParameter)
	}

	var img image.Image = ToGray(g)
	if scale != 1.0 && scale > 0 {
		w := float64(g.cols) * scale
		h := float64(g.rows) * scale
		if w > MaxDimension || h > MaxDimension || w*h > MaxSamples {
			return nil, fmt.Errorf("preview scale %v too large for %dx%d grid: %w", scale, g.rows, g.cols, ErrInvalidParameter)
		}
		newWidth := int(w)
		newHeight := int(h)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("preview scale %v collapses %dx%d grid: %w", scale, g.rows, g.cols, ErrInvalidParameter)
		}
		img = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %v: %w", err, ErrIOFailure)
	}

	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
