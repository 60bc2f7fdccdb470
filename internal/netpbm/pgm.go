package netpbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

// ASCIIMaxVal is the only maximum sample accepted for P2 containers.
const ASCIIMaxVal = 4095

// asciiScale maps 12-bit samples onto [0, 255].
const asciiScale = 255.0 / 4095.0

// DecodeGray decodes a P2 or P5 container into a grid with maximum sample
// 255.
//
// P2 requires a declared maximum of 4095; each ASCII sample is rescaled
// with round-half-up. P5 requires 255 or 256, and its body is the last
// width*height bytes of r regardless of where the header ends.
func DecodeGray(r io.ReadSeeker) (*imaging.Grid, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	switch {
	case h.Magic == MagicGrayASCII && h.MaxVal == ASCIIMaxVal:
		return decodeASCII(br, h)
	case h.Magic == MagicGrayRaw && (h.MaxVal == 255 || h.MaxVal == 256):
		body, err := readTail(r, h.Width*h.Height)
		if err != nil {
			return nil, err
		}
		return imaging.GridFromBytes(h.Height, h.Width, body)
	default:
		return nil, fmt.Errorf("unsupported gray container %s with maximum %d: %w", h.Magic, h.MaxVal, imaging.ErrInvalidFormat)
	}
}

// decodeASCII reads width*height sample tokens. Samples are collected as
// they arrive so a header declaring more samples than the body holds fails
// with ErrTruncatedBody instead of allocating the declared size up front.
func decodeASCII(br *bufio.Reader, h Header) (*imaging.Grid, error) {
	n := h.Width * h.Height
	samples := make([]byte, 0, min(n, 1<<16))
	for i := 0; i < n; i++ {
		tok, err := readToken(br)
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("body ends at sample %d of %d: %w", i, n, imaging.ErrTruncatedBody)
		}
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v > ASCIIMaxVal {
			return nil, fmt.Errorf("invalid sample %q at (%d,%d): %w", tok, i/h.Width, i%h.Width, imaging.ErrInvalidFormat)
		}
		samples = append(samples, uint8(math.Floor(0.5+float64(v)*asciiScale)))
	}
	return imaging.GridFromBytes(h.Height, h.Width, samples)
}

// EncodeGray writes g as a P5 container with maximum sample 255. Samples
// are clamped to [0, 255].
func EncodeGray(w io.Writer, g *imaging.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", MagicGrayRaw, g.Cols(), g.Rows())
	bw.Write(g.Bytes())
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing gray container: %w: %w", imaging.ErrIOFailure, err)
	}
	return nil
}

// ReadGray decodes the P2 or P5 file at path.
func ReadGray(path string) (*imaging.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError("open", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	defer f.Close()

	g, err := DecodeGray(f)
	if err != nil {
		return nil, fileError("decode", path, err)
	}
	return g, nil
}

// WriteGray encodes g as a P5 file at path. A failed write may leave a
// partial file behind.
func WriteGray(path string, g *imaging.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fileError("create", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	if err := EncodeGray(f, g); err != nil {
		f.Close()
		return fileError("encode", path, err)
	}
	if err := f.Close(); err != nil {
		return fileError("close", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	return nil
}
