package netpbm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/raster-tools/internal/chroma"
	"github.com/ironsheep/raster-tools/internal/imaging"
)

// DecodeColor decodes a P6 container. The declared maximum is read but not
// checked; the body is the last width*height*3 bytes of r. With swapRB the
// first and third byte of each triple are exchanged.
func DecodeColor(r io.ReadSeeker, swapRB bool) (*chroma.Image, error) {
	h, err := ReadHeader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	if h.Magic != MagicColorRaw {
		return nil, fmt.Errorf("unsupported color container %s: %w", h.Magic, imaging.ErrInvalidFormat)
	}

	body, err := readTail(r, h.Width*h.Height*3)
	if err != nil {
		return nil, err
	}

	img := &chroma.Image{Width: h.Width, Height: h.Height, Pix: make([]chroma.Sample, h.Width*h.Height)}
	for i := range img.Pix {
		p := body[i*3 : i*3+3]
		s := chroma.New(p[0], p[1], p[2])
		if swapRB {
			s = s.SwapRB()
		}
		img.Pix[i] = s
	}
	return img, nil
}

// EncodeColor writes img as a P6 container with maximum sample 255. Alpha
// is dropped.
func EncodeColor(w io.Writer, img *chroma.Image, swapRB bool) error {
	buf := make([]byte, 0, len(img.Pix)*3)
	for _, s := range img.Pix {
		if swapRB {
			s = s.SwapRB()
		}
		buf = append(buf, s.R(), s.G(), s.B())
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", MagicColorRaw, img.Width, img.Height)
	bw.Write(buf)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing color container: %w: %w", imaging.ErrIOFailure, err)
	}
	return nil
}

// ReadColor decodes the P6 file at path.
func ReadColor(path string, swapRB bool) (*chroma.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError("open", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	defer f.Close()

	img, err := DecodeColor(f, swapRB)
	if err != nil {
		return nil, fileError("decode", path, err)
	}
	return img, nil
}

// WriteColor encodes img as a P6 file at path.
func WriteColor(path string, img *chroma.Image, swapRB bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fileError("create", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	if err := EncodeColor(f, img, swapRB); err != nil {
		f.Close()
		return fileError("encode", path, err)
	}
	if err := f.Close(); err != nil {
		return fileError("close", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	return nil
}

// LoadGrid reads any supported file at path as a gray grid. P2 and P5 are
// decoded directly, P6 is reduced to luminance after the optional red/blue
// swap, and anything else goes through imaging.OpenImage.
func LoadGrid(path string, swapRB bool) (*imaging.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError("open", path, fmt.Errorf("%w: %w", imaging.ErrIOFailure, err))
	}
	magic, sniffErr := Sniff(f)
	f.Close()

	switch {
	case sniffErr != nil:
		return imaging.OpenImage(path)
	case magic == MagicColorRaw:
		img, err := ReadColor(path, swapRB)
		if err != nil {
			return nil, err
		}
		return imaging.FromImage(img.NRGBA()), nil
	default:
		return ReadGray(path)
	}
}

// Loader returns a LoadGrid bound to one red/blue order, for use with
// imaging.NewGridCache.
func Loader(swapRB bool) imaging.LoadFunc {
	return func(path string) (*imaging.Grid, error) {
		return LoadGrid(path, swapRB)
	}
}
