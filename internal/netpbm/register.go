package netpbm

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

func init() {
	image.RegisterFormat("pgm", MagicGrayRaw, decodeGrayImage, decodeGrayConfig)
	image.RegisterFormat("pgm", MagicGrayASCII, decodeGrayImage, decodeGrayConfig)
	image.RegisterFormat("ppm", MagicColorRaw, decodeColorImage, decodeColorConfig)
}

// image.Decode hands over a plain reader; tail anchoring needs a seeker.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func decodeGrayImage(r io.Reader) (image.Image, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}
	g, err := DecodeGray(rs)
	if err != nil {
		return nil, err
	}
	return imaging.ToGray(g), nil
}

func decodeColorImage(r io.Reader) (image.Image, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}
	img, err := DecodeColor(rs, false)
	if err != nil {
		return nil, err
	}
	return img.NRGBA(), nil
}

func decodeConfig(r io.Reader, model color.Model) (image.Config, error) {
	h, err := ReadHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: model, Width: h.Width, Height: h.Height}, nil
}

func decodeGrayConfig(r io.Reader) (image.Config, error) {
	return decodeConfig(r, color.GrayModel)
}

func decodeColorConfig(r io.Reader) (image.Config, error) {
	return decodeConfig(r, color.NRGBAModel)
}
