package netpbm

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

func decodeString(t *testing.T, s string) (*imaging.Grid, error) {
	t.Helper()
	return DecodeGray(strings.NewReader(s))
}

func patternGrid(rows, cols int) *imaging.Grid {
	g := imaging.NewGrid(rows, cols, 255)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, (r*cols+c*7)%256)
		}
	}
	return g
}

func TestGrayRoundTrip(t *testing.T) {
	g := patternGrid(5, 9)

	var buf bytes.Buffer
	require.NoError(t, EncodeGray(&buf, g))

	back, err := DecodeGray(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, back.Equal(g), "decoded grid differs: %v", back.Samples())
}

func TestEncodeGray_Layout(t *testing.T) {
	g := imaging.NewGrid(1, 3, 255)
	g.Set(0, 0, 1)
	g.Set(0, 1, 300)
	g.Set(0, 2, -5)

	var buf bytes.Buffer
	require.NoError(t, EncodeGray(&buf, g))
	assert.Equal(t, "P5\n3 1\n255\n\x01\xff\x00", buf.String())
}

func TestDecodeGray_ASCII(t *testing.T) {
	g, err := decodeString(t, "P2\n3 2\n4095\n4095 0 2048\n1 4094 2047\n")
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 255, g.MaxSample())
	assert.Equal(t, []int{255, 0, 128, 0, 255, 127}, g.Samples())
}

func TestDecodeGray_Comments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"none", "P2\n2 1\n4095\n0 4095\n"},
		{"one", "P2\n# made by hand\n2 1\n4095\n0 4095\n"},
		{"several", "P2\n# one\n#two\n2 1\n4095\n0 4095\n"},
		{"blank line before comment", "P2\n\n\n# one\n2 1\n4095\n0 4095\n"},
		{"blank line after comment", "P2\n# one\n\n2 1\n4095\n0 4095\n"},
		{"same line as magic", "P2 2 1 4095 0 4095"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := decodeString(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, []int{0, 255}, g.Samples())
		})
	}
}

func TestDecodeGray_Raw(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"max 255", "P5\n2 2\n255\n\x00\x10\x20\xff"},
		{"max 256", "P5\n2 2\n256\n\x00\x10\x20\xff"},
		{"comment", "P5\n# scanner\n2 2\n255\n\x00\x10\x20\xff"},
		{"header padding", "P5\n2 2\n255\n\n\n   \n\x00\x10\x20\xff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := decodeString(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, []int{0, 16, 32, 255}, g.Samples())
		})
	}
}

func TestDecodeGray_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", imaging.ErrInvalidFormat},
		{"unknown magic", "P3\n1 1\n255\n0\n", imaging.ErrInvalidFormat},
		{"color magic", "P6\n1 1\n255\nabc", imaging.ErrInvalidFormat},
		{"ascii wrong max", "P2\n1 1\n255\n0\n", imaging.ErrInvalidFormat},
		{"ascii max 4096", "P2\n1 1\n4096\n0\n", imaging.ErrInvalidFormat},
		{"raw wrong max", "P5\n1 1\n65535\n\x00\x00", imaging.ErrInvalidFormat},
		{"missing height", "P5\n2\n", imaging.ErrInvalidFormat},
		{"non-numeric width", "P5\nabc 2\n255\n", imaging.ErrInvalidFormat},
		{"zero width", "P5\n0 2\n255\n", imaging.ErrInvalidFormat},
		{"ascii sample out of range", "P2\n2 1\n4095\n0 4096\n", imaging.ErrInvalidFormat},
		{"ascii sample not a number", "P2\n2 1\n4095\n0 x\n", imaging.ErrInvalidFormat},
		{"ascii short body", "P2\n2 2\n4095\n0 1 2\n", imaging.ErrTruncatedBody},
		{"raw short file", "P5\n4 4\n255\n\x00\x00\x00", imaging.ErrTruncatedBody},
		{"ascii huge header short body", "P2\n65536 65536\n4095\n0\n", imaging.ErrTruncatedBody},
		{"indented comment", "P2\n# one\n   # indented\n2 1\n4095\n0 4095\n", imaging.ErrInvalidFormat},
		{"comment after blank line", "P2\n# one\n\n# two\n2 1\n4095\n0 4095\n", imaging.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(t, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadWriteGray(t *testing.T) {
	g := patternGrid(4, 6)
	path := filepath.Join(t.TempDir(), "pattern.pgm")

	require.NoError(t, WriteGray(path, g))
	back, err := ReadGray(path)
	require.NoError(t, err)
	assert.True(t, back.Equal(g))
}

func TestReadGray_Errors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.pgm")
	_, err := ReadGray(missing)
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "open", fe.Op)
	assert.Equal(t, missing, fe.Path)
	assert.ErrorIs(t, err, imaging.ErrIOFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.pgm")
	require.NoError(t, os.WriteFile(bad, []byte("P2\n1 1\n255\n0\n"), 0o644))
	_, err = ReadGray(bad)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "decode", fe.Op)
	assert.ErrorIs(t, err, imaging.ErrInvalidFormat)
	assert.Contains(t, err.Error(), bad)
}

func TestWriteGray_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.pgm")
	err := WriteGray(path, patternGrid(1, 1))
	assert.ErrorIs(t, err, imaging.ErrIOFailure)
}

func TestSniff(t *testing.T) {
	for _, magic := range []string{"P2", "P5", "P6"} {
		got, err := Sniff(strings.NewReader(magic + "\n1 1\n255\n"))
		require.NoError(t, err)
		assert.Equal(t, magic, got)
	}

	_, err := Sniff(strings.NewReader("\x89PNG"))
	assert.ErrorIs(t, err, imaging.ErrInvalidFormat)
	_, err = Sniff(strings.NewReader("P"))
	assert.ErrorIs(t, err, imaging.ErrInvalidFormat)
}

func TestImageDecodeRegistration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGray(&buf, patternGrid(3, 4)))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "pgm", format)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 3, cfg.Height)

	img, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "pgm", format)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "got %T", img)
	assert.True(t, imaging.FromImage(gray).Equal(patternGrid(3, 4)))
}

func TestLoadGrid(t *testing.T) {
	dir := t.TempDir()
	g := patternGrid(3, 3)

	pgm := filepath.Join(dir, "a.pgm")
	require.NoError(t, WriteGray(pgm, g))
	got, err := LoadGrid(pgm, false)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))

	png := filepath.Join(dir, "a.png")
	require.NoError(t, imaging.Export(g, png))
	got, err = LoadGrid(png, false)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rows())
	assert.Equal(t, 3, got.Cols())

	_, err = LoadGrid(filepath.Join(dir, "missing.pgm"), false)
	assert.ErrorIs(t, err, imaging.ErrIOFailure)
}
