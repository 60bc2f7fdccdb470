package netpbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/raster-tools/internal/imaging"
)

// Magic tokens of the supported containers.
const (
	MagicGrayASCII = "P2"
	MagicGrayRaw   = "P5"
	MagicColorRaw  = "P6"
)

// MaxDimension bounds the width and height a header may declare.
const MaxDimension = imaging.MaxDimension

// maxToken bounds a header token so binary garbage cannot grow one forever.
const maxToken = 16

// Header is the parsed text header of a container.
type Header struct {
	Magic  string
	Width  int
	Height int
	MaxVal int
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func skipSpace(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			return br.UnreadByte()
		}
	}
}

// readToken returns the next run of non-whitespace bytes.
func readToken(br *bufio.Reader) (string, error) {
	if err := skipSpace(br); err != nil {
		return "", err
	}
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			if err := br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		tok = append(tok, b)
		if len(tok) > maxToken {
			return "", fmt.Errorf("header token %q too long: %w", tok, imaging.ErrInvalidFormat)
		}
	}
	return string(tok), nil
}

// skipComments skips the whitespace after the magic token, then discards
// each following line whose first byte is '#'. The reader is left at the
// first byte of the first line that is not a comment.
func skipComments(br *bufio.Reader) error {
	if err := skipSpace(br); err != nil {
		return err
	}
	for {
		b, err := br.Peek(1)
		if err != nil {
			return err
		}
		if b[0] != '#' {
			return nil
		}
		if _, err := br.ReadString('\n'); err != nil {
			return err
		}
	}
}

func readInt(br *bufio.Reader, what string) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", what, tok, imaging.ErrInvalidFormat)
	}
	return n, nil
}

// ReadHeader parses the magic token, comment lines and the width, height
// and maximum sample fields. The reader is left just past the maximum
// sample token.
func ReadHeader(br *bufio.Reader) (Header, error) {
	var h Header
	var err error

	if h.Magic, err = readToken(br); err != nil {
		return h, headerError("magic", err)
	}
	if err = skipComments(br); err != nil {
		return h, headerError("comments", err)
	}
	if h.Width, err = readInt(br, "width"); err != nil {
		return h, headerError("width", err)
	}
	if h.Height, err = readInt(br, "height"); err != nil {
		return h, headerError("height", err)
	}
	if h.MaxVal, err = readInt(br, "maximum sample"); err != nil {
		return h, headerError("maximum sample", err)
	}

	if h.Width <= 0 || h.Height <= 0 || h.Width > MaxDimension || h.Height > MaxDimension {
		return h, fmt.Errorf("unsupported dimensions %dx%d: %w", h.Width, h.Height, imaging.ErrInvalidFormat)
	}
	return h, nil
}

func headerError(field string, err error) error {
	if errors.Is(err, imaging.ErrInvalidFormat) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("header ends before %s: %w", field, imaging.ErrInvalidFormat)
	}
	return fmt.Errorf("reading header %s: %w: %w", field, imaging.ErrIOFailure, err)
}

// Sniff reads the magic token at the start of r and reports it if it names
// a supported container.
func Sniff(r io.Reader) (string, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return "", fmt.Errorf("reading magic: %w", imaging.ErrInvalidFormat)
	}
	switch m := string(magic[:]); m {
	case MagicGrayASCII, MagicGrayRaw, MagicColorRaw:
		return m, nil
	default:
		return "", fmt.Errorf("unknown magic %q: %w", m, imaging.ErrInvalidFormat)
	}
}

// readTail reads the last n bytes of r.
func readTail(r io.ReadSeeker, n int) ([]byte, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seeking to end: %w: %w", imaging.ErrIOFailure, err)
	}
	if size < int64(n) {
		return nil, fmt.Errorf("body needs %d bytes, file holds %d: %w", n, size, imaging.ErrTruncatedBody)
	}
	if _, err := r.Seek(size-int64(n), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to body: %w: %w", imaging.ErrIOFailure, err)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("reading body: %w", imaging.ErrTruncatedBody)
	}
	return body, nil
}
