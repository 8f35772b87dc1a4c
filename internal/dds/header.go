// Package dds reads dimension metadata from DDS texture containers. Only the
// fixed-size header region is read; pixel payload is never touched, so
// inspection cost is constant regardless of file size.
package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnreadableHeader is wrapped by every structural failure: missing magic,
// truncated header, or nonsensical dimensions. Callers use errors.Is to
// distinguish a bad container from an I/O error on a healthy file.
var ErrUnreadableHeader = errors.New("unreadable DDS header")

const (
	magic = "DDS "
	// headerSize is the fixed DDS_HEADER size (the dwSize field must hold
	// this value in a conforming file).
	headerSize = 124

	heightOffset = 8
	widthOffset  = 12
)

// Header holds the dimensions parsed from a DDS header.
type Header struct {
	Width  int
	Height int
}

// MaxDimension returns the larger of width and height.
func (h Header) MaxDimension() int {
	if h.Width > h.Height {
		return h.Width
	}
	return h.Height
}

// ReadHeader opens path and parses width and height from the DDS header.
// It reads exactly the 4-byte magic plus the 124-byte header.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a DDS magic and header from r and extracts the dimensions.
// Exported for testing without files on disk.
func Parse(r io.Reader) (Header, error) {
	var buf [4 + headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: truncated (%v)", ErrUnreadableHeader, err)
	}
	if string(buf[:4]) != magic {
		return Header{}, fmt.Errorf("%w: missing 'DDS ' magic", ErrUnreadableHeader)
	}

	header := buf[4:]
	if size := binary.LittleEndian.Uint32(header[0:4]); size != headerSize {
		return Header{}, fmt.Errorf("%w: dwSize=%d, want %d", ErrUnreadableHeader, size, headerSize)
	}

	h := binary.LittleEndian.Uint32(header[heightOffset : heightOffset+4])
	w := binary.LittleEndian.Uint32(header[widthOffset : widthOffset+4])
	if w == 0 || h == 0 {
		return Header{}, fmt.Errorf("%w: zero dimension %dx%d", ErrUnreadableHeader, w, h)
	}

	return Header{Width: int(w), Height: int(h)}, nil
}
