package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// buildDDS returns a minimal DDS file: magic + 124-byte header with the
// given dimensions, no pixel payload.
func buildDDS(width, height uint32) []byte {
	buf := make([]byte, 4+headerSize)
	copy(buf, "DDS ")
	binary.LittleEndian.PutUint32(buf[4:], headerSize)
	binary.LittleEndian.PutUint32(buf[4+heightOffset:], height)
	binary.LittleEndian.PutUint32(buf[4+widthOffset:], width)
	return buf
}

func TestParse_ValidHeader(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"square", 512, 512},
		{"wide", 2048, 1024},
		{"tall", 64, 256},
		{"one pixel", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Parse(bytes.NewReader(buildDDS(tt.width, tt.height)))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if h.Width != int(tt.width) || h.Height != int(tt.height) {
				t.Errorf("got %dx%d, want %dx%d", h.Width, h.Height, tt.width, tt.height)
			}
		})
	}
}

func TestParse_IgnoresPixelPayload(t *testing.T) {
	data := append(buildDDS(128, 128), bytes.Repeat([]byte{0xAB}, 4096)...)
	h, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Width != 128 || h.Height != 128 {
		t.Errorf("got %dx%d, want 128x128", h.Width, h.Height)
	}
}

func TestParse_BadMagic(t *testing.T) {
	data := buildDDS(64, 64)
	copy(data, "PNG ")
	_, err := Parse(bytes.NewReader(data))
	if !errors.Is(err, ErrUnreadableHeader) {
		t.Errorf("err = %v, want ErrUnreadableHeader", err)
	}
}

func TestParse_Truncated(t *testing.T) {
	data := buildDDS(64, 64)
	for _, n := range []int{0, 3, 4, 60, len(data) - 1} {
		_, err := Parse(bytes.NewReader(data[:n]))
		if !errors.Is(err, ErrUnreadableHeader) {
			t.Errorf("truncated at %d: err = %v, want ErrUnreadableHeader", n, err)
		}
	}
}

func TestParse_BadHeaderSize(t *testing.T) {
	data := buildDDS(64, 64)
	binary.LittleEndian.PutUint32(data[4:], 100)
	_, err := Parse(bytes.NewReader(data))
	if !errors.Is(err, ErrUnreadableHeader) {
		t.Errorf("err = %v, want ErrUnreadableHeader", err)
	}
}

func TestParse_ZeroDimensions(t *testing.T) {
	_, err := Parse(bytes.NewReader(buildDDS(0, 64)))
	if !errors.Is(err, ErrUnreadableHeader) {
		t.Errorf("zero width: err = %v, want ErrUnreadableHeader", err)
	}
	_, err = Parse(bytes.NewReader(buildDDS(64, 0)))
	if !errors.Is(err, ErrUnreadableHeader) {
		t.Errorf("zero height: err = %v, want ErrUnreadableHeader", err)
	}
}

func TestReadHeader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stone_wall.dds")
	if err := os.WriteFile(path, buildDDS(1024, 512), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Width != 1024 || h.Height != 512 {
		t.Errorf("got %dx%d, want 1024x512", h.Width, h.Height)
	}
	if h.MaxDimension() != 1024 {
		t.Errorf("MaxDimension: got %d, want 1024", h.MaxDimension())
	}
}

func TestReadHeader_MissingFile(t *testing.T) {
	_, err := ReadHeader(filepath.Join(t.TempDir(), "nope.dds"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrUnreadableHeader) {
		t.Errorf("missing file should not be ErrUnreadableHeader: %v", err)
	}
}
