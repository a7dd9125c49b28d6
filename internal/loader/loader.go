// Package loader handles sprite sheet image loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for an image file of unknown type.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Loader handles loading image files from disk.
type Loader struct{}

// New creates a new image loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and decodes an image file, the format is selected by the file
// extension.
func (l *Loader) Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.decode(file, filepath.Ext(path))
}

// LoadFromBytes decodes an image from memory. This is useful for testing
// and programmatic usage where the image is already in memory.
func (l *Loader) LoadFromBytes(data []byte, ext string) (image.Image, error) {
	return l.decode(bytes.NewReader(data), ext)
}

func (l *Loader) decode(reader io.Reader, ext string) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(ext) {
	case ".bmp":
		img, err = bmp.Decode(reader)
	case ".png":
		img, err = png.Decode(reader)
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s image: %w", strings.TrimPrefix(ext, "."), err)
	}
	return img, nil
}
