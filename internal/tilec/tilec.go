// Package tilec compiles a source bitmap into packed 4bpp hardware tiles.
package tilec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/retroenv/gbaword/internal/video"
	"github.com/retroenv/retrogolib/set"
)

var (
	// ErrDimensions is returned for images whose size is not a multiple of
	// the tile size.
	ErrDimensions = errors.New("image dimensions are not a multiple of 8")
	// ErrIndexRange is returned for a palette index above 15.
	ErrIndexRange = errors.New("palette index exceeds 4 bits")
	// ErrNotIndexed is returned when the index channel is requested for an
	// image without a palette.
	ErrNotIndexed = errors.New("image is not paletted")
	// ErrUnknownChannel is returned for an unsupported channel name.
	ErrUnknownChannel = errors.New("unknown channel")
)

// Channel selects which color component of the source image holds the
// palette index of a pixel.
type Channel int

// Supported channels. Red is the default, green and blue are then free to
// give indices a distinct look while editing the image.
const (
	Red Channel = iota
	Green
	Blue
	Index
)

var channelNames = map[Channel]string{
	Red:   "red",
	Green: "green",
	Blue:  "blue",
	Index: "index",
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// ParseChannel returns the channel of the given name.
func ParseChannel(name string) (Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Red, nil
	}
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownChannel, name)
}

// FormatError describes an invalid pixel of the source image.
type FormatError struct {
	X, Y int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pixel (%d, %d): %v", e.X, e.Y, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Options controls the compilation.
type Options struct {
	Channel Channel
}

// Stats describes the compiled tiles.
type Stats struct {
	Tiles      int
	EmptyTiles int            // tiles with only transparent pixels
	Colors     set.Set[uint8] // palette indices used
}

// Result is a compiled tile blob.
type Result struct {
	Words       []uint32
	WidthTiles  int
	HeightTiles int
	Stats       Stats
}

// Tiles returns the compiled words grouped by tile.
func (r *Result) Tiles() []video.Tile4 {
	tiles := make([]video.Tile4, len(r.Words)/video.Tile4Words)
	for i := range tiles {
		copy(tiles[i][:], r.Words[i*video.Tile4Words:])
	}
	return tiles
}

// Bytes returns the little-endian byte image of the compiled words.
func (r *Result) Bytes() []byte {
	return video.EncodeWords(r.Words)
}

// TileIndex returns the linear index of the tile that contains the pixel at
// x, y in an image of the given width in tiles.
func TileIndex(x, y, widthTiles int) int {
	return x/video.TileWidth + (y/video.TileWidth)*widthTiles
}

// TileOffset returns the position of the pixel at x, y inside its tile.
func TileOffset(x, y int) int {
	return x%video.TileWidth + (y%video.TileWidth)*video.TileWidth
}

// Compile re-orders the pixels of the image into tiles, left to right and
// top to bottom, and packs every run of 8 pixels into one word.
func Compile(img image.Image, opts Options) (*Result, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 || width%video.TileWidth != 0 || height%video.TileWidth != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}

	indexOf, err := indexReader(img, opts.Channel)
	if err != nil {
		return nil, err
	}

	widthTiles := width / video.TileWidth
	pixels := make([]uint8, width*height)
	for y := range height {
		for x := range width {
			index := indexOf(bounds.Min.X+x, bounds.Min.Y+y)
			if index > video.MaxPixel {
				return nil, &FormatError{X: x, Y: y, Err: fmt.Errorf("%w: %d", ErrIndexRange, index)}
			}
			pos := TileIndex(x, y, widthTiles)*video.TilePixels + TileOffset(x, y)
			pixels[pos] = uint8(index)
		}
	}

	result := &Result{
		Words:       make([]uint32, 0, len(pixels)/video.PixelsPerWord),
		WidthTiles:  widthTiles,
		HeightTiles: height / video.TileWidth,
		Stats: Stats{
			Colors: set.New[uint8](),
		},
	}

	for start := 0; start < len(pixels); start += video.PixelsPerWord {
		word, err := video.PackRow(pixels[start : start+video.PixelsPerWord])
		if err != nil {
			return nil, fmt.Errorf("packing pixels at %d: %w", start, err)
		}
		result.Words = append(result.Words, word)
	}

	for tile := range len(pixels) / video.TilePixels {
		empty := true
		for _, px := range pixels[tile*video.TilePixels : (tile+1)*video.TilePixels] {
			result.Stats.Colors.Add(px)
			if px != 0 {
				empty = false
			}
		}
		if empty {
			result.Stats.EmptyTiles++
		}
	}
	result.Stats.Tiles = len(pixels) / video.TilePixels

	return result, nil
}

// indexReader returns a function that reads the palette index of a pixel.
func indexReader(img image.Image, channel Channel) (func(x, y int) int, error) {
	switch channel {
	case Red, Green, Blue:
		// unpremultiplied, alpha does not scale the index
		return func(x, y int) int {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			return int([...]uint8{c.R, c.G, c.B}[channel])
		}, nil

	case Index:
		paletted, ok := img.(image.PalettedImage)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotIndexed, img)
		}
		return func(x, y int) int {
			return int(paletted.ColorIndexAt(x, y))
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
}
