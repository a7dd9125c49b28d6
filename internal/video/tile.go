package video

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrPixelRange is returned for a 4bpp pixel value above 15.
	ErrPixelRange = errors.New("pixel value exceeds 4 bits")
	// ErrBlobSize is returned when tile data is not a whole number of tiles.
	ErrBlobSize = errors.New("tile data size is not a multiple of the tile size")
)

const (
	// TileWidth is the width and height of a tile in pixels.
	TileWidth = 8
	// TilePixels is the number of pixels of a tile.
	TilePixels = TileWidth * TileWidth
	// BitsPerPixel is the depth of a 4bpp tile.
	BitsPerPixel = 4
	// MaxPixel is the largest palette index of a 4bpp pixel.
	MaxPixel = 1<<BitsPerPixel - 1
	// PixelsPerWord is the number of 4bpp pixels packed into one 32-bit word.
	PixelsPerWord = 32 / BitsPerPixel
	// Tile4Words is the number of words of a 4bpp tile.
	Tile4Words = TilePixels / PixelsPerWord
	// Tile4Bytes is the size of a 4bpp tile in bytes.
	Tile4Bytes = Tile4Words * 4
	// Tile8Words is the number of words of an 8bpp tile.
	Tile8Words = TilePixels / 4
)

// Tile4 is an 8x8 tile with 4 bits per pixel. Each word holds one row of
// 8 pixels, the leftmost pixel in the lowest nibble.
type Tile4 [Tile4Words]uint32

// Halfwords implements mmio.Value.
func (Tile4) Halfwords() int { return Tile4Words * 2 }

// Encode implements mmio.Value.
func (t Tile4) Encode(dst []uint16) {
	encodeWords(dst, t[:])
}

// Decode implements mmio.Value.
func (Tile4) Decode(src []uint16) Tile4 {
	var t Tile4
	decodeWords(t[:], src)
	return t
}

// Tile8 is an 8x8 tile with 8 bits per pixel.
type Tile8 [Tile8Words]uint32

// Halfwords implements mmio.Value.
func (Tile8) Halfwords() int { return Tile8Words * 2 }

// Encode implements mmio.Value.
func (t Tile8) Encode(dst []uint16) {
	encodeWords(dst, t[:])
}

// Decode implements mmio.Value.
func (Tile8) Decode(src []uint16) Tile8 {
	var t Tile8
	decodeWords(t[:], src)
	return t
}

func encodeWords(dst []uint16, words []uint32) {
	for i, w := range words {
		dst[2*i] = uint16(w)
		dst[2*i+1] = uint16(w >> 16)
	}
}

func decodeWords(words []uint32, src []uint16) {
	for i := range words {
		words[i] = uint32(src[2*i]) | uint32(src[2*i+1])<<16
	}
}

// PackRow packs a run of 8 pixels into one word. Pixel k is stored in bits
// [4k, 4k+4), which matches the little-endian byte order of the hardware.
func PackRow(pixels []uint8) (uint32, error) {
	if len(pixels) != PixelsPerWord {
		return 0, fmt.Errorf("packing row of %d pixels, expected %d", len(pixels), PixelsPerWord)
	}

	var word uint32
	for k, px := range pixels {
		if px > MaxPixel {
			return 0, fmt.Errorf("%w: pixel %d has value %d", ErrPixelRange, k, px)
		}
		word |= uint32(px) << (k * BitsPerPixel)
	}
	return word, nil
}

// PackTile packs 64 row-major pixels into a tile.
func PackTile(pixels [TilePixels]uint8) (Tile4, error) {
	var t Tile4
	for i := range t {
		word, err := PackRow(pixels[i*PixelsPerWord : (i+1)*PixelsPerWord])
		if err != nil {
			return Tile4{}, fmt.Errorf("packing row %d: %w", i, err)
		}
		t[i] = word
	}
	return t, nil
}

// UnpackTile returns the 64 row-major pixels of a tile.
func UnpackTile(t Tile4) [TilePixels]uint8 {
	var pixels [TilePixels]uint8
	for i, word := range t {
		for k := range PixelsPerWord {
			pixels[i*PixelsPerWord+k] = uint8(word>>(k*BitsPerPixel)) & MaxPixel
		}
	}
	return pixels
}

// Pixel returns the palette index of the pixel at column x and row y.
func (t Tile4) Pixel(x, y int) uint8 {
	return uint8(t[y]>>(x*BitsPerPixel)) & MaxPixel
}

// DecodeTiles decodes little-endian tile data as produced by the tile
// compiler. The data length must be a whole number of tiles.
func DecodeTiles(data []byte) ([]Tile4, error) {
	if len(data)%Tile4Bytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobSize, len(data))
	}

	tiles := make([]Tile4, len(data)/Tile4Bytes)
	for i := range tiles {
		for j := range Tile4Words {
			offset := i*Tile4Bytes + j*4
			tiles[i][j] = binary.LittleEndian.Uint32(data[offset:])
		}
	}
	return tiles, nil
}

// DecodeWords decodes little-endian words. The data length must be a
// multiple of 4.
func DecodeWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not word aligned", ErrBlobSize, len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// EncodeWords returns the little-endian byte image of the words.
func EncodeWords(words []uint32) []byte {
	data := make([]byte, 0, len(words)*4)
	for _, w := range words {
		data = binary.LittleEndian.AppendUint32(data, w)
	}
	return data
}

// EncodeTiles returns the little-endian byte image of the tiles.
func EncodeTiles(tiles []Tile4) []byte {
	data := make([]byte, 0, len(tiles)*Tile4Bytes)
	for _, t := range tiles {
		for _, w := range t {
			data = binary.LittleEndian.AppendUint32(data, w)
		}
	}
	return data
}
