package oam

import "fmt"

// Shape selects the aspect ratio of a sprite.
type Shape uint8

// Sprite shapes.
const (
	Square Shape = iota
	Wide
	Tall
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Wide:
		return "wide"
	case Tall:
		return "tall"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// TileSize is a combination of shape and size code, the shape in bits 2-3
// and the size code in bits 0-1.
type TileSize uint8

// All valid sprite dimensions, width by height in pixels.
const (
	Size8x8   = TileSize(Square)<<2 | 0
	Size16x16 = TileSize(Square)<<2 | 1
	Size32x32 = TileSize(Square)<<2 | 2
	Size64x64 = TileSize(Square)<<2 | 3
	Size16x8  = TileSize(Wide)<<2 | 0
	Size32x8  = TileSize(Wide)<<2 | 1
	Size32x16 = TileSize(Wide)<<2 | 2
	Size64x32 = TileSize(Wide)<<2 | 3
	Size8x16  = TileSize(Tall)<<2 | 0
	Size8x32  = TileSize(Tall)<<2 | 1
	Size16x32 = TileSize(Tall)<<2 | 2
	Size32x64 = TileSize(Tall)<<2 | 3
)

var dimensions = [3][4][2]int{
	Square: {{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	Wide:   {{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	Tall:   {{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// NewTileSize combines a shape and a size code.
func NewTileSize(shape Shape, size uint8) TileSize {
	return TileSize(shape&3)<<2 | TileSize(size&3)
}

// Shape returns the shape part.
func (s TileSize) Shape() Shape {
	return Shape(s>>2) & 3
}

// Code returns the size code part.
func (s TileSize) Code() uint8 {
	return uint8(s) & 3
}

// Valid reports whether the combination exists on hardware. Shape 3 is
// prohibited.
func (s TileSize) Valid() bool {
	return s.Shape() <= Tall
}

// Dimensions returns the width and height in pixels, or 0, 0 for an
// invalid combination.
func (s TileSize) Dimensions() (width, height int) {
	if !s.Valid() {
		return 0, 0
	}
	d := dimensions[s.Shape()][s.Code()]
	return d[0], d[1]
}

// Tiles returns the width and height in 8x8 tiles.
func (s TileSize) Tiles() (width, height int) {
	w, h := s.Dimensions()
	return w / 8, h / 8
}

func (s TileSize) String() string {
	w, h := s.Dimensions()
	if w == 0 {
		return fmt.Sprintf("invalid(%d)", uint8(s))
	}
	return fmt.Sprintf("%dx%d", w, h)
}
