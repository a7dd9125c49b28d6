// Package assets contains the compiled sprite sheet of the program image.
package assets

import (
	_ "embed"
)

//go:generate go run ../../cmd/tilec -q -o tiles.bin spritesheet.bmp

// Tiles is the compiled sprite sheet. Palette index 0 is transparent, 1 is
// the key fill, 2 the glyph and 3 the key border.
//
//go:embed tiles.bin
var Tiles []byte

// SheetWidthTiles is the width of the sprite sheet in 8x8 tiles.
const SheetWidthTiles = 16

// Sprite numbers of the sheet.
const (
	FirstLetter = 0
	Blank       = 26
	Cursor      = 27
)

// Palette indices used by the sheet.
const (
	Transparent = iota
	Fill
	Glyph
	Border
)

// Letter returns the sprite number of an upper case letter, or false for
// any other rune.
func Letter(r rune) (int, bool) {
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return FirstLetter + int(r-'A'), true
}
