// Package video defines the value types of palette and tile memory.
package video

import (
	"errors"
	"fmt"
)

// ErrChannelRange is returned for a color channel outside of 0-31.
var ErrChannelRange = errors.New("color channel out of range")

// MaxChannel is the largest value of a 5 bit color channel.
const MaxChannel = 31

// Color is a 15-bit RGB color, 5 bits per channel with red in the low bits.
type Color uint16

// Named colors.
const (
	Black Color = 0
	Red   Color = MaxChannel
	Green Color = MaxChannel << 5
	Blue  Color = MaxChannel << 10
	White Color = Red | Green | Blue
)

// RGB returns the color of the given channels. Channels are masked to 5 bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0x1f) | uint16(g&0x1f)<<5 | uint16(b&0x1f)<<10)
}

// NewColor returns the color of the given channels or an error if any
// channel exceeds MaxChannel.
func NewColor(r, g, b uint8) (Color, error) {
	if r > MaxChannel || g > MaxChannel || b > MaxChannel {
		return 0, fmt.Errorf("%w: rgb(%d, %d, %d)", ErrChannelRange, r, g, b)
	}
	return RGB(r, g, b), nil
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c & 0x1f) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c>>5) & 0x1f }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c>>10) & 0x1f }

// RGBA8 expands the color to 8 bits per channel.
func (c Color) RGBA8() (r, g, b uint8) {
	expand := func(v uint8) uint8 { return v<<3 | v>>2 }
	return expand(c.R()), expand(c.G()), expand(c.B())
}

// Halfwords implements mmio.Value.
func (Color) Halfwords() int { return 1 }

// Encode implements mmio.Value.
func (c Color) Encode(dst []uint16) { dst[0] = uint16(c) & 0x7fff }

// Decode implements mmio.Value.
func (Color) Decode(src []uint16) Color { return Color(src[0] & 0x7fff) }

// PaletteSize is the number of colors in one 4bpp palette bank.
const PaletteSize = 16

// Palette is one bank of 16 colors. Color 0 is transparent for sprites.
type Palette [PaletteSize]Color

// Halfwords implements mmio.Value.
func (Palette) Halfwords() int { return PaletteSize }

// Encode implements mmio.Value.
func (p Palette) Encode(dst []uint16) {
	for i, c := range p {
		c.Encode(dst[i:])
	}
}

// Decode implements mmio.Value.
func (Palette) Decode(src []uint16) Palette {
	var p Palette
	for i := range p {
		p[i] = Color(src[i] & 0x7fff)
	}
	return p
}
