// Package oam encodes sprite descriptors and allocates sprite table slots.
package oam

// Attr is a sprite descriptor of three attribute halfwords. All builder
// methods return a modified copy, fields occupy disjoint bits so the order
// of calls does not matter. The zero value is a visible 8x8 square sprite
// using tile 0 and palette 0 at position 0, 0.
type Attr [3]uint16

const (
	yMask        = 0x00ff
	hideBit      = 1 << 9
	mosaicBit    = 1 << 12
	colors256Bit = 1 << 13
	shapeShift   = 14

	xMask     = 0x01ff
	flipHBit  = 1 << 12
	flipVBit  = 1 << 13
	sizeShift = 14

	tileMask      = 0x03ff
	priorityShift = 10
	paletteShift  = 12
)

// MaxTile is the largest tile number an attribute can reference.
const MaxTile = tileMask

func setBit(v uint16, bit uint16, on bool) uint16 {
	if on {
		return v | bit
	}
	return v &^ bit
}

// Size sets shape and size code.
func (a Attr) Size(s TileSize) Attr {
	a[0] = a[0]&^(3<<shapeShift) | uint16(s.Shape())<<shapeShift
	a[1] = a[1]&^(3<<sizeShift) | uint16(s.Code())<<sizeShift
	return a
}

// Tile sets the number of the first tile, in 32 byte units of object tile
// memory. Values are truncated to 10 bits, so tile MaxTile+1 wraps to 0.
// Callers keep n in [0, MaxTile].
func (a Attr) Tile(n int) Attr {
	a[2] = a[2]&^tileMask | uint16(n)&tileMask
	return a
}

// Palette sets the palette bank 0-15 of a 4bpp sprite. Values are
// truncated to 4 bits, bank 16 wraps to 0.
func (a Attr) Palette(bank int) Attr {
	a[2] = a[2]&^(0xf<<paletteShift) | (uint16(bank)&0xf)<<paletteShift
	return a
}

// Priority sets the drawing priority 0-3 relative to backgrounds.
func (a Attr) Priority(p int) Attr {
	a[2] = a[2]&^(3<<priorityShift) | (uint16(p)&3)<<priorityShift
	return a
}

// X sets the horizontal position. Negative values wrap into the 9 bit
// field which places the sprite partly off the left edge.
func (a Attr) X(x int) Attr {
	a[1] = a[1]&^xMask | uint16(x)&xMask
	return a
}

// Y sets the vertical position, wrapping at 256.
func (a Attr) Y(y int) Attr {
	a[0] = a[0]&^yMask | uint16(y)&yMask
	return a
}

// FlipH mirrors the sprite horizontally.
func (a Attr) FlipH(on bool) Attr {
	a[1] = setBit(a[1], flipHBit, on)
	return a
}

// FlipV mirrors the sprite vertically.
func (a Attr) FlipV(on bool) Attr {
	a[1] = setBit(a[1], flipVBit, on)
	return a
}

// Hide disables rendering of the sprite.
func (a Attr) Hide(on bool) Attr {
	a[0] = setBit(a[0], hideBit, on)
	return a
}

// Mosaic enables the mosaic effect.
func (a Attr) Mosaic(on bool) Attr {
	a[0] = setBit(a[0], mosaicBit, on)
	return a
}

// Colors256 selects 8bpp tiles with a single 256 color palette.
func (a Attr) Colors256(on bool) Attr {
	a[0] = setBit(a[0], colors256Bit, on)
	return a
}

// Shape returns the shape field.
func (a Attr) Shape() Shape { return Shape(a[0] >> shapeShift) }

// SizeCode returns the size field.
func (a Attr) SizeCode() uint8 { return uint8(a[1] >> sizeShift) }

// TileSize returns the combined shape and size.
func (a Attr) TileSize() TileSize { return NewTileSize(a.Shape(), a.SizeCode()) }

// TileIndex returns the tile field.
func (a Attr) TileIndex() int { return int(a[2] & tileMask) }

// PaletteBank returns the palette bank field.
func (a Attr) PaletteBank() int { return int(a[2] >> paletteShift) }

// PriorityLevel returns the priority field.
func (a Attr) PriorityLevel() int { return int(a[2]>>priorityShift) & 3 }

// XPos returns the raw 9 bit horizontal position.
func (a Attr) XPos() int { return int(a[1] & xMask) }

// YPos returns the raw 8 bit vertical position.
func (a Attr) YPos() int { return int(a[0] & yMask) }

// Hidden reports whether rendering is disabled.
func (a Attr) Hidden() bool { return a[0]&hideBit != 0 }

// FlippedH reports whether the sprite is mirrored horizontally.
func (a Attr) FlippedH() bool { return a[1]&flipHBit != 0 }

// FlippedV reports whether the sprite is mirrored vertically.
func (a Attr) FlippedV() bool { return a[1]&flipVBit != 0 }

// Is256 reports whether the sprite uses 8bpp tiles.
func (a Attr) Is256() bool { return a[0]&colors256Bit != 0 }

// Halfwords implements mmio.Value.
func (Attr) Halfwords() int { return len(Attr{}) }

// Encode implements mmio.Value.
func (a Attr) Encode(dst []uint16) { copy(dst, a[:]) }

// Decode implements mmio.Value.
func (Attr) Decode(src []uint16) Attr {
	var a Attr
	copy(a[:], src)
	return a
}
