package emu

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/retroenv/gbaword/internal/gba"
	"github.com/retroenv/gbaword/internal/oam"
	"github.com/retroenv/gbaword/internal/video"
	"golang.org/x/image/draw"
)

const (
	affineBit   = 1 << 8
	objPalette  = 0x200
	objTileBase = gba.ObjTileAddr - gba.VRAMBase
	tileUnits   = gba.ObjTileCount
	// tilesPerRow is the row width of the object tile area in 2D mapping.
	tilesPerRow = 32
)

// Render returns the sprites of the visible frame drawn over the backdrop.
// Only regular 4bpp and 8bpp sprites are drawn, affine sprites are skipped.
func (m *Memory) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, gba.ScreenWidth, gba.ScreenHeight))
	f := &m.visible

	if f.control.IsForcedBlank() {
		draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		return img
	}

	backdrop := f.color(0)
	draw.Draw(img, img.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)

	if !f.control.ObjVisible() {
		return img
	}

	// lower priority values and lower slots are drawn on top
	for priority := 3; priority >= 0; priority-- {
		for slot := gba.ObjAttrCount - 1; slot >= 0; slot-- {
			attr := f.attr(slot)
			if attr.PriorityLevel() != priority || attr.Hidden() || attr[0]&affineBit != 0 {
				continue
			}
			f.drawSprite(img, attr)
		}
	}
	return img
}

func (f *frame) attr(slot int) oam.Attr {
	offset := slot * gba.ObjAttrStride
	return oam.Attr{
		binary.LittleEndian.Uint16(f.oam[offset:]),
		binary.LittleEndian.Uint16(f.oam[offset+2:]),
		binary.LittleEndian.Uint16(f.oam[offset+4:]),
	}
}

// color returns the palette entry at the given byte offset.
func (f *frame) color(offset int) color.RGBA {
	c := video.Color(binary.LittleEndian.Uint16(f.palette[offset:]) & 0x7fff)
	r, g, b := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (f *frame) drawSprite(img *image.RGBA, attr oam.Attr) {
	width, height := attr.TileSize().Dimensions()
	if width == 0 {
		return
	}

	x0, y0 := attr.XPos(), attr.YPos()
	if x0 >= gba.ScreenWidth {
		x0 -= 512
	}
	if y0+height > 256 {
		y0 -= 256
	}

	for py := range height {
		for px := range width {
			sx, sy := px, py
			if attr.FlippedH() {
				sx = width - 1 - px
			}
			if attr.FlippedV() {
				sy = height - 1 - py
			}

			offset, ok := f.pixel(attr, width, sx, sy)
			if !ok {
				continue
			}
			img.SetRGBA(x0+px, y0+py, f.color(offset))
		}
	}
}

// pixel returns the palette offset of a sprite pixel, or false if the pixel
// is transparent.
func (f *frame) pixel(attr oam.Attr, width, x, y int) (int, bool) {
	tx, ty := x/video.TileWidth, y/video.TileWidth
	col, row := x%video.TileWidth, y%video.TileWidth
	widthTiles := width / video.TileWidth

	if attr.Is256() {
		tile := attr.TileIndex() &^ 1
		if f.control.IsObj1D() {
			tile += (ty*widthTiles + tx) * 2
		} else {
			tile += ty*tilesPerRow + tx*2
		}
		addr := objTileBase + (tile%tileUnits)*video.Tile4Bytes + row*8 + col
		index := int(f.vram[addr%len(f.vram)])
		if index == 0 {
			return 0, false
		}
		return objPalette + index*2, true
	}

	tile := attr.TileIndex()
	if f.control.IsObj1D() {
		tile += ty*widthTiles + tx
	} else {
		tile += ty*tilesPerRow + tx
	}
	addr := objTileBase + (tile%tileUnits)*video.Tile4Bytes + row*4 + col/2
	index := int(f.vram[addr] >> (4 * (col & 1)) & 0xf)
	if index == 0 {
		return 0, false
	}
	return objPalette + attr.PaletteBank()*video.PaletteSize*2 + index*2, true
}

// SavePNG writes the rendered visible frame as PNG, scaled by the given
// integer factor.
func (m *Memory) SavePNG(w io.Writer, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	var img image.Image = m.Render()
	if scale > 1 {
		bounds := img.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
