// Package gba provides the typed address map of the display hardware.
package gba

import (
	"github.com/retroenv/gbaword/internal/keypad"
	"github.com/retroenv/gbaword/internal/mmio"
	"github.com/retroenv/gbaword/internal/oam"
	"github.com/retroenv/gbaword/internal/video"
)

// Physical addresses and sizes of the hardware areas.
const (
	IOBase = 0x0400_0000
	IOSize = 0x400

	DisplayControlAddr = IOBase + 0x000
	DisplayStatusAddr  = IOBase + 0x004
	VCountAddr         = IOBase + 0x006
	KeyInputAddr       = IOBase + 0x130

	PaletteBase    = 0x0500_0000
	PaletteSize    = 0x400
	BackdropAddr   = PaletteBase
	ObjPaletteAddr = PaletteBase + 0x200
	ObjPaletteSize = 0x200

	VRAMBase       = 0x0600_0000
	VRAMSize       = 0x18000
	ObjTileAddr    = VRAMBase + 0x10000
	ObjTileMemSize = 0x8000

	OAMBase = 0x0700_0000
	OAMSize = 0x400
)

// Display timing.
const (
	ScreenWidth   = 240
	ScreenHeight  = 160
	LinesPerFrame = 228
	VBlankFlag    = 1 << 0
)

// Element counts of the object regions.
const (
	ObjAttrStride    = 8
	ObjAttrCount     = OAMSize / ObjAttrStride
	ObjTileCount     = ObjTileMemSize / video.Tile4Bytes
	ObjTile8Count    = ObjTileCount - 1
	ObjTileWordCount = ObjTileMemSize / 4
	ObjColorCount    = ObjPaletteSize / 2
	ObjBankCount     = ObjColorCount / video.PaletteSize
)

// Map is the registry of all registers and memory regions used by the
// program. Every field is bound to the same bus.
type Map struct {
	DisplayControl mmio.Register[DisplayControl]
	DisplayStatus  mmio.Register[mmio.U16]
	VCount         mmio.ReadOnly[mmio.U16]
	KeyInput       mmio.ReadOnly[keypad.KeyInput]

	Backdrop        mmio.Register[video.Color]
	ObjPalette      mmio.Region[video.Color]
	ObjPaletteBanks mmio.Region[video.Palette]

	ObjTileWords mmio.Region[mmio.U32]
	ObjTiles4    mmio.Region[video.Tile4]
	// ObjTiles8 addresses 8bpp tiles in the 32 byte units that sprite
	// attributes use, so consecutive elements overlap.
	ObjTiles8 mmio.Region[video.Tile8]

	ObjAttrs mmio.Region[oam.Attr]
}

// New returns the address map bound to the given bus. It panics if a region
// does not fit its hardware area, which is a programming error in the map.
func New(bus mmio.Bus) *Map {
	return &Map{
		DisplayControl: mmio.NewRegister[DisplayControl](bus, DisplayControlAddr),
		DisplayStatus:  mmio.NewRegister[mmio.U16](bus, DisplayStatusAddr),
		VCount:         mmio.NewReadOnly[mmio.U16](bus, VCountAddr),
		KeyInput:       mmio.NewReadOnly[keypad.KeyInput](bus, KeyInputAddr),

		Backdrop: mmio.NewRegister[video.Color](bus, BackdropAddr),
		ObjPalette: mmio.MustRegion(mmio.NewRegion[video.Color](bus,
			ObjPaletteAddr, ObjColorCount, 2, ObjPaletteSize)),
		ObjPaletteBanks: mmio.MustRegion(mmio.NewRegion[video.Palette](bus,
			ObjPaletteAddr, ObjBankCount, video.PaletteSize*2, ObjPaletteSize)),

		ObjTileWords: mmio.MustRegion(mmio.NewRegion[mmio.U32](bus,
			ObjTileAddr, ObjTileWordCount, 4, ObjTileMemSize)),
		ObjTiles4: mmio.MustRegion(mmio.NewRegion[video.Tile4](bus,
			ObjTileAddr, ObjTileCount, video.Tile4Bytes, ObjTileMemSize)),
		ObjTiles8: mmio.MustRegion(mmio.NewAliasedRegion[video.Tile8](bus,
			ObjTileAddr, ObjTile8Count, video.Tile4Bytes, ObjTileMemSize)),

		ObjAttrs: mmio.MustRegion(mmio.NewRegion[oam.Attr](bus,
			OAMBase, ObjAttrCount, ObjAttrStride, OAMSize)),
	}
}

// InVBlank reports whether the display is in the vertical blank period.
func (m *Map) InVBlank() bool {
	return m.VCount.Read() >= ScreenHeight
}

// WaitVBlank blocks until the display enters the next vertical blank. If it
// is called during a vertical blank, it first waits for that blank to end.
func (m *Map) WaitVBlank() {
	for m.VCount.Read() >= ScreenHeight {
	}
	for m.VCount.Read() < ScreenHeight {
	}
}
