package oam

import (
	"errors"
	"testing"

	"github.com/retroenv/gbaword/internal/mmio"
	"github.com/retroenv/retrogolib/assert"
)

const tableBase = 0x0700_0000

// tableBus backs the sprite table and counts stores.
type tableBus struct {
	data   [0x200]uint16
	stores int
}

func (b *tableBus) Load(addr uint32, dst []uint16) {
	copy(dst, b.data[(addr-tableBase)/2:])
}

func (b *tableBus) Store(addr uint32, src []uint16) {
	b.stores++
	copy(b.data[(addr-tableBase)/2:], src)
}

func newTable(t *testing.T) (*tableBus, mmio.Region[Attr]) {
	t.Helper()
	bus := &tableBus{}
	table, err := mmio.NewRegion[Attr](bus, tableBase, 128, 8, 0x400)
	assert.NoError(t, err)
	return bus, table
}

func TestAttr_Zero(t *testing.T) {
	var a Attr
	assert.Equal(t, Square, a.Shape())
	assert.Equal(t, uint8(0), a.SizeCode())
	assert.Equal(t, Size8x8, a.TileSize())
	assert.Equal(t, 0, a.TileIndex())
	assert.Equal(t, 0, a.PaletteBank())
	assert.Equal(t, 0, a.XPos())
	assert.Equal(t, 0, a.YPos())
	assert.False(t, a.Hidden())
}

func TestAttr_Builder(t *testing.T) {
	tests := []struct {
		name     string
		attr     Attr
		expected Attr
	}{
		{
			name:     "16x16 sprite",
			attr:     Attr{}.Size(Size16x16).Tile(4).Palette(2).X(100).Y(50),
			expected: Attr{50, 0x4000 | 100, 0x2000 | 4},
		},
		{
			name:     "order irrelevant",
			attr:     Attr{}.Y(50).X(100).Palette(2).Tile(4).Size(Size16x16),
			expected: Attr{50, 0x4000 | 100, 0x2000 | 4},
		},
		{
			name:     "tall shape",
			attr:     Attr{}.Size(Size8x32),
			expected: Attr{0x8000, 0x4000, 0},
		},
		{
			name:     "wide shape",
			attr:     Attr{}.Size(Size64x32),
			expected: Attr{0x4000, 0xC000, 0},
		},
		{
			name:     "negative x wraps",
			attr:     Attr{}.X(-1),
			expected: Attr{0, 0x01ff, 0},
		},
		{
			name:     "flags",
			attr:     Attr{}.FlipH(true).FlipV(true).Hide(true).Priority(3),
			expected: Attr{0x0200, 0x3000, 0x0C00},
		},
		{
			name:     "flag cleared",
			attr:     Attr{}.Hide(true).Hide(false),
			expected: Attr{},
		},
		{
			name:     "overwrite field",
			attr:     Attr{}.Tile(1023).Tile(7).Palette(15).Palette(1),
			expected: Attr{0, 0, 0x1000 | 7},
		},
		{
			name:     "tile wraps at 10 bits",
			attr:     Attr{}.Tile(MaxTile + 1),
			expected: Attr{},
		},
		{
			name:     "tile wrap keeps other fields",
			attr:     Attr{}.Palette(3).Priority(1).Tile(MaxTile + 6),
			expected: Attr{0, 0, 0x3000 | 0x0400 | 5},
		},
		{
			name:     "palette bank wraps at 4 bits",
			attr:     Attr{}.Tile(9).Palette(16),
			expected: Attr{0, 0, 9},
		},
		{
			name:     "palette bank 17 is bank 1",
			attr:     Attr{}.Palette(17),
			expected: Attr{0, 0, 0x1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.attr)
		})
	}
}

func TestAttr_Decode(t *testing.T) {
	a := Attr{}.Size(Size32x16).Tile(513).Palette(9).X(239).Y(159).FlipV(true).Colors256(true)
	assert.Equal(t, Wide, a.Shape())
	assert.Equal(t, Size32x16, a.TileSize())
	assert.Equal(t, 513, a.TileIndex())
	assert.Equal(t, 9, a.PaletteBank())
	assert.Equal(t, 239, a.XPos())
	assert.Equal(t, 159, a.YPos())
	assert.True(t, a.FlippedV())
	assert.False(t, a.FlippedH())
	assert.True(t, a.Is256())
}

func TestTileSize_Dimensions(t *testing.T) {
	tests := []struct {
		size TileSize
		w, h int
	}{
		{Size8x8, 8, 8}, {Size16x16, 16, 16}, {Size32x32, 32, 32}, {Size64x64, 64, 64},
		{Size16x8, 16, 8}, {Size32x8, 32, 8}, {Size32x16, 32, 16}, {Size64x32, 64, 32},
		{Size8x16, 8, 16}, {Size8x32, 8, 32}, {Size16x32, 16, 32}, {Size32x64, 32, 64},
		{NewTileSize(3, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			w, h := tt.size.Dimensions()
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.size, Attr{}.Size(tt.size).TileSize())
		})
	}
}

func TestAllocator_Order(t *testing.T) {
	bus, table := newTable(t)
	alloc := NewAllocator(table, ClearOnTransition)
	alloc.BeginFrame()

	for i := range 128 {
		slot, err := alloc.AllocateAndWrite(Attr{}.Tile(i).Y(i))
		assert.NoError(t, err)
		assert.Equal(t, i, slot)
		assert.Equal(t, Attr{}.Tile(i).Y(i), table.MustIndex(i).Read())
	}
	assert.Equal(t, 128, alloc.Len())
	// one store per descriptor
	assert.Equal(t, 128, bus.stores)

	_, err := alloc.AllocateAndWrite(Attr{})
	assert.ErrorIs(t, err, ErrTableFull)
	assert.True(t, errors.Is(err, mmio.ErrOutOfRange))
	assert.Equal(t, 128, alloc.Len())
	assert.Panics(t, func() { alloc.MustAllocateAndWrite(Attr{}) })
}

func TestAllocator_ClearOnTransition(t *testing.T) {
	_, table := newTable(t)
	alloc := NewAllocator(table, ClearOnTransition)
	sprite := Attr{}.Tile(8).X(20)

	alloc.BeginFrame()
	for range 3 {
		alloc.MustAllocateAndWrite(sprite)
	}
	alloc.EndFrame()

	alloc.BeginFrame()
	alloc.MustAllocateAndWrite(sprite)
	alloc.EndFrame()

	// stale slots keep their descriptor until the table is cleared
	assert.Equal(t, sprite, table.MustIndex(2).Read())

	alloc.Clear()
	for i := range table.Len() {
		assert.Equal(t, Attr{}, table.MustIndex(i).Read())
	}
	assert.Equal(t, 0, alloc.Len())
}

func TestAllocator_ClearStale(t *testing.T) {
	_, table := newTable(t)
	alloc := NewAllocator(table, ClearStale)
	sprite := Attr{}.Tile(8).X(20)

	alloc.BeginFrame()
	for range 3 {
		alloc.MustAllocateAndWrite(sprite)
	}
	alloc.EndFrame()

	alloc.BeginFrame()
	alloc.MustAllocateAndWrite(sprite)
	alloc.EndFrame()

	assert.Equal(t, sprite, table.MustIndex(0).Read())
	assert.Equal(t, Attr{}, table.MustIndex(1).Read())
	assert.Equal(t, Attr{}, table.MustIndex(2).Read())
}
