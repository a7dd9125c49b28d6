package sprite

import (
	"testing"

	"github.com/retroenv/gbaword/internal/emu"
	"github.com/retroenv/gbaword/internal/gba"
	"github.com/retroenv/gbaword/internal/mmio"
	"github.com/retroenv/gbaword/internal/video"
	"github.com/retroenv/retrogolib/assert"
)

func TestQuad(t *testing.T) {
	tests := []struct {
		k, widthTiles int
		expected      [4]int
	}{
		{k: 0, widthTiles: 8, expected: [4]int{0, 1, 8, 9}},
		{k: 1, widthTiles: 8, expected: [4]int{2, 3, 10, 11}},
		{k: 3, widthTiles: 8, expected: [4]int{6, 7, 14, 15}},
		{k: 4, widthTiles: 8, expected: [4]int{16, 17, 24, 25}},
		{k: 8, widthTiles: 8, expected: [4]int{32, 33, 40, 41}},
		{k: 0, widthTiles: 16, expected: [4]int{0, 1, 16, 17}},
		{k: 1, widthTiles: 16, expected: [4]int{2, 3, 18, 19}},
		{k: 8, widthTiles: 16, expected: [4]int{32, 33, 48, 49}},
		{k: 9, widthTiles: 16, expected: [4]int{34, 35, 50, 51}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Quad(tt.k, tt.widthTiles))
	}

	// a width below two tiles has no sprite columns
	assert.Panics(t, func() { Quad(0, 1) })
	assert.Panics(t, func() { Quad(0, 0) })
}

// numberedSheet returns the blob of a sheet whose tile i has every word set
// to i.
func numberedSheet(tiles int) []byte {
	words := make([]uint32, tiles*video.Tile4Words)
	for i := range words {
		words[i] = uint32(i / video.Tile4Words)
	}
	return video.EncodeWords(words)
}

func TestNewSheet(t *testing.T) {
	tests := []struct {
		name       string
		blob       []byte
		widthTiles int
		sprites    int
		wantErr    error
	}{
		{name: "two rows of sprites", blob: numberedSheet(32), widthTiles: 8, sprites: 8},
		{name: "odd width", blob: numberedSheet(18), widthTiles: 9, wantErr: ErrSheetWidth},
		{name: "incomplete sprite row", blob: numberedSheet(24), widthTiles: 8, wantErr: ErrSheetWidth},
		{name: "partial tile", blob: make([]byte, 40), widthTiles: 2, wantErr: video.ErrBlobSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := NewSheet(tt.blob, tt.widthTiles)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.sprites, sheet.Sprites())
			assert.Equal(t, tt.widthTiles, sheet.WidthTiles())
		})
	}
}

func TestSheet_Tile16(t *testing.T) {
	sheet, err := NewSheet(numberedSheet(32), 8)
	assert.NoError(t, err)

	tiles, err := sheet.Tile16(5)
	assert.NoError(t, err)
	for i, index := range Quad(5, 8) {
		assert.Equal(t, uint32(index), tiles[i][0])
	}

	_, err = sheet.Tile16(8)
	assert.ErrorIs(t, err, ErrSpriteRange)
	_, err = sheet.Tile(32)
	assert.ErrorIs(t, err, ErrSpriteRange)

	tile, err := sheet.Tile(31)
	assert.NoError(t, err)
	assert.Equal(t, uint32(31), tile[7])
}

func TestSheet_Upload(t *testing.T) {
	mem := emu.New(emu.WithJournal())
	m := gba.New(mem)
	sheet, err := NewSheet(numberedSheet(32), 8)
	assert.NoError(t, err)

	assert.NoError(t, sheet.Upload(m.ObjTiles4, 100, 1))
	assert.Len(t, mem.Journal(), 4)
	for i, index := range Quad(1, 8) {
		tile := m.ObjTiles4.MustIndex(100 + i).Read()
		assert.Equal(t, uint32(index), tile[0])
	}

	mem.ResetJournal()
	err = sheet.Upload(m.ObjTiles4, gba.ObjTileCount-2, 1)
	assert.ErrorIs(t, err, mmio.ErrOutOfRange)
	// a sprite that does not fit is not written partially
	assert.Empty(t, mem.Journal())
	assert.Equal(t, video.Tile4{}, m.ObjTiles4.MustIndex(gba.ObjTileCount-2).Read())
	assert.Equal(t, video.Tile4{}, m.ObjTiles4.MustIndex(gba.ObjTileCount-1).Read())

	err = sheet.Upload(m.ObjTiles4, -1, 1)
	assert.ErrorIs(t, err, mmio.ErrOutOfRange)
	assert.Empty(t, mem.Journal())
}

func TestSheet_UploadAll(t *testing.T) {
	m := gba.New(emu.New())
	sheet, err := NewSheet(numberedSheet(32), 8)
	assert.NoError(t, err)

	assert.NoError(t, sheet.UploadAll(m.ObjTiles4, 16))
	for k := range sheet.Sprites() {
		base := TileBase(16, k)
		for i, index := range Quad(k, 8) {
			assert.Equal(t, uint32(index), m.ObjTiles4.MustIndex(base+i).Read()[3])
		}
	}
	assert.Equal(t, 44, TileBase(16, 7))
}
