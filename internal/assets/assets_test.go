package assets

import (
	"os"
	"testing"

	"github.com/retroenv/gbaword/internal/sprite"
	"github.com/retroenv/gbaword/internal/tilec"
	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/image/bmp"
)

func TestTiles_UpToDate(t *testing.T) {
	f, err := os.Open("spritesheet.bmp")
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := bmp.Decode(f)
	assert.NoError(t, err)

	result, err := tilec.Compile(img, tilec.Options{Channel: tilec.Red})
	assert.NoError(t, err)
	assert.Equal(t, SheetWidthTiles, result.WidthTiles)
	// blob size is width times height divided by 2
	assert.Equal(t, img.Bounds().Dx()*img.Bounds().Dy()/2, len(Tiles))
	assert.Equal(t, result.Bytes(), Tiles, "tiles.bin is stale, run go generate")
	assert.Equal(t, 4, result.Stats.Colors.Size())
}

func TestSheet(t *testing.T) {
	sheet, err := sprite.NewSheet(Tiles, SheetWidthTiles)
	assert.NoError(t, err)
	assert.Equal(t, 32, sheet.Sprites())

	// letter tiles have a border in the top left corner
	k, ok := Letter('Q')
	assert.True(t, ok)
	tiles, err := sheet.Tile16(k)
	assert.NoError(t, err)
	assert.Equal(t, uint8(Border), tiles[0].Pixel(0, 0))
	assert.Equal(t, uint8(Fill), tiles[0].Pixel(1, 1))

	tiles, err = sheet.Tile16(Blank)
	assert.NoError(t, err)
	assert.Equal(t, uint8(Fill), tiles[3].Pixel(0, 0))

	tiles, err = sheet.Tile16(Cursor)
	assert.NoError(t, err)
	assert.Equal(t, uint8(Glyph), tiles[0].Pixel(0, 0))
	assert.Equal(t, uint8(Transparent), tiles[3].Pixel(0, 0))

	_, ok = Letter('a')
	assert.False(t, ok)
}
