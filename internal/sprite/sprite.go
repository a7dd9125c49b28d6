// Package sprite maps 16x16 sprites of a compiled sheet to their 8x8 tiles
// and uploads them to object tile memory.
package sprite

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbaword/internal/mmio"
	"github.com/retroenv/gbaword/internal/video"
)

var (
	// ErrSheetWidth is returned for a sheet that is not a whole number of
	// sprites wide or high.
	ErrSheetWidth = errors.New("sheet size is not a multiple of the sprite size")
	// ErrSpriteRange is returned for a sprite index outside of the sheet.
	ErrSpriteRange = errors.New("sprite index out of range")
)

// TilesPerSprite is the number of 8x8 tiles of a 16x16 sprite.
const TilesPerSprite = 4

// Quad returns the tile indices of sprite k in a sheet that is widthTiles
// tiles wide, in the order top left, top right, bottom left, bottom right.
// Sprites are numbered left to right, top to bottom. widthTiles must be even
// and at least 2, as NewSheet guarantees for a Sheet; Quad panics otherwise.
func Quad(k, widthTiles int) [TilesPerSprite]int {
	perRow := widthTiles / 2
	topLeft := 2 * ((k/perRow)*widthTiles + k%perRow)
	return [TilesPerSprite]int{
		topLeft,
		topLeft + 1,
		topLeft + widthTiles,
		topLeft + widthTiles + 1,
	}
}

// Sheet is a compiled sprite sheet.
type Sheet struct {
	tiles      []video.Tile4
	widthTiles int
}

// NewSheet decodes a compiled tile blob of a sheet that is widthTiles tiles
// wide.
func NewSheet(blob []byte, widthTiles int) (*Sheet, error) {
	if widthTiles <= 0 || widthTiles%2 != 0 {
		return nil, fmt.Errorf("%w: width of %d tiles", ErrSheetWidth, widthTiles)
	}

	tiles, err := video.DecodeTiles(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding sheet: %w", err)
	}
	if len(tiles)%(2*widthTiles) != 0 {
		return nil, fmt.Errorf("%w: %d tiles in rows of %d", ErrSheetWidth, len(tiles), widthTiles)
	}

	return &Sheet{
		tiles:      tiles,
		widthTiles: widthTiles,
	}, nil
}

// WidthTiles returns the width of the sheet in tiles.
func (s *Sheet) WidthTiles() int {
	return s.widthTiles
}

// Len returns the number of 8x8 tiles.
func (s *Sheet) Len() int {
	return len(s.tiles)
}

// Sprites returns the number of 16x16 sprites.
func (s *Sheet) Sprites() int {
	return len(s.tiles) / TilesPerSprite
}

// Tile returns the 8x8 tile i.
func (s *Sheet) Tile(i int) (video.Tile4, error) {
	if i < 0 || i >= len(s.tiles) {
		return video.Tile4{}, fmt.Errorf("%w: tile %d, sheet has %d", ErrSpriteRange, i, len(s.tiles))
	}
	return s.tiles[i], nil
}

// Tile16 returns the four tiles of sprite k.
func (s *Sheet) Tile16(k int) ([TilesPerSprite]video.Tile4, error) {
	var result [TilesPerSprite]video.Tile4
	if k < 0 || k >= s.Sprites() {
		return result, fmt.Errorf("%w: sprite %d, sheet has %d", ErrSpriteRange, k, s.Sprites())
	}

	for i, index := range Quad(k, s.widthTiles) {
		result[i] = s.tiles[index]
	}
	return result, nil
}

// Upload writes the four tiles of sprite k to the tile slots starting at
// slot, one store per tile. A sprite attribute of size 16x16 with
// one dimensional mapping then references the sprite by slot.
func (s *Sheet) Upload(dst mmio.Region[video.Tile4], slot, k int) error {
	tiles, err := s.Tile16(k)
	if err != nil {
		return err
	}

	// all four slots are checked before the first store
	var regs [TilesPerSprite]mmio.Register[video.Tile4]
	for i := range regs {
		reg, err := dst.Index(slot + i)
		if err != nil {
			return fmt.Errorf("uploading sprite %d: %w", k, err)
		}
		regs[i] = reg
	}

	for i, tile := range tiles {
		regs[i].Write(tile)
	}
	return nil
}

// UploadAll writes all sprites of the sheet, sprite k to the slots
// starting at TileBase(first, k).
func (s *Sheet) UploadAll(dst mmio.Region[video.Tile4], first int) error {
	for k := range s.Sprites() {
		if err := s.Upload(dst, TileBase(first, k), k); err != nil {
			return err
		}
	}
	return nil
}

// TileBase returns the first tile slot of sprite k uploaded by UploadAll.
func TileBase(first, k int) int {
	return first + k*TilesPerSprite
}
