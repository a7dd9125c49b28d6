// Package demo shows a row of letter keys with a cursor that follows the
// keypad. It runs unchanged on the device and on the host emulator.
package demo

import (
	"fmt"
	"strings"

	"github.com/retroenv/gbaword/internal/assets"
	"github.com/retroenv/gbaword/internal/gba"
	"github.com/retroenv/gbaword/internal/keypad"
	"github.com/retroenv/gbaword/internal/oam"
	"github.com/retroenv/gbaword/internal/sprite"
	"github.com/retroenv/gbaword/internal/video"
)

// WordLength is the number of letter keys.
const WordLength = 5

const (
	spriteSize  = 16
	spacing     = 4
	paletteBank = 0

	// firstTile is the object tile slot of sprite 0. Tile 0 stays
	// transparent so cleared table slots draw nothing.
	firstTile = sprite.TilesPerSprite

	originY = (gba.ScreenHeight - spriteSize) / 2
	originX = (gba.ScreenWidth - WordLength*(spriteSize+spacing) + spacing) / 2
)

// Palette is the palette bank of the sprite sheet.
var Palette = video.Palette{
	assets.Fill:   video.RGB(28, 28, 26),
	assets.Glyph:  video.RGB(2, 2, 4),
	assets.Border: video.RGB(10, 10, 12),
}

// Backdrops are the background colors that Select cycles through.
var Backdrops = [...]video.Color{
	video.RGB(4, 10, 18),
	video.RGB(4, 16, 8),
	video.RGB(18, 6, 6),
	video.Black,
}

// Demo is the state of the letter row.
type Demo struct {
	hw    *gba.Map
	sheet *sprite.Sheet
	alloc *oam.Allocator

	word     [WordLength]int // sprite numbers of the keys
	cursor   int
	backdrop int
	keys     keypad.KeyInput // keys of the previous step
}

// New uploads the sprite sheet and palette and turns on sprite display.
func New(hw *gba.Map, policy oam.ClearPolicy) (*Demo, error) {
	sheet, err := sprite.NewSheet(assets.Tiles, assets.SheetWidthTiles)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite sheet: %w", err)
	}

	d := &Demo{
		hw:    hw,
		sheet: sheet,
		alloc: oam.NewAllocator(hw.ObjAttrs, policy),
		keys:  keypad.Released,
	}
	for i := range d.word {
		d.word[i] = assets.Blank
	}

	hw.DisplayControl.Write(gba.DisplayControl(0).ForcedBlank(true))
	if err := sheet.UploadAll(hw.ObjTiles4, firstTile); err != nil {
		return nil, fmt.Errorf("uploading sprite sheet: %w", err)
	}
	hw.ObjPaletteBanks.MustIndex(paletteBank).Write(Palette)
	hw.Backdrop.Write(Backdrops[0])
	d.alloc.Clear()
	hw.DisplayControl.Write(gba.DisplayControl(0).Obj1D(true).ShowObj(true))

	return d, nil
}

// SetWord sets the letters of the keys. Only ASCII letters are accepted,
// spaces show a blank key.
func (d *Demo) SetWord(word string) error {
	if len(word) > WordLength {
		return fmt.Errorf("word '%s' is longer than %d letters", word, WordLength)
	}

	var sprites [WordLength]int
	for i := range sprites {
		sprites[i] = assets.Blank
	}
	for i, r := range word {
		if r == ' ' {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		k, ok := assets.Letter(r)
		if !ok {
			return fmt.Errorf("unsupported letter '%c'", r)
		}
		sprites[i] = k
	}

	d.word = sprites
	return nil
}

// Word returns the letters of the keys, blank keys as spaces.
func (d *Demo) Word() string {
	var buf strings.Builder
	for _, k := range d.word {
		if k == assets.Blank {
			buf.WriteByte(' ')
			continue
		}
		buf.WriteByte(byte('A' + k - assets.FirstLetter))
	}
	return buf.String()
}

// Cursor returns the index of the selected key.
func (d *Demo) Cursor() int {
	return d.cursor
}

// Step reads the keypad, updates the state and writes the sprite table for
// the next frame.
func (d *Demo) Step() error {
	keys := d.hw.KeyInput.Read()
	d.handleInput(keys)
	d.keys = keys

	d.alloc.BeginFrame()
	// lower slots are drawn on top, the cursor covers its key border
	if _, err := d.alloc.AllocateAndWrite(d.attr(assets.Cursor, d.cursor)); err != nil {
		return fmt.Errorf("placing cursor: %w", err)
	}
	for i, k := range d.word {
		if _, err := d.alloc.AllocateAndWrite(d.attr(k, i)); err != nil {
			return fmt.Errorf("placing key %d: %w", i, err)
		}
	}
	d.alloc.EndFrame()
	return nil
}

// Run steps once per frame and never returns.
func (d *Demo) Run() {
	for {
		d.hw.WaitVBlank()
		if err := d.Step(); err != nil {
			panic(err)
		}
	}
}

func (d *Demo) handleInput(keys keypad.KeyInput) {
	switch {
	case keys.JustPressed(keypad.Start, d.keys):
		d.alloc.Clear()
		for i := range d.word {
			d.word[i] = assets.Blank
		}
		d.cursor = 0

	case keys.JustPressed(keypad.Select, d.keys):
		d.backdrop = (d.backdrop + 1) % len(Backdrops)
		d.hw.Backdrop.Write(Backdrops[d.backdrop])

	case keys.JustPressed(keypad.Left, d.keys):
		d.cursor = (d.cursor + WordLength - 1) % WordLength

	case keys.JustPressed(keypad.Right, d.keys):
		d.cursor = (d.cursor + 1) % WordLength

	case keys.JustPressed(keypad.Up, d.keys):
		d.word[d.cursor] = d.nextLetter(d.word[d.cursor], 1)

	case keys.JustPressed(keypad.Down, d.keys):
		d.word[d.cursor] = d.nextLetter(d.word[d.cursor], -1)

	case keys.JustPressed(keypad.B, d.keys):
		d.word[d.cursor] = assets.Blank
	}
}

// nextLetter cycles through the alphabet, a blank key continues at A or Z.
func (d *Demo) nextLetter(k, delta int) int {
	const letters = 26
	if k == assets.Blank {
		if delta > 0 {
			return assets.FirstLetter
		}
		return assets.FirstLetter + letters - 1
	}
	return assets.FirstLetter + (k-assets.FirstLetter+delta+letters)%letters
}

// KeyPosition returns the screen position of the top left pixel of a key.
func KeyPosition(i int) (x, y int) {
	return originX + i*(spriteSize+spacing), originY
}

func (d *Demo) attr(k, pos int) oam.Attr {
	x, y := KeyPosition(pos)
	return oam.Attr{}.
		Size(oam.Size16x16).
		Tile(sprite.TileBase(firstTile, k)).
		Palette(paletteBank).
		X(x).
		Y(y)
}
