// Package preview renders compiled tiles to an image for inspection.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/retroenv/gbaword/internal/video"
	"golang.org/x/image/draw"
)

// Grayscale is a palette that maps index 0 to black and spreads the other
// indices evenly up to white.
var Grayscale = func() video.Palette {
	var p video.Palette
	for i := range p {
		level := uint8(i * video.MaxChannel / video.MaxPixel)
		p[i] = video.RGB(level, level, level)
	}
	return p
}()

// Options controls the rendering.
type Options struct {
	Palette video.Palette
	Scale   int
	// Grid draws separator lines between sprites of the given width in
	// pixels. Zero disables the grid.
	Grid int
}

// Render draws the tiles in sheet order into an image that is widthTiles
// tiles wide.
func Render(tiles []video.Tile4, widthTiles int, palette video.Palette) (*image.Paletted, error) {
	if widthTiles <= 0 || len(tiles)%widthTiles != 0 {
		return nil, fmt.Errorf("%d tiles do not fill rows of %d", len(tiles), widthTiles)
	}

	colors := make(color.Palette, len(palette))
	for i, c := range palette {
		r, g, b := c.RGBA8()
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}

	heightTiles := len(tiles) / widthTiles
	img := image.NewPaletted(image.Rect(0, 0, widthTiles*video.TileWidth, heightTiles*video.TileWidth), colors)
	for i, tile := range tiles {
		ox := (i % widthTiles) * video.TileWidth
		oy := (i / widthTiles) * video.TileWidth
		for y := range video.TileWidth {
			for x := range video.TileWidth {
				img.SetColorIndex(ox+x, oy+y, tile.Pixel(x, y))
			}
		}
	}
	return img, nil
}

// WritePNG renders the tiles and writes them as PNG.
func WritePNG(w io.Writer, tiles []video.Tile4, widthTiles int, opts Options) error {
	img, err := Render(tiles, widthTiles, opts.Palette)
	if err != nil {
		return err
	}

	scale := max(opts.Scale, 1)
	bounds := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	if opts.Grid > 0 {
		drawGrid(scaled, opts.Grid*scale)
	}

	if err := png.Encode(w, scaled); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

var gridColor = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

func drawGrid(img *image.RGBA, step int) {
	bounds := img.Bounds()
	for x := step; x < bounds.Dx(); x += step {
		draw.Draw(img, image.Rect(x, 0, x+1, bounds.Dy()), image.NewUniform(gridColor), image.Point{}, draw.Src)
	}
	for y := step; y < bounds.Dy(); y += step {
		draw.Draw(img, image.Rect(0, y, bounds.Dx(), y+1), image.NewUniform(gridColor), image.Point{}, draw.Src)
	}
}
