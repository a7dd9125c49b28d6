// Package options contains the program options.
package options

import (
	"strings"

	"github.com/retroenv/gbaword/internal/tilec"
)

// Output formats.
const (
	FormatBin = "bin"
	FormatAsm = "asm"
)

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"sprite sheet image to compile (.bmp or .png)"`
}

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input image file"`
	Output  string `flag:"o" usage:"output file (default: input name with format extension)"`
	Config  string `flag:"c" usage:"config file"`
	Preview string `flag:"preview" usage:"write a PNG preview of the compiled tiles"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.bmp)"`
}

// Flags contains behavior options.
type Flags struct {
	Channel string `flag:"channel" usage:"color channel holding the palette index: red, green, blue, index (default: red)"`
	Format  string `flag:"f" usage:"output format: bin, asm (default: bin)"`
	Verify  bool   `flag:"verify" usage:"verify output by reading it back and comparing to the compiled tiles"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Label        string `flag:"label" usage:"symbol name of the tile data in asm output (default: tiles)"`
	SpriteWidth  int    `flag:"sprite" usage:"sprite width in pixels, 8 or 16 (default: 16)"`
	PreviewScale int    `flag:"scale" usage:"scale factor of the preview image (default: 4)"`
}

// Program options of the tile compiler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Compiler defines options to control the compilation and output.
type Compiler struct {
	Channel      tilec.Channel
	Format       string // output format, bin or asm
	Label        string // symbol name in asm output
	SpriteWidth  int    // sprite width in pixels used to validate the sheet layout
	PreviewScale int
}

// NewCompiler returns compiler options with default values.
func NewCompiler() Compiler {
	return Compiler{
		Channel:      tilec.Red,
		Format:       FormatBin,
		Label:        "tiles",
		SpriteWidth:  16,
		PreviewScale: 4,
	}
}

// Extension returns the file extension of the output format.
func (c Compiler) Extension() string {
	if strings.EqualFold(c.Format, FormatAsm) {
		return ".s"
	}
	return ".bin"
}
