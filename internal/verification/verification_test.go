package verification

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/gbaword/internal/video"
	"github.com/retroenv/gbaword/internal/writer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseAsm(t *testing.T) {
	words := make([]uint32, 24)
	for i := range words {
		words[i] = uint32(i) * 0x11111111
	}

	var buf bytes.Buffer
	w := writer.New(words, &buf, writer.Options{Format: options.FormatAsm, Label: "sheet", TileComments: true})
	assert.NoError(t, w.Write())

	parsed, err := ParseAsm(buf.Bytes(), "sheet")
	assert.NoError(t, err)
	assert.Equal(t, words, parsed)
}

func TestParseAsm_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
		err   string
	}{
		{name: "missing label", input: "other:\n\t.word 1\n", label: "tiles", err: "not found"},
		{name: "invalid word", input: "tiles:\n\t.word 0xZZ\n", label: "tiles", err: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAsm([]byte(tt.input), tt.label)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestParseAsm_IgnoresOtherLabels(t *testing.T) {
	input := "palette:\n\t.word 0x7FFF\ntiles:\n\t.word 0x1, 2 @ tile 0\ntiles_size:\n\t.word 8\n"
	parsed, err := ParseAsm([]byte(input), "tiles")
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, parsed)
}

func TestVerifyOutput(t *testing.T) {
	logger := log.NewTestLogger(t)
	words := []uint32{0x76543210, 0xFEDCBA98}
	dir := t.TempDir()

	binFile := filepath.Join(dir, "tiles.bin")
	assert.NoError(t, os.WriteFile(binFile, video.EncodeWords(words), 0o600))

	compiler := options.NewCompiler()
	opts := options.Program{Parameters: options.Parameters{Output: binFile}}
	assert.NoError(t, VerifyOutput(logger, opts, compiler, words))

	// a changed pixel is detected, mismatches are logged as errors
	err := VerifyOutput(log.NewNop(), opts, compiler, []uint32{0x76543211, 0xFEDCBA98})
	assert.ErrorContains(t, err, "1 offset mismatches")

	err = VerifyOutput(logger, opts, compiler, words[:1])
	assert.ErrorContains(t, err, "mismatched lengths")
}

func TestVerifyOutput_Asm(t *testing.T) {
	logger := log.NewTestLogger(t)
	words := []uint32{0x76543210, 0xFEDCBA98}
	dir := t.TempDir()

	var buf bytes.Buffer
	w := writer.New(words, &buf, writer.Options{Format: options.FormatAsm, Label: "tiles"})
	assert.NoError(t, w.Write())

	asmFile := filepath.Join(dir, "tiles.s")
	assert.NoError(t, os.WriteFile(asmFile, buf.Bytes(), 0o600))

	compiler := options.NewCompiler()
	compiler.Format = options.FormatAsm
	opts := options.Program{Parameters: options.Parameters{Output: asmFile}}
	assert.NoError(t, VerifyOutput(logger, opts, compiler, words))
}

func TestVerifyOutput_Console(t *testing.T) {
	err := VerifyOutput(log.NewNop(), options.Program{}, options.NewCompiler(), nil)
	assert.ErrorContains(t, err, "console output")
}
