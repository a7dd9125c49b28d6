package options

import (
	"testing"

	"github.com/retroenv/gbaword/internal/tilec"
	"github.com/retroenv/retrogolib/assert"
)

func TestNewCompiler(t *testing.T) {
	c := NewCompiler()
	assert.Equal(t, tilec.Red, c.Channel)
	assert.Equal(t, FormatBin, c.Format)
	assert.Equal(t, 16, c.SpriteWidth)
}

func TestCompiler_Extension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: FormatBin, want: ".bin"},
		{format: FormatAsm, want: ".s"},
		{format: "ASM", want: ".s"},
		{format: "", want: ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c := Compiler{Format: tt.format}
			assert.Equal(t, tt.want, c.Extension())
		})
	}
}
