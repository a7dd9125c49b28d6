// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/gbaword/internal/tilec"
	"github.com/retroenv/retrogolib/config"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File is the content of a config file. Missing keys get their default.
type File struct {
	Channel      string `config:"sheet.channel,default=red"`
	SpriteWidth  int    `config:"sheet.sprite_width,default=16"`
	Format       string `config:"output.format,default=bin"`
	Label        string `config:"output.label,default=tiles"`
	PreviewScale int    `config:"output.preview_scale,default=4"`
}

// Load reads the config file. An empty filename returns the defaults.
func Load(filename string) (File, error) {
	var file File
	if filename == "" {
		if err := config.LoadBytes(nil, &file); err != nil {
			return File{}, fmt.Errorf("applying config defaults: %w", err)
		}
		return file, nil
	}

	if err := config.Load(filename, &file); err != nil {
		return File{}, fmt.Errorf("loading config file '%s': %w", filename, err)
	}
	return file, nil
}

// CompilerOptions merges the config file with the program options. Values
// given on the command line take precedence.
func CompilerOptions(file File, opts options.Program) (options.Compiler, error) {
	compiler := options.NewCompiler()

	channelName := file.Channel
	if opts.Channel != "" {
		channelName = opts.Channel
	}
	channel, err := tilec.ParseChannel(channelName)
	if err != nil {
		return compiler, fmt.Errorf("parsing channel: %w", err)
	}
	compiler.Channel = channel

	compiler.Format = pick(opts.Format, file.Format, compiler.Format)
	compiler.Label = pick(opts.Label, file.Label, compiler.Label)
	compiler.SpriteWidth = pick(opts.SpriteWidth, file.SpriteWidth, compiler.SpriteWidth)
	compiler.PreviewScale = pick(opts.PreviewScale, file.PreviewScale, compiler.PreviewScale)

	switch compiler.Format {
	case options.FormatBin, options.FormatAsm:
	default:
		return compiler, fmt.Errorf("unsupported output format '%s'", compiler.Format)
	}
	if compiler.SpriteWidth != 8 && compiler.SpriteWidth != 16 {
		return compiler, fmt.Errorf("unsupported sprite width %d", compiler.SpriteWidth)
	}
	if compiler.PreviewScale < 1 {
		return compiler, fmt.Errorf("invalid preview scale %d", compiler.PreviewScale)
	}

	return compiler, nil
}

// pick returns the first non zero value.
func pick[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
