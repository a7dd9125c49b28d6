// Package pipeline orchestrates the tile compilation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/gbaword/internal/loader"
	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/gbaword/internal/preview"
	"github.com/retroenv/gbaword/internal/sprite"
	"github.com/retroenv/gbaword/internal/tilec"
	"github.com/retroenv/gbaword/internal/verification"
	"github.com/retroenv/gbaword/internal/video"
	"github.com/retroenv/gbaword/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete compilation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new compilation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete compilation pipeline for the input file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, compiler options.Compiler, output io.Writer) (*tilec.Result, error) {
	img, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading sprite sheet: %w", err)
	}

	return p.ExecuteWithImage(ctx, img, opts, compiler, output)
}

// ExecuteWithImage runs the compilation pipeline with a pre-loaded image.
// This is useful for testing and programmatic usage where the image is
// already in memory.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, img image.Image, opts options.Program,
	compiler options.Compiler, output io.Writer) (*tilec.Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", opts.Input, err)
	}

	result, err := tilec.Compile(img, tilec.Options{Channel: compiler.Channel})
	if err != nil {
		return nil, fmt.Errorf("compiling tiles: %w", err)
	}
	p.printInfo(opts, compiler, result)

	if compiler.SpriteWidth == 2*video.TileWidth {
		if _, err := sprite.NewSheet(result.Bytes(), result.WidthTiles); err != nil {
			return nil, fmt.Errorf("checking sprite layout: %w", err)
		}
	}

	w := writer.New(result.Words, output, writer.Options{
		Format:       compiler.Format,
		Label:        compiler.Label,
		Source:       filepath.Base(opts.Input),
		TileComments: opts.Debug,
	})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	if opts.Preview != "" {
		if err := p.writePreview(opts.Preview, compiler, result); err != nil {
			return nil, fmt.Errorf("writing preview: %w", err)
		}
	}

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, opts, compiler, result.Words); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return result, nil
}

func (p *Pipeline) writePreview(path string, compiler options.Compiler, result *tilec.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview file %s: %w", path, err)
	}

	err = preview.WritePNG(file, result.Tiles(), result.WidthTiles, preview.Options{
		Palette: preview.Grayscale,
		Scale:   compiler.PreviewScale,
		Grid:    compiler.SpriteWidth,
	})
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing preview file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	p.logger.Debug("Preview written", log.String("file", path))
	return nil
}

// printInfo prints information about the compiled sheet.
func (p *Pipeline) printInfo(opts options.Program, compiler options.Compiler, result *tilec.Result) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Compiled sprite sheet",
		log.String("file", opts.Input),
		log.String("channel", compiler.Channel.String()),
		log.Int("tiles", result.Stats.Tiles),
		log.Int("width", result.WidthTiles),
		log.Int("height", result.HeightTiles),
	)
	p.logger.Debug("Tile statistics",
		log.Int("empty", result.Stats.EmptyTiles),
		log.Int("colors", result.Stats.Colors.Size()),
	)
	if result.Stats.Tiles == result.Stats.EmptyTiles {
		p.logger.Warn("Sprite sheet contains only transparent pixels")
	}
}
