// Package writer implements the output formats of compiled tile data.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/gbaword/internal/video"
)

const wordsPerLine = video.Tile4Words

type lineWriterFunc func(line string, wordCount int) error

// Writer writes compiled tile words in one of the output formats.
type Writer struct {
	words   []uint32
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Format       string // bin or asm
	Label        string // symbol of the tile data in asm output
	Source       string // name of the source image, written as asm comment
	TileComments bool   // annotate every asm line with its tile number
}

// New creates a new writer.
func New(words []uint32, writer io.Writer, options Options) *Writer {
	return &Writer{
		words:   words,
		options: options,
		writer:  writer,
	}
}

// Write writes the words in the configured format.
func (w Writer) Write() error {
	switch strings.ToLower(w.options.Format) {
	case options.FormatBin, "":
		if _, err := w.writer.Write(video.EncodeWords(w.words)); err != nil {
			return fmt.Errorf("writing binary data: %w", err)
		}
		return nil

	case options.FormatAsm:
		return w.writeAsm()

	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
}

// writeAsm writes a GNU assembler listing for ARM targets.
func (w Writer) writeAsm() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	label := w.options.Label
	if label == "" {
		label = "tiles"
	}
	lines := []string{
		"\t.section .rodata",
		"\t.align 2",
		"\t.global " + label,
		"\t.global " + label + "_size",
		"",
		label + ":",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.writer, line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	tile := 0
	lineWriter := func(line string, wordCount int) error {
		var err error
		if w.options.TileComments {
			_, err = fmt.Fprintf(w.writer, "%s @ tile %d\n", line, tile)
		} else {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		}
		if err != nil {
			return fmt.Errorf("writing tile line: %w", err)
		}
		tile += wordCount / video.Tile4Words
		return nil
	}

	if err := w.BundleWordWrites(w.words, lineWriter); err != nil {
		return fmt.Errorf("writing tile data: %w", err)
	}

	if _, err := fmt.Fprintf(w.writer, "\n%s_size:\n\t.word %d\n", label, len(w.words)*4); err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	return nil
}

// BundleWordWrites bundles writes of data words to print wordsPerLine words
// per line.
func (w Writer) BundleWordWrites(data []uint32, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, wordsPerLine)

		buf := &strings.Builder{}
		buf.WriteString("\t.word ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "0x%08X, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data word: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// WriteCommentHeader writes the source name, size and CRC32 checksum of the
// data as comments to the output.
func (w Writer) WriteCommentHeader() error {
	data := video.EncodeWords(w.words)

	if w.options.Source != "" {
		if _, err := fmt.Fprintf(w.writer, "@ Source: %s\n", w.options.Source); err != nil {
			return fmt.Errorf("writing source name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "@ Tiles: %d (%d bytes)\n", len(w.words)/video.Tile4Words, len(data)); err != nil {
		return fmt.Errorf("writing tile count: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "@ CRC32 checksum: %08x\n\n", crc32.ChecksumIEEE(data)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	return nil
}
