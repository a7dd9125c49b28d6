// Package verification verifies that the generated output file recreates the
// compiled tile data.
package verification

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/gbaword/internal/video"
	"github.com/retroenv/retrogolib/log"
)

// VerifyOutput verifies that the output file contains exactly the given words.
func VerifyOutput(logger *log.Logger, opts options.Program, compiler options.Compiler, words []uint32) error {
	if opts.Output == "" {
		return errors.New("can not verify console output")
	}

	data, err := os.ReadFile(opts.Output)
	if err != nil {
		return fmt.Errorf("reading output file for comparison: %w", err)
	}

	if compiler.Format == options.FormatAsm {
		parsed, err := ParseAsm(data, compiler.Label)
		if err != nil {
			return fmt.Errorf("parsing asm output: %w", err)
		}
		data = video.EncodeWords(parsed)
	}

	if err := checkBufferEqual(logger, video.EncodeWords(words), data); err != nil {
		return fmt.Errorf("tile data mismatch: %w", err)
	}
	return nil
}

// ParseAsm reads back the words of the .word directives that follow the
// given label in an assembler listing.
func ParseAsm(data []byte, label string) ([]uint32, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var (
		words   []uint32
		inLabel bool
		found   bool
	)

	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if i := strings.IndexByte(text, '@'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)

		if strings.HasSuffix(text, ":") {
			inLabel = text == label+":"
			found = found || inLabel
			continue
		}
		if !inLabel || !strings.HasPrefix(text, ".word") {
			continue
		}

		for _, field := range strings.Split(strings.TrimPrefix(text, ".word"), ",") {
			value, err := strconv.ParseUint(strings.TrimSpace(field), 0, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing word: %w", line, err)
			}
			words = append(words, uint32(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning listing: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("label '%s' not found", label)
	}
	return words, nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Int("tile", i/video.Tile4Bytes),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
