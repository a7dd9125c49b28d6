// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbaword/internal/options"
	"github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses the command line arguments, without the program name,
// and returns the program options.
func ParseFlags(args []string) (options.Program, error) {
	var (
		opts       options.Program
		positional options.Positional
	)

	flags := cli.NewFlagSet("tilec")
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Output", &opts.OutputFlags)
	flags.AddPositional(&positional)

	remaining, err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, cli.ErrHelpRequested) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := validateArgs(remaining); err != nil {
		err.flags = flags
		return opts, err
	}

	if opts.Batch == "" {
		if positional.File != "" {
			opts.Input = positional.File
		}
		if opts.Input == "" {
			return opts, &UsageError{flags: flags, msg: "no input file given"}
		}
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *cli.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage of the program.
func (e *UsageError) ShowUsage() {
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no arguments follow the input file.
func validateArgs(args []string) *UsageError {
	if len(args) == 0 {
		return nil
	}
	return &UsageError{
		msg: fmt.Sprintf("unexpected argument %s found after the input file, please pass options before the input file", args[0]),
	}
}
