// Package cli implements the re2 command line tool.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"go.dw1.io/re2"
	"go.dw1.io/re2/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string

	client *re2.Client
	logger zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "re2",
		Short: "Compile, match and replace with RE2 patterns",
		Long: `re2 runs patterns through the same option parser and dispatcher that a
host embedding the package uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug events to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default re2.yaml in ., $HOME/.re2, /etc/re2)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewReplaceCommand(opts))

	return cmd
}

// setup loads the configuration, installs the logger and builds the client.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}
	opts.logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	re2.SetLogger(opts.logger)

	opts.client = re2.New(re2.WithConfig(cfg))

	return nil
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// reportError writes err and returns the matching *ExitError.
func reportError(f *OutputFormatter, err error) error {
	resp := ResponseError{Code: ErrCodeGeneric, Message: err.Error()}
	code := ExitCommandError

	var ce *re2.CompileError
	switch {
	case errors.As(err, &ce):
		resp = ResponseError{Code: string(ce.Code), Message: ce.Message, Fragment: ce.Fragment}
		code = ExitFailure
	case errors.Is(err, re2.ErrBadArgument):
		resp.Code = ErrCodeBadArgument
	case errors.Is(err, re2.ErrAllocationFailure):
		resp.Code = ErrCodeAllocationFailure
	}

	if werr := f.Error(resp); werr != nil {
		return werr
	}

	return &ExitError{Code: code, Message: resp.Code, Err: err}
}
