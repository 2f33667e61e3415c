package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.dw1.io/re2"
)

// ReplaceOptions holds flags for the replace command.
type ReplaceOptions struct {
	*RootOptions
	File   string
	Global bool
}

// ReplaceResult is the JSON form of a replacement.
type ReplaceResult struct {
	Result string `json:"result"`
}

// NewReplaceCommand creates the replace command.
func NewReplaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplaceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replace <pattern> <replacement> [subject]",
		Short: "Replace the first or every match of a pattern",
		Long: `Replace the first match of a pattern, or every match with --global. The
replacement may reference groups as $1, ${1}, $name or ${name}; $$ is a
literal $. The subject is given as an argument, read from --file, or read
from stdin.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the subject from a file")
	cmd.Flags().BoolVarP(&opts.Global, "global", "g", false, "replace every match")

	return cmd
}

func runReplace(opts *ReplaceOptions, pattern, replacement string, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var tokens []any
	if opts.Global {
		tokens = append(tokens, re2.Atom("global"))
	}

	ropts, err := re2.ParseReplaceOptions(tokens)
	if err != nil {
		return reportError(f, err)
	}

	subject, done, err := readSubject(cmd, args, opts.File, opts.logger)
	if err != nil {
		return inputError(f, err)
	}
	defer done()

	out, err := opts.client.Replace(cmd.Context(), subject, re2.Text(pattern), []byte(replacement), ropts)
	if err != nil {
		return reportError(f, err)
	}

	result := ReplaceResult{Result: string(out)}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Result)
	})
}
