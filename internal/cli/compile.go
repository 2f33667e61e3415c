package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.dw1.io/re2"
	"go.dw1.io/re2/internal/bytesize"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Caseless bool
	MaxMem   string
	Engine   string
}

// CompileResult describes a compiled pattern.
type CompileResult struct {
	Pattern string   `json:"pattern"`
	Engine  string   `json:"engine"`
	Groups  int      `json:"groups"`
	Names   []string `json:"names"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <pattern>",
		Short: "Check a pattern and describe its groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Caseless, "caseless", "i", false, "match case-insensitively")
	cmd.Flags().StringVar(&opts.MaxMem, "max-mem", "", "memory budget of the compiled program, e.g. 8MiB")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "backend (core|re2|pcre|auto)")

	return cmd
}

func (opts *CompileOptions) tokens() ([]any, error) {
	var tokens []any
	if opts.Caseless {
		tokens = append(tokens, re2.Atom("caseless"))
	}

	if opts.MaxMem != "" {
		n, err := bytesize.Parse(opts.MaxMem)
		if err != nil {
			return nil, fmt.Errorf("%w: --max-mem: %w", re2.ErrBadArgument, err)
		}
		tokens = append(tokens, re2.Tuple{re2.Atom("max_mem"), n})
	}

	if opts.Engine != "" {
		tokens = append(tokens, re2.Tuple{re2.Atom("engine"), opts.Engine})
	}

	return tokens, nil
}

func runCompile(opts *CompileOptions, pattern string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	tokens, err := opts.tokens()
	if err != nil {
		return reportError(f, err)
	}

	copts, err := re2.ParseCompileOptions(tokens)
	if err != nil {
		return reportError(f, err)
	}

	p, err := opts.client.Compile(cmd.Context(), []byte(pattern), copts)
	if err != nil {
		return reportError(f, err)
	}
	defer p.Release()

	result := CompileResult{
		Pattern: p.String(),
		Engine:  p.Engine().String(),
		Groups:  p.NumGroups(),
		Names:   p.SubexpNames(),
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "pattern: %s\n", result.Pattern)
		fmt.Fprintf(w, "engine: %s\n", result.Engine)
		fmt.Fprintf(w, "groups: %d\n", result.Groups)
		for i, name := range result.Names {
			if name != "" {
				fmt.Fprintf(w, "group %d: %s\n", i, name)
			}
		}
	})
}
