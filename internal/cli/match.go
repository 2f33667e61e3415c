package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"go.dw1.io/re2"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	File     string
	Caseless bool
	Offset   int
	Capture  string
	IDs      []string
	Type     string
}

// MatchResult is the JSON form of a match. Values hold an IndexValue per
// group in index mode and a string per group in binary mode.
type MatchResult struct {
	Matched bool  `json:"matched"`
	Values  []any `json:"values,omitempty"`
}

// IndexValue is a group location.
type IndexValue struct {
	Start int `json:"start"`
	Len   int `json:"len"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match <pattern> [subject]",
		Short: "Match a pattern against a subject",
		Long: `Match a pattern against a subject given as an argument, read from --file,
or read from stdin. Exits 1 when nothing matched.

Groups are chosen with --capture (all, all_but_first, first, none) or listed
with --id, which takes group numbers and names and may be repeated.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the subject from a file")
	cmd.Flags().BoolVarP(&opts.Caseless, "caseless", "i", false, "match case-insensitively")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "byte offset to start searching at")
	cmd.Flags().StringVar(&opts.Capture, "capture", "all", "groups to report (all|all_but_first|first|none)")
	cmd.Flags().StringSliceVar(&opts.IDs, "id", nil, "group number or name to report, in order")
	cmd.Flags().StringVar(&opts.Type, "type", "binary", "result type (index|binary)")

	return cmd
}

func (opts *MatchOptions) tokens() []any {
	var tokens []any
	if opts.Caseless {
		tokens = append(tokens, re2.Atom("caseless"))
	}

	if opts.Offset != 0 {
		tokens = append(tokens, re2.Tuple{re2.Atom("offset"), opts.Offset})
	}

	var spec any = re2.Atom(opts.Capture)
	if len(opts.IDs) > 0 {
		ids := make([]any, len(opts.IDs))
		for i, id := range opts.IDs {
			if n, err := strconv.Atoi(id); err == nil {
				ids[i] = n
			} else {
				ids[i] = id
			}
		}
		spec = ids
	}

	return append(tokens, re2.Tuple{re2.Atom("capture"), spec, re2.Atom(opts.Type)})
}

func runMatch(opts *MatchOptions, pattern string, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	mopts, err := re2.ParseMatchOptions(opts.tokens())
	if err != nil {
		return reportError(f, err)
	}

	subject, done, err := readSubject(cmd, args, opts.File, opts.logger)
	if err != nil {
		return inputError(f, err)
	}
	defer done()

	res, err := opts.client.Match(cmd.Context(), subject, re2.Text(pattern), mopts)
	if err != nil {
		return reportError(f, err)
	}

	out := MatchResult{Matched: res.Matched}
	for _, v := range res.Values {
		switch v := v.(type) {
		case re2.IndexPair:
			out.Values = append(out.Values, IndexValue{Start: v.Start, Len: v.Len})
		case re2.Bytes:
			out.Values = append(out.Values, string(v))
		}
	}

	err = f.Success(out, func(w io.Writer) {
		if !res.Matched {
			fmt.Fprintln(w, "no match")
			return
		}

		if len(out.Values) == 0 {
			fmt.Fprintln(w, "match")
			return
		}

		for _, v := range out.Values {
			switch v := v.(type) {
			case IndexValue:
				fmt.Fprintf(w, "%d %d\n", v.Start, v.Len)
			case string:
				fmt.Fprintf(w, "%q\n", v)
			}
		}
	})
	if err != nil {
		return err
	}

	if !res.Matched {
		return &ExitError{Code: ExitFailure, Message: "no match"}
	}

	return nil
}
