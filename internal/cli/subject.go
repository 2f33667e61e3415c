package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"go.dw1.io/re2/internal/file"
)

// readSubject returns the subject from args, the --file flag or stdin, in
// that order. The returned function releases it.
func readSubject(cmd *cobra.Command, args []string, path string, log zerolog.Logger) ([]byte, func(), error) {
	if len(args) > 0 {
		return []byte(args[0]), func() {}, nil
	}

	if path != "" {
		s, err := file.Open(path)
		if err != nil {
			return nil, nil, err
		}

		log.Debug().
			Str("path", path).
			Int("size", len(s.Bytes())).
			Bool("mapped", s.Mapped()).
			Msg("subject loaded")

		return s.Bytes(), func() { s.Close() }, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}

	return data, func() {}, nil
}

func inputError(f *OutputFormatter, err error) error {
	if werr := f.Error(ResponseError{Code: ErrCodeInput, Message: err.Error()}); werr != nil {
		return werr
	}

	return &ExitError{Code: ExitCommandError, Message: ErrCodeInput, Err: err}
}
