//go:build !((linux || darwin || windows) && (amd64 || arm64))

package json

import (
	"encoding/json"
	"io"
)

// NewEncoder creates a streaming encoder.
func NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

// Encoder is a JSON encoder.
type Encoder interface {
	Encode(v any) error
	SetEscapeHTML(on bool)
	SetIndent(prefix, indent string)
}
