package json

import (
	"bytes"
	stdjson "encoding/json"
	"testing"
)

type sample struct {
	Pattern string   `json:"pattern"`
	Groups  []int    `json:"groups"`
	Names   []string `json:"names,omitempty"`
}

func TestEncoderMatchesStd(t *testing.T) {
	v := sample{Pattern: "<a>&(b)", Groups: []int{2, -1, 0}}

	var got, want bytes.Buffer
	if err := NewEncoder(&got).Encode(v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := stdjson.NewEncoder(&want).Encode(v); err != nil {
		t.Fatalf("std encode: %v", err)
	}

	if got.String() != want.String() {
		t.Fatalf("encode = %s, want %s", got.String(), want.String())
	}
}

func TestEncoderIndent(t *testing.T) {
	var buf bytes.Buffer

	enc := NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sample{Pattern: "a", Groups: []int{1}}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	const want = "{\n  \"pattern\": \"a\",\n  \"groups\": [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("encode = %q, want %q", buf.String(), want)
	}
}
