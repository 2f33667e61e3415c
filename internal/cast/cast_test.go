package cast

import (
	"errors"
	"math"
	"testing"

	"go.dw1.io/safemath"
)

type word string

func (w word) String() string { return string(w) }

func TestIsInt(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		for _, v := range []any{
			int(1), int8(1), int16(1), int32(1), int64(1),
			uint(1), uint8(1), uint16(1), uint32(1), uint64(1), uintptr(1),
		} {
			if !IsInt(v) {
				t.Fatalf("expected %T to be an integer", v)
			}
		}
	})

	t.Run("nonIntegers", func(t *testing.T) {
		for _, v := range []any{float64(1), "1", true, nil, []byte("1")} {
			if IsInt(v) {
				t.Fatalf("expected %T to not be an integer", v)
			}
		}
	})
}

func TestInt(t *testing.T) {
	t.Run("withinRange", func(t *testing.T) {
		got, err := Int[int](uint16(42))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != 42 {
			t.Fatalf("expected 42, got %d", got)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Int[int8](int64(math.MaxInt8) + 1)
		if err == nil {
			t.Fatalf("expected error for overflow conversion")
		}

		if !errors.Is(err, safemath.ErrTruncation) {
			t.Fatalf("expected safemath.ErrTruncation, got %v", err)
		}
	})

	t.Run("numericString", func(t *testing.T) {
		_, err := Int[int]("42")
		if !errors.Is(err, ErrNotInteger) {
			t.Fatalf("expected ErrNotInteger, got %v", err)
		}
	})

	t.Run("float", func(t *testing.T) {
		_, err := Int[int](float64(42))
		if !errors.Is(err, ErrNotInteger) {
			t.Fatalf("expected ErrNotInteger, got %v", err)
		}
	})
}

func TestName(t *testing.T) {
	cases := map[string]any{
		"string":   "year",
		"bytes":    []byte("year"),
		"stringer": word("year"),
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Name(v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != "year" {
				t.Fatalf("expected year, got %q", got)
			}
		})
	}

	t.Run("rejectsNumbers", func(t *testing.T) {
		for _, v := range []any{1, 1.5, true} {
			if _, err := Name(v); !errors.Is(err, ErrNotName) {
				t.Fatalf("%T: expected ErrNotName, got %v", v, err)
			}
		}
	})
}
