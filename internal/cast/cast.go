package cast

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

// ErrNotInteger is returned when a value is not of an integer kind.
var ErrNotInteger = errors.New("not an integer")

// ErrNotName is returned when a value cannot be read as a name.
var ErrNotName = errors.New("not a name")

// Int converts v to the integer type I. v must itself be an integer kind;
// out-of-range values are reported by safemath.
func Int[I Integer](v any) (I, error) {
	if !IsInt(v) {
		var zero I
		return zero, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}

	return safemath.ConvertAny[I](v)
}

// Name converts a string, byte slice or [fmt.Stringer] to a string.
func Name(v any) (string, error) {
	switch v.(type) {
	case string, []byte, fmt.Stringer:
		return cast.ToStringE(v)
	default:
		return "", fmt.Errorf("%w: %T", ErrNotName, v)
	}
}

// IsInt reports whether v's dynamic type is one of the integer types
// eligible for safemath conversions.
func IsInt(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	default:
		return false
	}
}
