// Package bytesize reads and writes byte counts such as 8MiB.
package bytesize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var units = []struct {
	suffix string
	mult   int64
}{
	{"TiB", 1 << 40},
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
	{"B", 1},
}

// Parse parses a byte count. s must match
//
//	^[0-9]+(([KMGT]i)?B)?$
//
// and the result must fit an int64.
func Parse(s string) (int64, error) {
	digits, mult := s, int64(1)
	for _, u := range units {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			digits, mult = rest, u.mult
			break
		}
	}

	if digits == "" || strings.IndexFunc(digits, notDigit) >= 0 {
		return 0, fmt.Errorf("invalid byte count %q", s)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt64/mult {
		return 0, fmt.Errorf("byte count %q out of range", s)
	}

	return n * mult, nil
}

// Format renders n with the largest unit that divides it exactly.
func Format(n int64) string {
	if n <= 0 {
		return strconv.FormatInt(n, 10) + "B"
	}

	for _, u := range units {
		if n%u.mult == 0 {
			return strconv.FormatInt(n/u.mult, 10) + u.suffix
		}
	}

	return strconv.FormatInt(n, 10) + "B"
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
