package regexp

import (
	"strings"
	"unicode/utf8"
)

// pcreConstructs lists PCRE2-only syntax that RE2 backends reject, based on
// pcre2syntax.
//
// Ref: https://pcre2project.github.io/pcre2/doc/pcre2syntax/
var pcreConstructs = []string{
	// lookaround
	"(?=", "(?!", "(?<=", "(?<!",
	"(*pla:", "(*positive_lookahead:", "(*nla:", "(*negative_lookahead:",
	"(*plb:", "(*positive_lookbehind:", "(*nlb:", "(*negative_lookbehind:",
	"(?*", "(*napla:", "(?<*", "(*naplb:",
	// atomic groups, branch reset, conditionals, comments
	"(?>", "(*atomic:", "(?|", "(?(", "(?#",
	// recursion and subroutine calls
	"(?R)", "(?P>", "(?&",
	// backtracking control verbs
	"(*ACCEPT)", "(*FAIL)", "(*F)", "(*MARK:", "(*:", "(*COMMIT)", "(*PRUNE)", "(*SKIP)", "(*THEN)",
	// named backreferences
	"(?P=", `\k<`, `\k'`, `\k{`, `\g`,
	// escapes RE2 does not know
	`\h`, `\H`, `\R`, `\X`, `\K`, `\e`, `\o{`, `\N{U+`,
	// anchors
	`\Z`, `\G`,
}

// needsPCRE reports whether pattern uses constructs only regexp2 can run.
func needsPCRE(pattern string) bool {
	for _, c := range pcreConstructs {
		if strings.Contains(pattern, c) {
			return true
		}
	}

	// numeric backreferences: \1 .. \9
	escaped := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '\\' {
			escaped = false
			continue
		}

		if !escaped && i+1 < len(pattern) {
			if next := pattern[i+1]; next >= '1' && next <= '9' {
				return true
			}
		}
		escaped = !escaped
	}

	// RE2 accepts (?P<name>...) and (?<name>...), but not
	// the quoted (?'name'...) form.
	return strings.Contains(pattern, "(?'")
}

// decodeRunes splits b into runes the way regexp2 sees them and records the
// byte offset of every rune, plus len(b) as a final entry.
func decodeRunes(b []byte) ([]rune, []int) {
	runes := make([]rune, 0, len(b))
	offsets := make([]int, 0, len(b)+1)

	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
	}

	return runes, append(offsets, len(b))
}

// byteToRuneIndex returns the index of the first rune starting at or after
// byte offset at.
func byteToRuneIndex(offsets []int, at int) int {
	for i, off := range offsets {
		if off >= at {
			return i
		}
	}

	return len(offsets) - 1
}
