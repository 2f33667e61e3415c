package regexp

import (
	"regexp/syntax"
	"strconv"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	re2 "github.com/wasilibs/go-re2"
)

// DefaultMaxMem is the memory budget used when [Options.MaxMem] is zero. It
// matches RE2's default.
const DefaultMaxMem = 8 << 20

const (
	// instBytes approximates the footprint of one compiled instruction.
	instBytes = 16
	// dfaStateBytes approximates the footprint of one cached DFA state.
	dfaStateBytes = 512
	maxDFAStates  = 1_000_000
)

// Options configures [Compile].
type Options struct {
	// Caseless makes the pattern match case-insensitively.
	Caseless bool
	// MaxMem bounds the memory the compiled program may use, in bytes.
	MaxMem int64
	// Engine selects the backend.
	Engine Engine
}

// Regexp is a compiled pattern bound to exactly one backend. It is safe for
// concurrent use; nothing is mutated after Compile returns, apart from Close.
type Regexp struct {
	pattern  string
	names    []string
	anchored bool

	core *coregex.Regex
	wasm *re2.Regexp
	pcre *regexp2.Regexp

	// coreAt and wasmAt run the pattern one rune before a search offset so
	// assertions on the preceding byte see it. They are only compiled when
	// the pattern has such assertions.
	coreAt *coregex.Regex
	wasmAt *re2.Regexp
}

// Compile parses pattern and compiles it with the backend chosen by opts.
// Failures are returned as *[Error].
func Compile(pattern string, opts Options) (*Regexp, error) {
	maxMem := opts.MaxMem
	if maxMem <= 0 {
		maxMem = DefaultMaxMem
	}

	engine := opts.Engine
	if engine == EngineAuto {
		engine = EngineCore
		if needsPCRE(pattern) {
			engine = EnginePCRE
		}
	}

	if engine == EnginePCRE {
		return compilePCRE(pattern, opts.Caseless)
	}

	flags := syntax.Perl
	if opts.Caseless {
		flags |= syntax.FoldCase
	}

	tree, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, fromSyntax(err)
	}

	// The tree already carries the case folding, so the context program is
	// built from its printed form rather than from pattern.
	atExpr := `\A(?s:.)(?s:.*?)(` + tree.String() + `)`

	prog, err := syntax.Compile(tree.Simplify())
	if err != nil {
		return nil, fromSyntax(err)
	}

	if int64(len(prog.Inst)) > maxInst(maxMem) {
		return nil, tooLarge(pattern)
	}

	expr := pattern
	if opts.Caseless {
		expr = "(?i)" + pattern
	}

	r := &Regexp{
		pattern:  pattern,
		anchored: prog.StartCond()&syntax.EmptyBeginText != 0,
	}
	lookback := looksBack(prog)

	switch engine {
	case EngineRE2:
		re, err := re2.Compile(expr)
		if err != nil {
			return nil, fromSyntax(err)
		}
		r.wasm = re
		r.names = re.SubexpNames()

		if lookback {
			if r.wasmAt, err = re2.Compile(atExpr); err != nil {
				return nil, fromSyntax(err)
			}
		}
	default:
		cfg := coregex.DefaultConfig()
		cfg.MaxDFAStates = dfaStates(maxMem)

		re, err := coregex.CompileWithConfig(expr, cfg)
		if err != nil {
			return nil, fromSyntax(err)
		}
		r.core = re
		r.names = re.SubexpNames()

		if lookback {
			if r.coreAt, err = coregex.CompileWithConfig(atExpr, cfg); err != nil {
				return nil, fromSyntax(err)
			}
		}
	}

	return r, nil
}

// looksBack reports whether prog has an empty-width assertion that depends on
// the byte before the current position.
func looksBack(prog *syntax.Prog) bool {
	const before = syntax.EmptyBeginText | syntax.EmptyBeginLine |
		syntax.EmptyWordBoundary | syntax.EmptyNoWordBoundary

	for _, inst := range prog.Inst {
		if inst.Op == syntax.InstEmptyWidth && syntax.EmptyOp(inst.Arg)&before != 0 {
			return true
		}
	}

	return false
}

func compilePCRE(pattern string, caseless bool) (*Regexp, error) {
	opt := regexp2.None
	if caseless {
		opt |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, opt)
	if err != nil {
		return nil, fromPCRE(err)
	}

	return &Regexp{pattern: pattern, pcre: re, names: pcreNames(re)}, nil
}

// pcreNames builds a SubexpNames-shaped table for a regexp2 program.
// regexp2 reports unnamed groups by their number, those become "".
func pcreNames(re *regexp2.Regexp) []string {
	max := 0
	for _, n := range re.GetGroupNumbers() {
		if n > max {
			max = n
		}
	}

	names := make([]string, max+1)
	for i := 1; i <= max; i++ {
		name := re.GroupNameFromNumber(i)
		if name != strconv.Itoa(i) {
			names[i] = name
		}
	}

	return names
}

// maxInst converts a memory budget into an instruction budget. A quarter of
// the budget goes to the program, the rest is left for matching state.
func maxInst(maxMem int64) int64 {
	return maxMem / 4 / instBytes
}

func dfaStates(maxMem int64) uint32 {
	n := maxMem * 2 / 3 / dfaStateBytes
	switch {
	case n < 1:
		return 1
	case n > maxDFAStates:
		return maxDFAStates
	}

	return uint32(n)
}

// String returns the source pattern.
func (r *Regexp) String() string {
	return r.pattern
}

// Engine reports the backend the pattern was compiled with.
func (r *Regexp) Engine() Engine {
	switch {
	case r.wasm != nil:
		return EngineRE2
	case r.pcre != nil:
		return EnginePCRE
	}

	return EngineCore
}

// NumGroups returns the number of groups including group 0, the whole match.
func (r *Regexp) NumGroups() int {
	return len(r.names)
}

// SubexpNames returns the group names indexed by group number. names[0] and
// unnamed groups are "". The slice is shared and must not be modified.
func (r *Regexp) SubexpNames() []string {
	return r.names
}

// SubexpIndex returns the index of the first group named name, or -1.
func (r *Regexp) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}

	for i, n := range r.names {
		if n == name {
			return i
		}
	}

	return -1
}

// MatchAt searches b starting at byte offset at and requests the first n
// groups. It returns 2*n byte offsets relative to the start of b (-1 for
// groups that did not participate) and whether a match was found. With n ==
// 0 only the match signal is computed and slots is nil.
//
// Assertions such as \b and (?m)^ see the byte before at. Patterns anchored
// at the beginning of text never match when at > 0.
func (r *Regexp) MatchAt(b []byte, at, n int) (slots []int, ok bool) {
	if r.closed() || at < 0 || at > len(b) {
		return nil, false
	}

	if r.anchored && at > 0 {
		return nil, false
	}

	if n > len(r.names) {
		n = len(r.names)
	}

	if r.pcre != nil {
		return r.pcreMatchAt(b, at, n)
	}

	if at > 0 && (r.coreAt != nil || r.wasmAt != nil) {
		if slots, ok, done := r.matchAfter(b, at, n); done {
			return slots, ok
		}
	}

	hay := b[at:]

	var loc []int
	switch n {
	case 0:
		return nil, r.match(hay)
	case 1:
		loc = r.findIndex(hay)
	default:
		loc = r.findSubmatchIndex(hay)
	}

	if loc == nil {
		return nil, false
	}

	slots = make([]int, 2*n)
	for i := range slots {
		slots[i] = -1
		if i < len(loc) && loc[i] >= 0 {
			slots[i] = loc[i] + at
		}
	}

	return slots, true
}

// matchAfter runs the context program from the rune before at. done is false
// when at splits a rune, the caller then searches b[at:] instead.
func (r *Regexp) matchAfter(b []byte, at, n int) (slots []int, ok, done bool) {
	_, size := utf8.DecodeLastRune(b[:at])
	start := at - size
	if _, w := utf8.DecodeRune(b[start:]); w != size {
		return nil, false, false
	}

	var loc []int
	if r.coreAt != nil {
		loc = r.coreAt.FindSubmatchIndex(b[start:])
	} else {
		loc = r.wasmAt.FindSubmatchIndex(b[start:])
	}

	if loc == nil {
		return nil, false, true
	}

	if n == 0 {
		return nil, true, true
	}

	// group 1 of the context program is group 0 of the pattern
	slots = make([]int, 2*n)
	for i := range slots {
		slots[i] = -1
		if j := i + 2; j < len(loc) && loc[j] >= 0 {
			slots[i] = loc[j] + start
		}
	}

	return slots, true, true
}

func (r *Regexp) match(b []byte) bool {
	if r.core != nil {
		return r.core.Match(b)
	}

	return r.wasm.Match(b)
}

func (r *Regexp) findIndex(b []byte) []int {
	if r.core != nil {
		return r.core.FindIndex(b)
	}

	return r.wasm.FindIndex(b)
}

func (r *Regexp) findSubmatchIndex(b []byte) []int {
	if r.core != nil {
		return r.core.FindSubmatchIndex(b)
	}

	return r.wasm.FindSubmatchIndex(b)
}

func (r *Regexp) pcreMatchAt(b []byte, at, n int) ([]int, bool) {
	runes, offsets := decodeRunes(b)
	start := byteToRuneIndex(offsets, at)

	m, err := r.pcre.FindRunesMatchStartingAt(runes, start)
	if err != nil || m == nil {
		return nil, false
	}

	if n == 0 {
		return nil, true
	}

	return pcreSlots(m, offsets, n), true
}

// pcreSlots converts the first n groups of m into byte offsets.
func pcreSlots(m *regexp2.Match, offsets []int, n int) []int {
	groups := m.Groups()
	slots := make([]int, 2*n)
	for i := 0; i < n; i++ {
		slots[2*i], slots[2*i+1] = -1, -1
		if i >= len(groups) || len(groups[i].Captures) == 0 {
			continue
		}

		g := groups[i]
		slots[2*i] = offsets[g.Index]
		slots[2*i+1] = offsets[g.Index+g.Length]
	}

	return slots
}

// Replace substitutes the first match of the pattern in src, or every match
// when global is set, expanding $-references in repl. It reports false when
// nothing matched; src is never modified.
func (r *Regexp) Replace(src, repl []byte, global bool) ([]byte, bool) {
	if r.closed() {
		return nil, false
	}

	if r.pcre != nil {
		return r.pcreReplace(src, repl, global)
	}

	count := 1
	if global {
		count = -1
	}

	var matches [][]int
	if r.core != nil {
		matches = r.core.FindAllSubmatchIndex(src, count)
	} else {
		matches = r.wasm.FindAllSubmatchIndex(src, count)
	}

	if len(matches) == 0 {
		return nil, false
	}

	var dst []byte
	last := 0
	for _, loc := range matches {
		dst = append(dst, src[last:loc[0]]...)
		dst = r.expand(dst, repl, src, loc)
		last = loc[1]
	}

	return append(dst, src[last:]...), true
}

// pcreReplace walks matches over the decoded runes and copies everything
// between them from src, so bytes outside a match are kept as they were.
func (r *Regexp) pcreReplace(src, repl []byte, global bool) ([]byte, bool) {
	runes, offsets := decodeRunes(src)
	n := len(r.names)

	var dst []byte
	last, pos, prevEnd := 0, 0, -1
	replaced := false

	for pos <= len(runes) {
		m, err := r.pcre.FindRunesMatchStartingAt(runes, pos)
		if err != nil || m == nil {
			break
		}

		end := m.Index + m.Length

		// An empty match right after the previous one is not a new match.
		if m.Length == 0 && m.Index == prevEnd {
			pos = m.Index + 1
			continue
		}

		loc := pcreSlots(m, offsets, n)

		replaced = true
		dst = append(dst, src[last:loc[0]]...)
		dst = r.expand(dst, repl, src, loc)
		last, prevEnd = loc[1], end

		if !global {
			break
		}

		pos = end
		if m.Length == 0 {
			pos++
		}
	}

	if !replaced {
		return nil, false
	}

	return append(dst, src[last:]...), true
}

// Close drops the backend program. A closed Regexp never matches.
func (r *Regexp) Close() {
	r.core = nil
	r.wasm = nil
	r.pcre = nil
	r.coreAt = nil
	r.wasmAt = nil
	r.names = nil
}

func (r *Regexp) closed() bool {
	return r.core == nil && r.wasm == nil && r.pcre == nil
}
