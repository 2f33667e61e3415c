package re2

import (
	"runtime"
	"sync/atomic"

	"go.dw1.io/re2/regexp"
)

// Expr is the pattern argument of [Match] and [Replace]: either a compiled
// *[Pattern] or [Text] to be compiled for the duration of the call.
type Expr interface {
	expr()
}

// Text is pattern source compiled ad hoc with default compile options.
type Text []byte

func (Text) expr() {}

// Pattern is a compiled pattern. It is immutable and safe for concurrent
// use. The zero value is not a valid pattern; use [Compile].
//
// A Pattern holds one reference when it is returned. [Pattern.Clone] takes
// another, [Pattern.Release] drops one, and the engine program is torn down
// when the count reaches zero. Any use after that reports [ErrBadArgument].
type Pattern struct {
	re       *regexp.Regexp
	caseless bool
	refs     atomic.Int64
	cleanup  runtime.Cleanup
}

func (*Pattern) expr() {}

func newPattern(re *regexp.Regexp, caseless bool) *Pattern {
	p := &Pattern{re: re, caseless: caseless}
	p.refs.Store(1)

	// The host may drop the handle without releasing it. Once p is
	// unreachable no call can be borrowing it, so closing the program
	// directly is safe.
	p.cleanup = runtime.AddCleanup(p, func(re *regexp.Regexp) {
		re.Close()
		logger().Debug().Str("pattern", re.String()).Msg("pattern collected")
	}, re)

	return p
}

// acquire borrows a reference for the duration of a call. It fails once the
// count has reached zero.
func (p *Pattern) acquire() bool {
	if p == nil {
		return false
	}

	for {
		n := p.refs.Load()
		if n <= 0 {
			return false
		}

		if p.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops a reference and tears the pattern down when it was the last.
func (p *Pattern) release() bool {
	for {
		n := p.refs.Load()
		if n <= 0 {
			return false
		}

		if p.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				p.teardown()
			}

			return true
		}
	}
}

func (p *Pattern) teardown() {
	p.cleanup.Stop()

	logger().Debug().Str("pattern", p.re.String()).Msg("pattern released")

	p.re.Close()
	p.re = nil
}

// Clone takes another reference to p. Each reference is dropped with its own
// call to [Pattern.Release].
func (p *Pattern) Clone() (*Pattern, error) {
	if !p.acquire() {
		return nil, badArgument("pattern is released or uninitialized")
	}

	return p, nil
}

// Release drops one reference. Releasing more references than were taken
// reports [ErrBadArgument].
func (p *Pattern) Release() error {
	if p == nil || !p.release() {
		return badArgument("pattern is released or uninitialized")
	}

	return nil
}

// NumGroups returns the number of groups, counting group 0 (the whole
// match). It returns 0 for a released pattern.
func (p *Pattern) NumGroups() int {
	if !p.acquire() {
		return 0
	}
	defer p.release()

	return p.re.NumGroups()
}

// SubexpNames returns the group names indexed by group number. Unnamed
// groups are "". It returns nil for a released pattern.
func (p *Pattern) SubexpNames() []string {
	if !p.acquire() {
		return nil
	}
	defer p.release()

	return append([]string(nil), p.re.SubexpNames()...)
}

// String returns the pattern source. It returns "" for a released pattern.
func (p *Pattern) String() string {
	if !p.acquire() {
		return ""
	}
	defer p.release()

	return p.re.String()
}

// Engine reports the backend p was compiled with. It returns
// [regexp.EngineCore] for a released pattern.
func (p *Pattern) Engine() regexp.Engine {
	if !p.acquire() {
		return regexp.EngineCore
	}
	defer p.release()

	return p.re.Engine()
}

// Caseless reports whether p was compiled case-insensitively.
func (p *Pattern) Caseless() bool {
	if !p.acquire() {
		return false
	}
	defer p.release()

	return p.caseless
}

// compile builds a pattern handle. Nothing is held on the error path.
func compile(pattern []byte, opts CompileOptions, maxMem int64) (*Pattern, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.MaxMem > 0 {
		maxMem = opts.MaxMem
	}

	re, err := regexp.Compile(string(pattern), regexp.Options{
		Caseless: opts.Caseless,
		MaxMem:   maxMem,
		Engine:   opts.Engine,
	})
	if err != nil {
		ce := newCompileError(err)
		logger().Debug().
			Str("code", string(ce.Code)).
			Str("fragment", ce.Fragment).
			Msg("compile failed")

		return nil, ce
	}

	return newPattern(re, opts.Caseless), nil
}

// borrow resolves expr into a pattern holding a reference for the caller.
// Text is compiled with opts; a compiled pattern rejects opts.Caseless. The
// returned function drops the reference, tearing an ad hoc pattern down.
func borrow(expr Expr, opts CompileOptions, maxMem int64) (*Pattern, func(), error) {
	switch e := expr.(type) {
	case *Pattern:
		if !e.acquire() {
			return nil, nil, badArgument("pattern is released or uninitialized")
		}

		if opts.Caseless {
			e.release()
			return nil, nil, badArgument("caseless cannot be applied to a compiled pattern")
		}

		return e, func() { e.release() }, nil
	case Text:
		p, err := compile(e, opts, maxMem)
		if err != nil {
			return nil, nil, badArgument("%w", err)
		}

		return p, func() { p.release() }, nil
	}

	return nil, nil, badArgument("pattern must be a compiled pattern or text, got %T", expr)
}
