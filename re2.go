package re2

import (
	"context"
	"sync"

	"go.dw1.io/re2/internal/config"
	"go.dw1.io/re2/internal/dispatch"
	"go.dw1.io/re2/regexp"
)

// Client runs compile, match and replace calls with a fixed dispatcher,
// allocator and defaults. It is safe for concurrent use.
type Client struct {
	dispatcher *dispatch.Dispatcher
	alloc      Allocator
	limit      int64
	maxMem     int64
	engine     regexp.Engine
}

// Option configures a [Client].
type Option func(*clientConfig)

type clientConfig struct {
	dispatch []dispatch.Option
	alloc    Allocator
	limit    int64
	maxMem   int64
	engine   regexp.Engine
}

// WithBlocking runs calls on worker goroutines when enabled and the host
// supports it, and inline otherwise.
func WithBlocking(enabled bool) Option {
	return func(cfg *clientConfig) {
		cfg.dispatch = append(cfg.dispatch, dispatch.WithBlocking(enabled))
	}
}

// WithWorkers bounds the calls running on workers at once.
func WithWorkers(n int) Option {
	return func(cfg *clientConfig) {
		cfg.dispatch = append(cfg.dispatch, dispatch.WithWorkers(n))
	}
}

// WithAllocator sets the allocator result buffers come from.
func WithAllocator(alloc Allocator) Option {
	return func(cfg *clientConfig) {
		if alloc != nil {
			cfg.alloc = alloc
		}
	}
}

// WithResultLimit caps the bytes allocated for a single call's results.
// Zero means unlimited.
func WithResultLimit(n int64) Option {
	return func(cfg *clientConfig) {
		cfg.limit = max(n, 0)
	}
}

// WithMaxMem sets the compile memory budget used when [CompileOptions.MaxMem]
// is zero.
func WithMaxMem(n int64) Option {
	return func(cfg *clientConfig) {
		if n > 0 {
			cfg.maxMem = n
		}
	}
}

// WithEngine sets the backend used when [CompileOptions.Engine] is left at
// its zero value and for text patterns.
func WithEngine(e regexp.Engine) Option {
	return func(cfg *clientConfig) {
		cfg.engine = e
	}
}

// WithConfig applies loaded settings.
func WithConfig(c config.Config) Option {
	return func(cfg *clientConfig) {
		for _, opt := range []Option{
			WithBlocking(c.Blocking),
			WithWorkers(c.Workers),
			WithResultLimit(c.ResultLimit),
			WithMaxMem(c.MaxMem),
			WithEngine(c.Engine),
		} {
			opt(cfg)
		}
	}
}

// New returns a Client.
func New(opts ...Option) *Client {
	cfg := clientConfig{
		alloc:  HeapAllocator{},
		maxMem: regexp.DefaultMaxMem,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{
		dispatcher: dispatch.New(cfg.dispatch...),
		alloc:      cfg.alloc,
		limit:      cfg.limit,
		maxMem:     cfg.maxMem,
		engine:     cfg.engine,
	}

	logger().Debug().
		Stringer("mode", c.dispatcher.Mode()).
		Int("workers", c.dispatcher.Workers()).
		Bool("supported", dispatch.Supported()).
		Msg("dispatcher ready")

	return c
}

var defaultClient = sync.OnceValue(func() *Client {
	cfg, err := config.Load("")
	if err != nil {
		logger().Warn().Err(err).Msg("using default settings")
		cfg = config.Default()
	}

	return New(WithConfig(cfg))
})

// Compile compiles pattern with the default client.
func Compile(ctx context.Context, pattern []byte, opts CompileOptions) (*Pattern, error) {
	return defaultClient().Compile(ctx, pattern, opts)
}

// Match matches subject with the default client.
func Match(ctx context.Context, subject []byte, expr Expr, opts MatchOptions) (MatchResult, error) {
	return defaultClient().Match(ctx, subject, expr, opts)
}

// Replace rewrites subject with the default client.
func Replace(ctx context.Context, subject []byte, expr Expr, replacement []byte, opts ReplaceOptions) ([]byte, error) {
	return defaultClient().Replace(ctx, subject, expr, replacement, opts)
}

// Compile compiles pattern into a handle. Engine rejections are returned as
// [*CompileError]; invalid options as [ErrBadArgument].
func (c *Client) Compile(ctx context.Context, pattern []byte, opts CompileOptions) (*Pattern, error) {
	return dispatch.Call(ctx, c.dispatcher, func() (*Pattern, error) {
		if opts.Engine == regexp.EngineCore {
			opts.Engine = c.engine
		}

		return compile(pattern, opts, c.maxMem)
	})
}

// Match searches subject from opts.Offset and reports the groups selected by
// opts.Capture. A search that finds nothing, including one starting past the
// end of subject, returns a result with Matched false and no error.
func (c *Client) Match(ctx context.Context, subject []byte, expr Expr, opts MatchOptions) (MatchResult, error) {
	return dispatch.Call(ctx, c.dispatcher, func() (MatchResult, error) {
		return c.match(subject, expr, opts)
	})
}

func (c *Client) match(subject []byte, expr Expr, opts MatchOptions) (MatchResult, error) {
	if err := opts.validate(); err != nil {
		return MatchResult{}, err
	}

	p, done, err := c.borrow(expr, opts.Caseless)
	if err != nil {
		return MatchResult{}, err
	}
	defer done()

	if opts.Offset > len(subject) {
		return MatchResult{}, nil
	}

	plan := planCaptures(opts.Capture, p.re.NumGroups(), p.re.SubexpNames())

	slots, ok := p.re.MatchAt(subject, opts.Offset, plan.groups)
	if !ok {
		return MatchResult{}, nil
	}

	values, err := encode(subject, slots, plan.ids, opts.Type, newBudget(c.alloc, c.limit))
	if err != nil {
		return MatchResult{}, err
	}

	return MatchResult{Matched: true, Values: values}, nil
}

// Replace substitutes the first match of expr in subject, or every match
// when opts.Global is set. replacement may reference groups as $1, ${1},
// $name, ${name}; $$ is a literal $. The result is always a new buffer, a
// copy of subject when nothing matched.
func (c *Client) Replace(ctx context.Context, subject []byte, expr Expr, replacement []byte, opts ReplaceOptions) ([]byte, error) {
	return dispatch.Call(ctx, c.dispatcher, func() ([]byte, error) {
		return c.replace(subject, expr, replacement, opts)
	})
}

func (c *Client) replace(subject []byte, expr Expr, replacement []byte, opts ReplaceOptions) ([]byte, error) {
	p, done, err := c.borrow(expr, false)
	if err != nil {
		return nil, err
	}
	defer done()

	out, ok := p.re.Replace(subject, replacement, opts.Global)
	if !ok {
		out = subject
	}

	buf, err := newBudget(c.alloc, c.limit).Alloc(len(out))
	if err != nil {
		return nil, err
	}
	copy(buf, out)

	return buf, nil
}

func (c *Client) borrow(expr Expr, caseless bool) (*Pattern, func(), error) {
	return borrow(expr, CompileOptions{Caseless: caseless, Engine: c.engine}, c.maxMem)
}
