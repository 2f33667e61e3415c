package dispatch

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mode is how a [Dispatcher] runs calls.
type Mode int

const (
	// Inline runs calls on the caller's goroutine.
	Inline Mode = iota
	// Pooled runs calls on a bounded set of worker goroutines.
	Pooled
)

func (m Mode) String() string {
	if m == Pooled {
		return "pooled"
	}

	return "inline"
}

// Supported reports whether the host can run calls on blocking workers. It
// is computed once per process.
var Supported = sync.OnceValue(func() bool {
	return runtime.NumCPU() > 1
})

// Dispatcher executes calls in one [Mode]. It keeps no state between calls
// beyond the worker bound and is safe for concurrent use.
type Dispatcher struct {
	mode    Mode
	workers int
	sem     *semaphore.Weighted
}

// New returns a Dispatcher. By default it pools when [Supported] reports
// true, with GOMAXPROCS workers.
func New(opts ...Option) *Dispatcher {
	cfg := config{
		blocking: Supported(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Dispatcher{mode: Inline, workers: cfg.workers}
	if cfg.blocking && Supported() {
		d.mode = Pooled
		d.sem = semaphore.NewWeighted(int64(cfg.workers))
	}

	return d
}

// Mode returns the mode calls run in.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Workers returns the worker bound. It is meaningful in pooled mode only.
func (d *Dispatcher) Workers() int {
	return d.workers
}

type outcome[T any] struct {
	val       T
	err       error
	panicked  bool
	recovered any
}

// Call runs fn through d and returns its result. fn is not run when ctx is
// already done, or in pooled mode when ctx ends before a worker is free.
func Call[T any](ctx context.Context, d *Dispatcher, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	if d == nil || d.mode == Inline {
		return fn()
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer d.sem.Release(1)

		var out outcome[T]
		defer func() {
			if r := recover(); r != nil {
				out.panicked, out.recovered = true, r
			}
			done <- out
		}()

		out.val, out.err = fn()
	}()

	out := <-done
	if out.panicked {
		panic(out.recovered)
	}

	return out.val, out.err
}
