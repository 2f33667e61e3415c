package dispatch

// Option configures a [Dispatcher].
type Option func(*config)

type config struct {
	blocking bool
	workers  int
}

// WithBlocking selects pooled mode when enabled. Pooled mode is only used
// when the host also supports it.
func WithBlocking(enabled bool) Option {
	return func(cfg *config) {
		cfg.blocking = enabled
	}
}

// WithWorkers sets the number of calls that may run on workers at once.
// Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}
