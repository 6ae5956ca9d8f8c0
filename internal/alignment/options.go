package alignment

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxPaths is the enumeration ceiling used when none is configured.
const DefaultMaxPaths = 10000

// Option configures path enumeration and the NeedlemanWunsch pipeline.
type Option func(*Options)

// Options holds the settings applied by Option functions.
type Options struct {
	// Ctx is checked while enumerating; cancelling it aborts the run.
	Ctx context.Context

	// MaxPaths caps the number of enumerated paths. Zero means no cap.
	MaxPaths int

	// StrictLimit makes hitting MaxPaths an ErrPathLimit failure instead
	// of a truncated result.
	StrictLimit bool

	// Logger receives pipeline diagnostics. Defaults to a discard logger.
	Logger *slog.Logger
}

// DefaultOptions returns background context, DefaultMaxPaths, truncating
// behavior and a silent logger.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxPaths: DefaultMaxPaths,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Logger == nil {
		o.Logger = DefaultOptions().Logger
	}
	return o
}

// WithContext sets the context checked during enumeration.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Ctx = ctx
	}
}

// WithMaxPaths sets the enumeration ceiling; n <= 0 removes it.
func WithMaxPaths(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxPaths = n
	}
}

// WithStrictLimit turns a reached ceiling into ErrPathLimit.
func WithStrictLimit() Option {
	return func(o *Options) {
		o.StrictLimit = true
	}
}

// WithLogger sets the logger used by NeedlemanWunsch.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
