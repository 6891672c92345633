package gapbuffer

// Default configuration values.
const (
	// DefaultCapacity is the capacity of a buffer created by New.
	DefaultCapacity = 32

	// DefaultSlack is the gap width left after content passed to FromSlice.
	DefaultSlack = 8
)

type options struct {
	capacity    int
	slack       int
	maxCapacity int
}

func defaultOptions() options {
	return options{
		capacity: DefaultCapacity,
		slack:    DefaultSlack,
	}
}

// Option configures a GapBuffer during creation.
type Option func(*options)

// WithCapacity sets the initial capacity of an empty buffer.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// WithSlack sets the gap width left after initial content.
func WithSlack(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.slack = n
		}
	}
}

// WithMaxCapacity limits how far the buffer may grow.
// Growth beyond the limit fails with ErrAllocationFailed. Zero means no limit.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxCapacity = n
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
