package beams

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures planning.
type Option func(*config)

type config struct {
	policy Policy
	logger *log.Logger
}

// WithPolicy replaces the default framing policy.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithLogger sets the logger used for coverage warnings and debug output.
// By default planning is silent.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		policy: DefaultPolicy(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
