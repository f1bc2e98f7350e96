package space

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures an analysis.
type Option func(*config)

type config struct {
	policy Policy
	logger *log.Logger
	clock  func() time.Time
}

// WithPolicy replaces the default space policy.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithLogger sets the logger for debug output. By default analysis is silent.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the source of Snapshot.ComputedAt.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		policy: DefaultPolicy(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
