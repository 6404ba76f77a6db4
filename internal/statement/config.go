package statement

import (
	"log/slog"
	"math/rand/v2"

	"github.com/Veraticus/stmtgen/internal/calendar"
)

// Config holds generator configuration.
type Config struct {
	Logger  *slog.Logger
	NewRand func() Rand
	Anchors calendar.AnchorSet
}

// Option is a functional option for configuring a Generator.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Logger:  slog.Default(),
		NewRand: func() Rand { return globalRand{} },
		Anchors: calendar.DefaultAnchors(),
	}
}

// WithSeed makes every Generate call draw from its own PCG stream seeded
// with seed, so equal requests yield equal statements.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.NewRand = func() Rand {
			return rand.New(rand.NewPCG(seed, seed^pcgStream))
		}
	}
}

// WithRand sets the factory that supplies a random source per Generate call.
// The factory must not hand the same non-reentrant source to concurrent calls.
func WithRand(factory func() Rand) Option {
	return func(c *Config) {
		if factory != nil {
			c.NewRand = factory
		}
	}
}

// WithInterestAnchors replaces the default interest posting days.
func WithInterestAnchors(anchors calendar.AnchorSet) Option {
	return func(c *Config) {
		c.Anchors = anchors
	}
}

// WithLogger sets the logger used for generation summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
