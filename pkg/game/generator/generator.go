// Package generator builds office floors by hallway partitioning, room splitting and door
// placement, and assembles them into a building by rejection sampling.
package generator

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"officeworld/pkg/game/building"
)

// BuildingGenerator is an interface for building generation algorithms
type BuildingGenerator interface {
	Generate() (*building.OfficeBuilding, error)
	Name() string
}

// Option configures a Generator
type Option func(*Generator)

// WithLog sets the logger for the generator
var WithLog = func(log *slog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithSeed seeds a private random source. The same seed and config reproduce the same
// building, rejected attempts included.
var WithSeed = func(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source directly
var WithRand = func(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// Generator assembles office buildings from a Config
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	log   *slog.Logger
	stats Stats
}

// New validates cfg and returns a generator. Without WithSeed or WithRand the random
// source is seeded from the clock.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

// Name returns the name of this generator
func (g *Generator) Name() string {
	return "Office Partition"
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// Stats returns the counters of the most recent Generate call
func (g *Generator) Stats() Stats {
	return g.stats
}

var _ BuildingGenerator = (*Generator)(nil)
