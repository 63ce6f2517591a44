package engine

import (
	"math"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// RandSource is the randomness a session draws from.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// FallingItem is an item in flight. Owned by the session's item list.
type FallingItem struct {
	Lane      core.Lane
	Y         float64 // Vertical position in field units
	Kind      *ItemKind
	FallSpeed float64 // Equals Kind.BaseSpeed; the speed multiplier applies at move time
}

// ItemSpawner decides when to emit new items and what they are.
//
// A spawn fires once the ticks since the last spawn exceed
// interval / max(1, speedMultiplier*scale). Every spawn shrinks the interval
// by a fixed decrement, never below the floor.
type ItemSpawner struct {
	catalog  *Catalog
	rng      RandSource
	cfg      config.SpawnConfig
	spawnY   float64
	interval float64
}

// NewItemSpawner creates a spawner for one session.
func NewItemSpawner(catalog *Catalog, cfg config.SpawnConfig, spawnY float64, rng RandSource) *ItemSpawner {
	if !(cfg.MinInterval > 0) {
		cfg.MinInterval = 1
	}
	if cfg.InitialInterval < cfg.MinInterval {
		cfg.InitialInterval = cfg.MinInterval
	}
	if cfg.Decrement < 0 {
		cfg.Decrement = 0
	}
	if !(cfg.MultiplierScale > 0) {
		cfg.MultiplierScale = 1
	}
	return &ItemSpawner{
		catalog:  catalog,
		rng:      rng,
		cfg:      cfg,
		spawnY:   spawnY,
		interval: cfg.InitialInterval,
	}
}

// Reset restores the initial cadence.
func (s *ItemSpawner) Reset() {
	s.interval = s.cfg.InitialInterval
}

// Interval returns the current base cadence in ticks.
func (s *ItemSpawner) Interval() float64 {
	return s.interval
}

// Threshold returns the cadence in effect for the given speed multiplier.
func (s *ItemSpawner) Threshold(speedMultiplier float64) float64 {
	div := math.Max(1, speedMultiplier*s.cfg.MultiplierScale)
	t := s.interval / div
	if math.IsNaN(t) || t <= 0 {
		return s.cfg.MinInterval
	}
	return t
}

// MaybeSpawn returns a new item when elapsed ticks exceed the current cadence.
// Lane and kind are drawn independently: one Intn for the lane, then one
// Float64 against the cumulative table.
func (s *ItemSpawner) MaybeSpawn(elapsed, speedMultiplier float64) (FallingItem, bool) {
	if !(elapsed > s.Threshold(speedMultiplier)) {
		return FallingItem{}, false
	}

	lane := core.ClampLane(s.rng.Intn(core.LaneCount))
	kind := s.catalog.Pick(s.rng.Float64())
	if kind == nil {
		return FallingItem{}, false
	}

	s.interval = math.Max(s.cfg.MinInterval, s.interval-s.cfg.Decrement)

	return FallingItem{
		Lane:      lane,
		Y:         s.spawnY,
		Kind:      kind,
		FallSpeed: kind.BaseSpeed,
	}, true
}
