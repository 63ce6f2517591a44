package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// Particle is a short-lived visual effect entity.
type Particle struct {
	Position core.Vec2
	Velocity core.Vec2
	Gravity  float64
	Life     int // Remaining ticks
	MaxLife  int
	Glyph    string
	Color    core.Color
}

// LifeFraction returns remaining life in [0,1]; renderers map it to opacity.
func (p Particle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(float64(p.Life)/float64(p.MaxLife), 0, 1)
}

// ParticleSystem owns the particles of one session.
type ParticleSystem struct {
	cfg       config.ParticleConfig
	color     core.Color
	rng       RandSource
	particles []Particle
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(cfg config.ParticleConfig, rng RandSource) *ParticleSystem {
	if cfg.Life <= 0 {
		cfg.Life = 1
	}
	return &ParticleSystem{
		cfg:       cfg,
		color:     core.ParseColor(cfg.Color),
		rng:       rng,
		particles: make([]Particle, 0, cfg.Count),
	}
}

// SpawnBurst creates count particles at origin with a random horizontal
// velocity in [-spread/2, spread/2) and a random upward velocity.
func (ps *ParticleSystem) SpawnBurst(origin core.Vec2, count int) {
	for i := 0; i < count; i++ {
		vx := (ps.rng.Float64() - 0.5) * ps.cfg.SpreadX
		vy := (ps.rng.Float64()-1)*ps.cfg.Lift - ps.cfg.Kick
		ps.particles = append(ps.particles, Particle{
			Position: origin,
			Velocity: core.Vec2{X: vx, Y: vy},
			Gravity:  ps.cfg.Gravity,
			Life:     ps.cfg.Life,
			MaxLife:  ps.cfg.Life,
			Glyph:    ps.cfg.Glyph,
			Color:    ps.color,
		})
	}
}

// Advance performs one Euler step for every particle and drops dead ones.
func (ps *ParticleSystem) Advance() {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Position = p.Position.Add(p.Velocity)
		p.Velocity.Y += p.Gravity
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	// Clear the tail so dropped particles don't linger in the backing array
	for i := len(alive); i < len(ps.particles); i++ {
		ps.particles[i] = Particle{}
	}
	ps.particles = alive
}

// Particles returns the live particles. Callers must not modify the slice.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
