// Package effects animates the short-lived decorations shown when food is
// eaten: a burst of particles and a floating score popup. Positions are in
// surface units (cell size × cell index), not grid cells.
package effects

import (
	"errors"
	"math/rand"
)

// Vec2 is a point or velocity on the drawing surface.
type Vec2 struct {
	X, Y float64
}

// Particle is one spark of a burst.
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Life    int
	MaxLife int
	Hue     float64 // degrees
}

// Alpha fades linearly from 1 to 0 over the particle's life.
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Popup is a floating label such as "+10".
type Popup struct {
	Pos     Vec2
	Text    string
	Life    int
	MaxLife int
}

// Opacity fades linearly from 1 to 0 over the popup's life.
func (p Popup) Opacity() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Config tunes bursts and popups.
type Config struct {
	BurstSize     int     // Particles per burst
	ParticleLife  int     // Ticks a particle lives
	ParticleSpeed float64 // Velocity components are drawn from [-Speed/2, Speed/2)
	HueBase       float64 // Lowest hue in degrees
	HueRange      float64 // Hue spread above HueBase
	PopupLife     int     // Ticks a popup lives
	PopupDrift    float64 // Upward movement per tick
}

// DefaultConfig returns the cyan-to-blue burst used by the classic look.
func DefaultConfig() Config {
	return Config{
		BurstSize:     8,
		ParticleLife:  30,
		ParticleSpeed: 8,
		HueBase:       170,
		HueRange:      60,
		PopupLife:     60,
		PopupDrift:    2,
	}
}

// Validate rejects configurations that would never render anything sensible.
func (c Config) Validate() error {
	switch {
	case c.BurstSize < 0:
		return errors.New("effects: burst size must not be negative")
	case c.ParticleLife <= 0:
		return errors.New("effects: particle life must be positive")
	case c.PopupLife <= 0:
		return errors.New("effects: popup life must be positive")
	case c.ParticleSpeed < 0 || c.PopupDrift < 0 || c.HueRange < 0:
		return errors.New("effects: speed, drift and hue range must not be negative")
	}
	return nil
}

// System owns the particle and popup arenas. It is advanced once per
// simulation tick and is not safe for concurrent use.
type System struct {
	cfg       Config
	rng       *rand.Rand
	particles pool[Particle]
	popups    pool[Popup]
}

// New creates an empty system.
func New(cfg Config, seed int64) *System {
	return &System{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Burst spawns BurstSize particles at origin with random velocity and hue.
func (s *System) Burst(origin Vec2) {
	for range s.cfg.BurstSize {
		s.particles.add(Particle{
			Pos: origin,
			Vel: Vec2{
				X: (s.rng.Float64() - 0.5) * s.cfg.ParticleSpeed,
				Y: (s.rng.Float64() - 0.5) * s.cfg.ParticleSpeed,
			},
			Life:    s.cfg.ParticleLife,
			MaxLife: s.cfg.ParticleLife,
			Hue:     s.cfg.HueBase + s.rng.Float64()*s.cfg.HueRange,
		})
	}
}

// Popup spawns a floating label at origin.
func (s *System) Popup(origin Vec2, text string) {
	s.popups.add(Popup{
		Pos:     origin,
		Text:    text,
		Life:    s.cfg.PopupLife,
		MaxLife: s.cfg.PopupLife,
	})
}

// Advance moves every particle by its velocity, lifts every popup by the
// drift, decrements lifetimes and drops whatever reached zero.
func (s *System) Advance() {
	s.particles.advance(func(p *Particle) bool {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Life--
		return p.Life > 0
	})
	s.popups.advance(func(p *Popup) bool {
		p.Pos.Y -= s.cfg.PopupDrift
		p.Life--
		return p.Life > 0
	})
}

// Particles returns a copy of the live particles in spawn order.
func (s *System) Particles() []Particle {
	return s.particles.snapshot()
}

// Popups returns a copy of the live popups in spawn order.
func (s *System) Popups() []Popup {
	return s.popups.snapshot()
}

// Clear drops every particle and popup.
func (s *System) Clear() {
	s.particles.clear()
	s.popups.clear()
}

// Config returns the tuning the system was built with.
func (s *System) Config() Config {
	return s.cfg
}
