package particle

import (
	"fmt"
	"math"
)

// Density bounds, in percent.
const (
	MinDensity = 10
	MaxDensity = 100
)

// MinStep is the smallest grid spacing a conversion may sample at, in
// pixels. It bounds the particle count at two per pixel.
const MinStep = 1

// Settings controls one conversion. A Settings value is never modified by
// the pipeline.
type Settings struct {
	// ParticleSize is the particle radius in pixels. It must round to a
	// radius of at least 0.1 and give a grid step of at least MinStep.
	ParticleSize float64 `json:"particle_size"`

	// ParticleDensity is a percentage in [10,100]. Lower values widen the
	// sampling grid and produce fewer particles.
	ParticleDensity float64 `json:"particle_density"`

	// Blur is the Gaussian sigma applied before sampling. Zero disables it.
	Blur float64 `json:"blur"`
}

// DefaultSettings returns the settings the web tool starts with.
func DefaultSettings() Settings {
	return Settings{
		ParticleSize:    2,
		ParticleDensity: 50,
		Blur:            0,
	}
}

// Validate rejects settings that would produce degenerate output.
//
// A particle size that rounds to a zero radius would give zero-radius
// primitives, and a grid step below MinStep samples without bound; a zero
// density would divide by zero. Conversions fail fast with ErrSettings
// instead of defining saturating behavior for these.
func (s Settings) Validate() error {
	if !(s.ParticleSize > 0) || math.IsInf(s.ParticleSize, 0) {
		return fmt.Errorf("%w: particle size must be a positive number, got %v", ErrSettings, s.ParticleSize)
	}
	if s.Radius() <= 0 {
		return fmt.Errorf("%w: particle size %v rounds to a zero radius", ErrSettings, s.ParticleSize)
	}
	if !(s.ParticleDensity >= MinDensity && s.ParticleDensity <= MaxDensity) {
		return fmt.Errorf("%w: particle density must be within [%d,%d], got %v",
			ErrSettings, MinDensity, MaxDensity, s.ParticleDensity)
	}
	if step := s.Step(); step < MinStep {
		return fmt.Errorf("%w: particle size %v at density %v gives a grid step of %v, below %dpx",
			ErrSettings, s.ParticleSize, s.ParticleDensity, step, MinStep)
	}
	if !(s.Blur >= 0) || math.IsInf(s.Blur, 0) {
		return fmt.Errorf("%w: blur must be a non-negative number, got %v", ErrSettings, s.Blur)
	}
	return nil
}

// Step returns the grid spacing shared by both sampling passes:
// max(2·size, round(2·size·100/density)).
func (s Settings) Step() float64 {
	diameter := s.ParticleSize * 2
	return math.Max(diameter, math.Round(diameter*(100/s.ParticleDensity)))
}

// MergeDistance is the largest distance at which two same-color particles
// still join one cluster.
func (s Settings) MergeDistance() float64 {
	return s.ParticleSize * 3
}

// Radius is the particle size rounded to one decimal, the radius written
// into the document.
func (s Settings) Radius() float64 {
	return math.Round(s.ParticleSize*10) / 10
}
