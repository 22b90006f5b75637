package particle

import (
	"math"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

// Particle is one sampled point: integer pixel coordinates and the color
// found there.
type Particle struct {
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Color imaging.Color `json:"color"`
}

// Sample runs both grid passes over buf and returns their survivors.
//
// The primary pass starts at (size, size); the secondary pass uses the same
// step but starts half a step further along both axes, landing between the
// primary points. Both passes apply the same filter: alpha below 128 is
// skipped, and on a light background anything within RGB distance 30 of it
// is skipped. The passes are not deduplicated against each other.
func Sample(buf *imaging.PixelBuffer, bg imaging.Background, s Settings) (primary, secondary []Particle) {
	step := s.Step()
	primary = samplePass(buf, bg, s.ParticleSize, step)
	secondary = samplePass(buf, bg, s.ParticleSize+step/2, step)
	return primary, secondary
}

// samplePass walks one grid whose first point is (origin, origin).
func samplePass(buf *imaging.PixelBuffer, bg imaging.Background, origin, step float64) []Particle {
	var particles []Particle
	width, height := float64(buf.Width), float64(buf.Height)

	for y := origin; y < height; y += step {
		for x := origin; x < width; x += step {
			px := int(math.Round(x))
			py := int(math.Round(y))
			if px < 0 || px >= buf.Width || py < 0 || py >= buf.Height {
				continue
			}

			r, g, b, a := buf.RGBA(px, py)
			c := imaging.Color{R: r, G: g, B: b}
			if bg.Excludes(c, a) {
				continue
			}
			particles = append(particles, Particle{X: px, Y: py, Color: c})
		}
	}
	return particles
}
