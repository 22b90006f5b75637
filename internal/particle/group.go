package particle

import (
	"sort"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

// ColorGroup holds every particle of one exact color.
type ColorGroup struct {
	Color     imaging.Color
	Particles []Particle
}

// GroupByColor buckets particles by exact RGB triple and orders the buckets
// dark to light by luminance. Colors differing by a single unit form
// separate groups.
//
// Groups of equal luminance keep the order in which their color was first
// encountered in particles, so the result is fully determined by the input.
func GroupByColor(particles []Particle) []ColorGroup {
	index := make(map[imaging.Color]int)
	var groups []ColorGroup

	for _, p := range particles {
		i, ok := index[p.Color]
		if !ok {
			i = len(groups)
			index[p.Color] = i
			groups = append(groups, ColorGroup{Color: p.Color})
		}
		groups[i].Particles = append(groups[i].Particles, p)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Color.Luminance() < groups[b].Color.Luminance()
	})
	return groups
}
