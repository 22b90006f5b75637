package particle

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

func TestGroupByColor(t *testing.T) {
	white := imaging.Color{R: 255, G: 255, B: 255}
	black := imaging.Color{R: 0, G: 0, B: 0}
	red := imaging.Color{R: 255, G: 0, B: 0}

	particles := []Particle{
		{X: 0, Y: 0, Color: white},
		{X: 1, Y: 0, Color: red},
		{X: 2, Y: 0, Color: black},
		{X: 3, Y: 0, Color: red},
		{X: 4, Y: 0, Color: white},
	}

	got := GroupByColor(particles)
	want := []ColorGroup{
		{Color: black, Particles: []Particle{{X: 2, Y: 0, Color: black}}},
		{Color: red, Particles: []Particle{{X: 1, Y: 0, Color: red}, {X: 3, Y: 0, Color: red}}},
		{Color: white, Particles: []Particle{{X: 0, Y: 0, Color: white}, {X: 4, Y: 0, Color: white}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByColor mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByColor_OffByOneIsSeparate(t *testing.T) {
	a := imaging.Color{R: 10, G: 10, B: 10}
	b := imaging.Color{R: 10, G: 10, B: 11}

	groups := GroupByColor([]Particle{{Color: a}, {X: 1, Color: b}})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestGroupByColor_OrderIndependentOfInput(t *testing.T) {
	dark := imaging.Color{R: 100, G: 0, B: 0}
	light := imaging.Color{R: 0, G: 150, B: 0}

	forward := GroupByColor([]Particle{{Color: dark}, {X: 1, Color: light}})
	backward := GroupByColor([]Particle{{X: 1, Color: light}, {Color: dark}})
	for _, groups := range [][]ColorGroup{forward, backward} {
		if groups[0].Color != dark || groups[1].Color != light {
			t.Errorf("got order %s,%s; want %s,%s",
				groups[0].Color.Hex(), groups[1].Color.Hex(), dark.Hex(), light.Hex())
		}
	}
}

func TestGroupByColor_PartitionAndOrder(t *testing.T) {
	buf := newBuffer(t, 40, 30, func(x, y int) (uint8, uint8, uint8, uint8) {
		return uint8((x / 5) * 40), uint8((y / 5) * 50), uint8(((x + y) / 10) * 60), 255
	})
	s := Settings{ParticleSize: 1, ParticleDensity: 100}
	primary, secondary := Sample(buf, imaging.EstimateBackground(buf), s)
	particles := append(primary, secondary...)

	groups := GroupByColor(particles)

	total := 0
	seen := make(map[imaging.Color]bool)
	for i, g := range groups {
		if seen[g.Color] {
			t.Errorf("color %s appears in more than one group", g.Color.Hex())
		}
		seen[g.Color] = true
		for _, p := range g.Particles {
			if p.Color != g.Color {
				t.Errorf("particle color %s in group %s", p.Color.Hex(), g.Color.Hex())
			}
		}
		total += len(g.Particles)
		if i > 0 && groups[i-1].Color.Luminance() > g.Color.Luminance() {
			t.Errorf("group %d (%s) is lighter than group %d (%s)",
				i-1, groups[i-1].Color.Hex(), i, g.Color.Hex())
		}
	}
	if total != len(particles) {
		t.Errorf("groups hold %d particles, want %d", total, len(particles))
	}
}

func TestGroupByColor_Empty(t *testing.T) {
	if groups := GroupByColor(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
