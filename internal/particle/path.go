package particle

import (
	"strconv"
	"strings"
)

// Point is a particle center.
type Point struct {
	X, Y int
}

// Primitive is the vector form of one cluster: a plain circle when it holds
// one center, otherwise a compound path of full circles, one per center.
//
// The compound form is a union of overlapping circle outlines under a
// single fill. No boundary merging or hull computation is done.
type Primitive struct {
	Centers []Point
	Radius  float64
}

// NewPrimitive converts a non-empty cluster into a Primitive.
func NewPrimitive(cluster []Particle, radius float64) Primitive {
	centers := make([]Point, len(cluster))
	for i, p := range cluster {
		centers[i] = Point{X: p.X, Y: p.Y}
	}
	return Primitive{Centers: centers, Radius: radius}
}

// IsCircle reports whether the primitive is emitted as a <circle>.
func (p Primitive) IsCircle() bool {
	return len(p.Centers) == 1
}

// Markup renders the primitive as an SVG element.
//
// A circle renders as <circle cx="X" cy="Y" r="R"/>. A compound path
// renders each center as two half-circle arcs, starting at the leftmost
// point of the circle:
//
//	M x-r,y a r,r 0 1,0 2r,0 a r,r 0 1,0 -2r,0
//
// with segments joined by a single space.
func (p Primitive) Markup() string {
	var sb strings.Builder
	p.writeMarkup(&sb)
	return sb.String()
}

func (p Primitive) writeMarkup(sb *strings.Builder) {
	r := formatNumber(p.Radius)

	if p.IsCircle() {
		c := p.Centers[0]
		sb.WriteString(`<circle cx="`)
		sb.WriteString(strconv.Itoa(c.X))
		sb.WriteString(`" cy="`)
		sb.WriteString(strconv.Itoa(c.Y))
		sb.WriteString(`" r="`)
		sb.WriteString(r)
		sb.WriteString(`"/>`)
		return
	}

	diameter := formatNumber(p.Radius * 2)
	negDiameter := formatNumber(-p.Radius * 2)

	sb.WriteString(`<path d="`)
	for i, c := range p.Centers {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("M ")
		sb.WriteString(formatNumber(float64(c.X) - p.Radius))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(c.Y))
		sb.WriteString(" a ")
		sb.WriteString(r)
		sb.WriteByte(',')
		sb.WriteString(r)
		sb.WriteString(" 0 1,0 ")
		sb.WriteString(diameter)
		sb.WriteString(",0 a ")
		sb.WriteString(r)
		sb.WriteByte(',')
		sb.WriteString(r)
		sb.WriteString(" 0 1,0 ")
		sb.WriteString(negDiameter)
		sb.WriteString(",0")
	}
	sb.WriteString(`"/>`)
}

// formatNumber prints v in its shortest round-trip form: 2, 1.5, -3.
// Negative zero prints as 0.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
