package particle

import (
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

// SVGNamespace is the namespace declared on every document root.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Group is one drawing group of the document: a fill color and the
// primitive it paints.
type Group struct {
	Color     imaging.Color
	Primitive Primitive
}

// Document is an assembled particle drawing. Groups are in paint order:
// darker colors first, so brighter groups sit on top.
type Document struct {
	Width  int
	Height int
	Groups []Group
}

// Assemble clusters each color group and emits one drawing group per
// cluster, preserving the order of groups.
func Assemble(width, height int, groups []ColorGroup, s Settings) *Document {
	doc := &Document{Width: width, Height: height}
	radius := s.Radius()
	mergeDistance := s.MergeDistance()

	for _, g := range groups {
		for _, cluster := range ClusterParticles(g.Particles, mergeDistance) {
			doc.Groups = append(doc.Groups, Group{
				Color:     g.Color,
				Primitive: NewPrimitive(cluster, radius),
			})
		}
	}
	return doc
}

// String serializes the document:
//
//	<svg xmlns="..." width="W" height="H" viewBox="0 0 W H">
//	  <g fill="#rrggbb">...</g>
//	</svg>
func (d *Document) String() string {
	var sb strings.Builder
	d.write(&sb)
	return sb.String()
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

func (d *Document) write(sb *strings.Builder) {
	w := strconv.Itoa(d.Width)
	h := strconv.Itoa(d.Height)

	sb.WriteString(`<svg xmlns="`)
	sb.WriteString(SVGNamespace)
	sb.WriteString(`" width="`)
	sb.WriteString(w)
	sb.WriteString(`" height="`)
	sb.WriteString(h)
	sb.WriteString(`" viewBox="0 0 `)
	sb.WriteString(w)
	sb.WriteByte(' ')
	sb.WriteString(h)
	sb.WriteString("\">\n  ")

	for i, g := range d.Groups {
		if i > 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(`<g fill="`)
		sb.WriteString(g.Color.Hex())
		sb.WriteString(`">`)
		g.Primitive.writeMarkup(sb)
		sb.WriteString(`</g>`)
	}

	sb.WriteString("\n</svg>")
}
