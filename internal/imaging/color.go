package imaging

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// OpaqueThreshold is the minimum alpha a pixel needs to be sampled.
	OpaqueThreshold = 128

	// LightBackgroundLuminance is the background luminance above which
	// near-background pixels are filtered out.
	LightBackgroundLuminance = 200

	// BackgroundDistance is the RGB distance under which a pixel counts as
	// background when the background is light.
	BackgroundDistance = 30
)

// Color is an 8-bit RGB triple. Alpha is never carried in a Color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Luminance returns the ITU-R BT.601 luma of c (0.299R + 0.587G + 0.114B).
func (c Color) Luminance() float64 {
	return Luminance(float64(c.R), float64(c.G), float64(c.B))
}

// Hex formats c as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseHex parses "#rrggbb" (or "#rgb") into a Color.
func ParseHex(s string) (Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Luminance weights r, g and b with the BT.601 coefficients.
func Luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// Background is the reference background color averaged from the four
// corner pixels. Channels are fractional because they are means.
type Background struct {
	R, G, B float64

	// Luminance is the BT.601 luma of the averaged color.
	Luminance float64
}

// EstimateBackground averages the top-left, top-right, bottom-left and
// bottom-right pixels of buf. Alpha is ignored.
//
// The corner reads are always in bounds for a non-empty buffer.
func EstimateBackground(buf *PixelBuffer) Background {
	corners := [4][2]int{
		{0, 0},
		{buf.Width - 1, 0},
		{0, buf.Height - 1},
		{buf.Width - 1, buf.Height - 1},
	}

	var r, g, b float64
	for _, p := range corners {
		i := buf.Offset(p[0], p[1])
		r += float64(buf.Pix[i])
		g += float64(buf.Pix[i+1])
		b += float64(buf.Pix[i+2])
	}

	bg := Background{R: r / 4, G: g / 4, B: b / 4}
	bg.Luminance = Luminance(bg.R, bg.G, bg.B)
	return bg
}

// IsLight reports whether background filtering applies at all. Dark
// backgrounds are never filtered.
func (bg Background) IsLight() bool {
	return bg.Luminance > LightBackgroundLuminance
}

// Distance returns the Euclidean RGB distance from c to the background.
func (bg Background) Distance(c Color) float64 {
	dr := float64(c.R) - bg.R
	dg := float64(c.G) - bg.G
	db := float64(c.B) - bg.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Excludes reports whether a pixel with the given color and alpha must be
// skipped: it is too transparent, or it sits on a light background and is
// within BackgroundDistance of it.
func (bg Background) Excludes(c Color, alpha uint8) bool {
	if alpha < OpaqueThreshold {
		return true
	}
	return bg.IsLight() && bg.Distance(c) < BackgroundDistance
}

// UniqueColors scans every pixel of buf in row-major order and returns the
// distinct colors that survive the transparency and background filters, in
// first-seen order, stopping once limit colors are found. A limit of zero
// or less returns all of them.
func UniqueColors(buf *PixelBuffer, limit int) []Color {
	bg := EstimateBackground(buf)
	seen := make(map[Color]struct{})
	var colors []Color

	for i := 0; i < len(buf.Pix); i += 4 {
		c := Color{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
		if bg.Excludes(c, buf.Pix[i+3]) {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
		if limit > 0 && len(colors) == limit {
			break
		}
	}
	return colors
}

// HexColors formats colors as lowercase hex strings.
func HexColors(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}
