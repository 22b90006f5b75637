package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyoz/svg"
)

// Info describes the root element of an SVG document.
type Info struct {
	// Width and Height are the root width/height attributes in user units,
	// zero when absent or not plain numbers.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// ViewBox is the raw viewBox attribute.
	ViewBox string `json:"view_box"`

	// ViewWidth and ViewHeight are the third and fourth viewBox values.
	ViewWidth  float64 `json:"view_width"`
	ViewHeight float64 `json:"view_height"`
}

// Size returns the document size used when an export does not name one:
// the viewBox extent if present, otherwise the width/height attributes.
func (i *Info) Size() (float64, float64) {
	if i.ViewWidth > 0 && i.ViewHeight > 0 {
		return i.ViewWidth, i.ViewHeight
	}
	return i.Width, i.Height
}

// Inspect parses the document and reports its root dimensions.
//
// Returns an error wrapping ErrRender if the markup cannot be parsed.
func Inspect(doc string) (*Info, error) {
	parsed, err := parseSVG(doc)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Width:   parseLength(parsed.Width),
		Height:  parseLength(parsed.Height),
		ViewBox: strings.TrimSpace(parsed.ViewBox),
	}

	fields := strings.FieldsFunc(info.ViewBox, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 4 {
		info.ViewWidth = parseLength(fields[2])
		info.ViewHeight = parseLength(fields[3])
	}
	return info, nil
}

func parseSVG(doc string) (s *svg.Svg, err error) {
	// parser panics surface as render errors
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	s, err = svg.ParseSvg(doc, "document", 1.0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return s, nil
}

// parseLength reads a plain or px-suffixed number. Other units yield 0.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
