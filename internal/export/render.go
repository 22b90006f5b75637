package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	pixels "github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

const (
	// DefaultScale multiplies the document size when Options.Scale is zero.
	DefaultScale = 2.0

	// DefaultQuality applies to lossy formats when Options.Quality is zero.
	DefaultQuality = 0.95

	// DefaultJPEGBackground fills JPEG output when no background is given.
	DefaultJPEGBackground = "#ffffff"

	// MaxSurfaceSide bounds each side of the target raster.
	MaxSurfaceSide = 16384
)

// Options describes one export.
type Options struct {
	// Width and Height are the document size in user units. Zero takes the
	// size from the document's viewBox (or width/height attributes).
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Scale multiplies Width and Height to give the raster size. Zero means
	// DefaultScale.
	Scale float64 `json:"scale,omitempty"`

	// Format selects the encoder. Empty means PNG.
	Format Format `json:"format,omitempty"`

	// Quality in (0,1] for JPEG and WEBP. Zero means DefaultQuality; PNG
	// ignores it.
	Quality float64 `json:"quality,omitempty"`

	// Background is an optional "#rrggbb" fill painted under the drawing.
	// Without it PNG and WEBP keep transparency; JPEG falls back to
	// DefaultJPEGBackground.
	Background string `json:"background,omitempty"`
}

// Result is an encoded raster.
type Result struct {
	Data     []byte `json:"-"`
	Format   Format `json:"format"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	o.Quality = math.Max(0.01, math.Min(1, o.Quality))
	if o.Background == "" && o.Format.opaque() {
		o.Background = DefaultJPEGBackground
	}
	return o
}

// TargetSize returns the raster size for a document of width×height user
// units at scale: each side is truncated toward zero.
//
// Returns an error wrapping ErrSurface if a side is below 1 or above
// MaxSurfaceSide.
func TargetSize(width, height, scale float64) (int, int, error) {
	w := math.Trunc(width * scale)
	h := math.Trunc(height * scale)
	if !(w >= 1 && h >= 1) || w > MaxSurfaceSide || h > MaxSurfaceSide {
		return 0, 0, fmt.Errorf("%w: %vx%v at scale %v gives %vx%v", ErrSurface, width, height, scale, w, h)
	}
	return int(w), int(h), nil
}

// Export rasterizes doc and encodes it according to opts.
//
// # Errors
//
//   - ErrRender: doc is not well-formed SVG, has neither a viewBox nor
//     width/height attributes, or the background is not a valid hex color
//   - ErrSurface: the target raster is empty or too large
//   - ErrUnsupportedFormat: unknown format, or WEBP without the encoder
//
// No partial output is returned on error.
func Export(doc string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if opts.Format != PNG && opts.Format != JPEG && opts.Format != WEBP {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		info, err := Inspect(doc)
		if err != nil {
			return nil, err
		}
		dw, dh := info.Size()
		if width <= 0 {
			width = dw
		}
		if height <= 0 {
			height = dh
		}
	}

	tw, th, err := TargetSize(width, height, opts.Scale)
	if err != nil {
		return nil, err
	}

	rgba, err := Rasterize(doc, tw, th)
	if err != nil {
		return nil, err
	}

	var img image.Image = rgba
	if opts.Background != "" {
		img, err = flatten(rgba, opts.Background)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := encode(&buf, img, opts.Format, opts.Quality); err != nil {
		return nil, err
	}

	Logger().Debug("svg exported",
		"format", opts.Format,
		"width", tw,
		"height", th,
		"scale", opts.Scale,
		"background", opts.Background,
		"bytes", buf.Len(),
	)

	return &Result{
		Data:     buf.Bytes(),
		Format:   opts.Format,
		MIMEType: opts.Format.MIMEType(),
		Width:    tw,
		Height:   th,
	}, nil
}

// Rasterize draws doc onto a transparent width×height surface, mapping the
// document's viewBox onto the whole surface. A document without a viewBox
// maps the box (0,0)-(width attribute, height attribute) instead.
func Rasterize(doc string, width, height int) (img *image.RGBA, err error) {
	if width <= 0 || height <= 0 || width > MaxSurfaceSide || height > MaxSurfaceSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurface, width, height)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		info, err := Inspect(doc)
		if err != nil {
			return nil, err
		}
		if info.Width <= 0 || info.Height <= 0 {
			return nil, fmt.Errorf("%w: document has neither a viewBox nor a width and height", ErrRender)
		}
		icon.ViewBox.X, icon.ViewBox.Y = 0, 0
		icon.ViewBox.W, icon.ViewBox.H = info.Width, info.Height
	}

	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// flatten composites img over an opaque fill.
func flatten(img image.Image, background string) (*image.NRGBA, error) {
	c, err := pixels.ParseHex(background)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0), nil
}
