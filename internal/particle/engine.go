package particle

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
)

// DefaultMaxColors bounds the representative colors reported per result.
const DefaultMaxColors = 10

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSize sets the largest width or height kept before downscaling.
// Zero or less disables the cap.
func WithMaxSize(n int) Option {
	return func(e *Engine) {
		e.maxSize = n
	}
}

// WithMaxColors sets how many representative colors a Result carries.
func WithMaxColors(n int) Option {
	return func(e *Engine) {
		e.maxColors = n
	}
}

// WithLogger routes conversion diagnostics to l. By default an Engine
// produces no log output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs the particle pipeline. It holds only immutable configuration,
// so one Engine may serve concurrent conversions; each conversion owns its
// own pixel buffers.
type Engine struct {
	maxSize   int
	maxColors int
	logger    *slog.Logger
}

// NewEngine creates an Engine with the 600px cap and 10 representative
// colors unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxSize:   imaging.DefaultMaxSize,
		maxColors: DefaultMaxColors,
		logger:    newNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats summarizes what a conversion produced.
type Stats struct {
	PrimaryParticles   int `json:"primary_particles"`
	SecondaryParticles int `json:"secondary_particles"`
	ColorGroups        int `json:"color_groups"`
	Clusters           int `json:"clusters"`
}

// Result is the outcome of one successful conversion.
type Result struct {
	// Source identifies the converted image (usually its path).
	Source string `json:"source"`

	// SVG is the serialized document.
	SVG string `json:"svg"`

	// Width and Height are the document dimensions, after downscaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Colors holds up to the engine's color bound of representative colors,
	// as lowercase hex, taken from the (possibly blurred) pixels.
	Colors []string `json:"colors"`

	// Elapsed is the wall time spent in the conversion.
	Elapsed time.Duration `json:"elapsed"`

	Stats Stats `json:"stats"`

	// Document is the structured form of SVG.
	Document *Document `json:"-"`
}

// ConvertFile decodes the image at path and converts it.
func (e *Engine) ConvertFile(path string, s Settings) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	img, err := imaging.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return e.convert(img, path, s, start)
}

// ConvertReader decodes one image from r and converts it.
func (e *Engine) ConvertReader(r io.Reader, source string, s Settings) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return e.convert(img, source, s, start)
}

// Convert rasterizes an already decoded image and converts it.
func (e *Engine) Convert(img image.Image, source string, s Settings) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return e.convert(img, source, s, time.Now())
}

func (e *Engine) convert(img image.Image, source string, s Settings, start time.Time) (*Result, error) {
	buf, err := imaging.Rasterize(img, e.maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %s: %w", source, err)
	}

	res, err := e.ConvertBuffer(buf, s)
	if err != nil {
		return nil, err
	}
	res.Source = source
	res.Elapsed = time.Since(start)
	return res, nil
}

// ConvertBuffer runs the pipeline on buf, which must not be used by the
// caller until the call returns.
//
// Stages, in order: optional blur, background estimate, the two sampling
// passes, color grouping, clustering with path emission, and assembly.
// There are no partial results: on error the Result is nil.
func (e *Engine) ConvertBuffer(buf *imaging.PixelBuffer, s Settings) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 || len(buf.Pix) != buf.Width*buf.Height*4 {
		return nil, fmt.Errorf("%w: pixel buffer is empty or malformed", imaging.ErrSurface)
	}
	start := time.Now()

	if s.Blur > 0 {
		buf = imaging.GaussianBlur(buf, s.Blur)
	}

	bg := imaging.EstimateBackground(buf)
	primary, secondary := Sample(buf, bg, s)

	particles := make([]Particle, 0, len(primary)+len(secondary))
	particles = append(particles, primary...)
	particles = append(particles, secondary...)

	groups := GroupByColor(particles)
	doc := Assemble(buf.Width, buf.Height, groups, s)
	colors := imaging.HexColors(imaging.UniqueColors(buf, e.maxColors))

	res := &Result{
		SVG:     doc.String(),
		Width:   doc.Width,
		Height:  doc.Height,
		Colors:  colors,
		Elapsed: time.Since(start),
		Stats: Stats{
			PrimaryParticles:   len(primary),
			SecondaryParticles: len(secondary),
			ColorGroups:        len(groups),
			Clusters:           len(doc.Groups),
		},
		Document: doc,
	}

	e.logger.Debug("particle conversion finished",
		"width", res.Width,
		"height", res.Height,
		"step", s.Step(),
		"background_luminance", bg.Luminance,
		"primary", res.Stats.PrimaryParticles,
		"secondary", res.Stats.SecondaryParticles,
		"groups", res.Stats.ColorGroups,
		"clusters", res.Stats.Clusters,
		"svg_bytes", len(res.SVG),
		"elapsed", res.Elapsed,
	)
	return res, nil
}
