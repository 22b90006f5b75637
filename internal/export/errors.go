package export

import "errors"

var (
	// ErrRender reports an SVG document that could not be decoded or drawn.
	ErrRender = errors.New("svg render failed")

	// ErrSurface reports a target raster that cannot be allocated: a
	// dimension is zero, negative, or larger than MaxSurfaceSide.
	ErrSurface = errors.New("raster surface unavailable")

	// ErrUnsupportedFormat reports an unknown output format, or WEBP when
	// the encoder was not compiled in.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
