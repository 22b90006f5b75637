package imaging

import "errors"

var (
	// ErrDecode reports that a source image could not be decoded.
	ErrDecode = errors.New("decode error")

	// ErrSurface reports that a pixel surface could not be obtained, for
	// example because the decoded or downscaled image has no pixels.
	ErrSurface = errors.New("surface error")
)
