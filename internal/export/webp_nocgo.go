//go:build !cgo

package export

import (
	"fmt"
	"image"
	"io"
)

// WEBPAvailable reports whether WEBP output is compiled in. The WEBP
// encoder needs cgo.
const WEBPAvailable = false

func encodeWEBP(io.Writer, image.Image, float64) error {
	return fmt.Errorf("%w: webp output requires a cgo build", ErrUnsupportedFormat)
}
