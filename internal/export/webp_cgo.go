//go:build cgo

package export

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WEBPAvailable reports whether WEBP output is compiled in.
const WEBPAvailable = true

func encodeWEBP(w io.Writer, img image.Image, quality float64) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality * 100)})
}
