package export

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/anthonynsimon/bild/imgio"
)

// encode writes img in format f. Quality is in (0,1].
func encode(w io.Writer, img image.Image, f Format, quality float64) error {
	var err error
	switch f {
	case PNG:
		err = imgio.Encode(w, img, imgio.PNGEncoder())
	case JPEG:
		err = imgio.Encode(w, img, imgio.JPEGEncoder(jpegQuality(quality)))
	case WEBP:
		err = encodeWEBP(w, img, quality)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// jpegQuality maps (0,1] onto the encoder's 1..100 scale.
func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}
