package export

import (
	"fmt"
	"strings"
)

// Format is a raster output kind.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
)

// ParseFormat accepts a format name or file extension, case-insensitively,
// with or without a leading dot. "jpg" is an alias for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "webp":
		return WEBP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MIMEType returns the media type of encoded output.
func (f Format) MIMEType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case WEBP:
		return "image/webp"
	}
	return "application/octet-stream"
}

// Extension returns the conventional file extension, including the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// opaque reports whether the format cannot carry per-pixel transparency.
func (f Format) opaque() bool {
	return f == JPEG
}
