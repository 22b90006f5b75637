package imaging

import (
	"fmt"
	"image"
)

// PixelBuffer is a width×height RGBA raster in row-major order with four
// bytes per pixel. Color channels are not premultiplied by alpha.
//
// A buffer is owned by exactly one pipeline stage at a time. Stages either
// mutate it in place or return a new buffer; none retain it after returning.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed (fully transparent) buffer.
//
// Returns an error wrapping ErrSurface if either dimension is not positive.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSurface, width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// Offset returns the index of the red byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBA returns the four channels of pixel (x, y). The caller guarantees the
// coordinates are in bounds.
func (b *PixelBuffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Image exposes the buffer as an *image.NRGBA sharing the same pixel slice.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// fromNRGBA copies an NRGBA image into a tightly packed buffer.
func fromNRGBA(img *image.NRGBA) (*PixelBuffer, error) {
	bounds := img.Bounds()
	buf, err := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	rowLen := buf.Width * 4
	for y := 0; y < buf.Height; y++ {
		src := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return buf, nil
}
