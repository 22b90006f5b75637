// Package imaging turns source images into pixel buffers and provides the
// color reasoning shared by the particle pipeline.
//
// This package covers the leaf stages of a conversion: decoding a PNG, JPEG,
// WEBP or GIF source, downscaling it to the sampling cap, optionally blurring
// it, and estimating its background color from the four corners. It also
// holds the color helpers (BT.601 luminance, lowercase hex formatting, RGB
// distance) used by the sampler and the representative color extraction.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Pixel Buffers
//
// A PixelBuffer stores non-premultiplied RGBA bytes in row-major order. It
// is owned by one stage at a time: GaussianBlur returns a new buffer and
// leaves its input untouched, and nothing in this package keeps a buffer
// after returning.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function is
// stateless and may be called concurrently on different buffers.
//
// # Error Handling
//
// Decoding failures wrap ErrDecode. Empty sources, and sources whose
// downscaled size collapses to zero, wrap ErrSurface. Use errors.Is to
// distinguish them.
package imaging
