// Package export rasterizes SVG documents to PNG, JPEG or WEBP.
//
// Rendering is done on the CPU with oksvg and rasterx. The document's
// viewBox is stretched over a surface of trunc(width·scale) by
// trunc(height·scale) pixels. JPEG output is always flattened onto an
// opaque background (white unless one is given); PNG and WEBP keep
// transparency unless a background is requested.
//
// WEBP encoding uses libwebp and is only available in cgo builds; check
// WEBPAvailable.
package export
