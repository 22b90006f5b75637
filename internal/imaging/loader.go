package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WEBP format decoder
)

// DefaultMaxSize is the largest width or height a source image keeps before
// it is downscaled for particle sampling.
const DefaultMaxSize = 600

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and decodes.
//
// The cache stores decoded image.Image values keyed by their file path. Cached
// images are never mutated: conversions copy them into a fresh PixelBuffer via
// Rasterize, so one cached image can feed any number of conversions.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict().
// For long-running processes handling many images, consider periodic cleanup to
// prevent unbounded memory growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, WEBP and GIF (first frame). EXIF
// orientation is applied so the pixels match what a browser would display.
//
// # Errors
//
//   - Returns an error if the file does not exist or cannot be read
//   - Returns an error wrapping ErrDecode if the contents cannot be decoded
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Decode reads and decodes a single image from r.
//
// Returns an error wrapping ErrDecode if the data is not a supported image.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// DecodeFile opens path and decodes the image it contains.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Rasterize copies img into a new PixelBuffer, downscaling it first when
// either dimension exceeds maxSize.
//
// Downscaling preserves aspect ratio: both dimensions are multiplied by
// min(maxSize/width, maxSize/height) and floored. A maxSize of zero or less
// disables the cap.
//
// # Errors
//
// Returns an error wrapping ErrSurface if the source is empty or a dimension
// collapses to zero after downscaling (e.g. a 10000x1 strip).
func Rasterize(img image.Image, maxSize int) (*PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrSurface)
	}

	sw, sh := ScaledSize(width, height, maxSize)
	if sw == width && sh == height {
		return fromNRGBA(imaging.Clone(img))
	}
	if sw <= 0 || sh <= 0 {
		return nil, fmt.Errorf("%w: downscaled size %dx%d", ErrSurface, sw, sh)
	}
	return fromNRGBA(imaging.Resize(img, sw, sh, imaging.Lanczos))
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "webp", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SampledWidth and SampledHeight are the dimensions the particle
	// sampler will see after the DefaultMaxSize cap is applied.
	SampledWidth  int `json:"sampled_width"`
	SampledHeight int `json:"sampled_height"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns metadata about it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := img.Bounds()
	sw, sh := ScaledSize(bounds.Dx(), bounds.Dy(), DefaultMaxSize)

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatFromPath(path),
		HasAlpha:      hasAlpha,
		SampledWidth:  sw,
		SampledHeight: sh,
		FileSizeBytes: stat.Size(),
	}, nil
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	case ".gif":
		return "gif"
	}
	return "unknown"
}

// ScaledSize returns the dimensions Rasterize would produce for a
// width×height source under maxSize.
func ScaledSize(width, height, maxSize int) (int, int) {
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return width, height
	}
	ratio := math.Min(float64(maxSize)/float64(width), float64(maxSize)/float64(height))
	return int(math.Floor(float64(width) * ratio)), int(math.Floor(float64(height) * ratio))
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
