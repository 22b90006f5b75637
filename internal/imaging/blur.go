package imaging

import "math"

// GaussianKernel builds a normalized 1-D Gaussian kernel for sigma.
//
// The kernel has 2·ceil(3σ)+1 taps; weights are exp(-x²/2σ²) scaled to sum
// to 1. The caller guarantees sigma > 0.
func GaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(sigma * 3))
	kernel := make([]float64, radius*2+1)

	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur applies a separable Gaussian blur to src and returns a new
// buffer of the same dimensions.
//
// The horizontal pass runs first, then the vertical pass over its output.
// Both passes clamp out-of-range taps to the nearest edge pixel, so no read
// ever leaves the buffer. All four channels are blurred, including alpha.
// Results are rounded to the nearest integer and clamped to [0,255].
//
// Callers skip this stage entirely when sigma <= 0.
func GaussianBlur(src *PixelBuffer, sigma float64) *PixelBuffer {
	kernel := GaussianKernel(sigma)
	radius := len(kernel) / 2
	width, height := src.Width, src.Height

	temp := make([]uint8, len(src.Pix))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc [4]float64
			for k := -radius; k <= radius; k++ {
				i := (y*width + clamp(x+k, 0, width-1)) * 4
				w := kernel[k+radius]
				acc[0] += float64(src.Pix[i]) * w
				acc[1] += float64(src.Pix[i+1]) * w
				acc[2] += float64(src.Pix[i+2]) * w
				acc[3] += float64(src.Pix[i+3]) * w
			}
			store(temp[(y*width+x)*4:], acc)
		}
	}

	out := &PixelBuffer{Width: width, Height: height, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc [4]float64
			for k := -radius; k <= radius; k++ {
				i := (clamp(y+k, 0, height-1)*width + x) * 4
				w := kernel[k+radius]
				acc[0] += float64(temp[i]) * w
				acc[1] += float64(temp[i+1]) * w
				acc[2] += float64(temp[i+2]) * w
				acc[3] += float64(temp[i+3]) * w
			}
			store(out.Pix[(y*width+x)*4:], acc)
		}
	}
	return out
}

// store writes four accumulated channels with 8-bit clamped rounding.
func store(dst []uint8, acc [4]float64) {
	for c := 0; c < 4; c++ {
		v := math.RoundToEven(acc[c])
		switch {
		case v < 0:
			dst[c] = 0
		case v > 255:
			dst[c] = 255
		default:
			dst[c] = uint8(v)
		}
	}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
