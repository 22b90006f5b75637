package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/webp"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
	"github.com/ironsheep/particle-svg-mcp/internal/particle"
)

const emptyDoc = "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"10\" height=\"10\" viewBox=\"0 0 10 10\">\n  \n</svg>"

const redDotDoc = "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"20\" height=\"20\" viewBox=\"0 0 20 20\">\n" +
	"  <g fill=\"#ff0000\"><circle cx=\"10\" cy=\"10\" r=\"6\"/></g>\n</svg>"

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return img
}

func TestExport_PNGRoundTripAtScaleOne(t *testing.T) {
	buf, err := imaging.NewPixelBuffer(37, 21)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 40, 90, 160, 255
	}
	res, err := particle.NewEngine().ConvertBuffer(buf, particle.DefaultSettings())
	if err != nil {
		t.Fatalf("ConvertBuffer failed: %v", err)
	}

	out, err := Export(res.SVG, Options{Scale: 1, Format: PNG})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	img := decodePNG(t, out.Data)
	if b := img.Bounds(); b.Dx() != 37 || b.Dy() != 21 {
		t.Errorf("raster size: got %dx%d, want 37x21", b.Dx(), b.Dy())
	}
	if out.Width != 37 || out.Height != 21 {
		t.Errorf("result size: got %dx%d, want 37x21", out.Width, out.Height)
	}
	if out.MIMEType != "image/png" {
		t.Errorf("MIMEType: got %q", out.MIMEType)
	}

	// Default settings put particles 8px apart from (2,2); the offset pass
	// joins them all into one arc path filled by its group.
	want := color.NRGBA{R: 40, G: 90, B: 160, A: 255}
	for _, p := range []image.Point{{2, 2}, {10, 10}, {34, 18}} {
		if got := nrgbaAt(img, p.X, p.Y); !closeNRGBA(got, want, 2) {
			t.Errorf("pixel %v: got %v, want %v", p, got, want)
		}
	}
	if got := nrgbaAt(img, 0, 20); got.A != 0 {
		t.Errorf("pixel (0,20) outside every particle: got %v, want transparent", got)
	}
}

func TestExport_SizeWithoutViewBox(t *testing.T) {
	doc := "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"20\" height=\"20\">\n" +
		"  <g fill=\"#ff0000\"><circle cx=\"10\" cy=\"10\" r=\"6\"/></g>\n</svg>"

	out, err := Export(doc, Options{Scale: 2})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Width != 40 || out.Height != 40 {
		t.Fatalf("size: got %dx%d, want 40x40", out.Width, out.Height)
	}

	img := decodePNG(t, out.Data)
	if got, want := nrgbaAt(img, 20, 20), (color.NRGBA{R: 255, A: 255}); !closeNRGBA(got, want, 2) {
		t.Errorf("center pixel: got %v, want %v", got, want)
	}
	if got := nrgbaAt(img, 2, 2); got.A != 0 {
		t.Errorf("corner pixel: got %v, want transparent", got)
	}
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func closeNRGBA(a, b color.NRGBA, tol int) bool {
	near := func(x, y uint8) bool {
		d := int(x) - int(y)
		return d <= tol && d >= -tol
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestExport_DefaultScale(t *testing.T) {
	out, err := Export(emptyDoc, Options{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	img := decodePNG(t, out.Data)
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("raster size: got %dx%d, want 20x20", b.Dx(), b.Dy())
	}
}

func TestExport_ExplicitSizeTruncates(t *testing.T) {
	out, err := Export(emptyDoc, Options{Width: 10, Height: 10, Scale: 1.55})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Width != 15 || out.Height != 15 {
		t.Errorf("size: got %dx%d, want 15x15", out.Width, out.Height)
	}
}

func TestExport_PNGKeepsTransparency(t *testing.T) {
	out, err := Export(redDotDoc, Options{Scale: 1})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	img := decodePNG(t, out.Data)

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha: got %d, want 0", a)
	}
	r, g, b, a := img.At(10, 10).RGBA()
	if a>>8 != 255 || r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("center: got (%d,%d,%d,%d), want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestExport_BackgroundFill(t *testing.T) {
	out, err := Export(redDotDoc, Options{Scale: 1, Background: "#0000ff"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	img := decodePNG(t, out.Data)

	r, g, b, a := img.At(0, 0).RGBA()
	if a>>8 != 255 || r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("corner: got (%d,%d,%d,%d), want opaque blue", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestExport_JPEGDefaultsToWhite(t *testing.T) {
	out, err := Export(emptyDoc, Options{Scale: 1, Format: JPEG})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType: got %q", out.MIMEType)
	}

	img, err := jpeg.Decode(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("pixel: got (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestExport_WEBP(t *testing.T) {
	out, err := Export(redDotDoc, Options{Scale: 1, Format: WEBP, Quality: 0.8})
	if !WEBPAvailable {
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("got %v, want ErrUnsupportedFormat", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("output is not a WEBP: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("raster size: got %dx%d, want 20x20", b.Dx(), b.Dy())
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want error
	}{
		{"mismatched tags", "<svg><g></svg>", Options{Width: 10, Height: 10}, ErrRender},
		{"mismatched tags without size", "<svg><g></svg>", Options{}, ErrRender},
		{"no viewBox or size", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`, Options{Width: 10, Height: 10}, ErrRender},
		{"bad background", emptyDoc, Options{Background: "blue"}, ErrRender},
		{"zero width", emptyDoc, Options{Width: 0.4, Height: 10, Scale: 1}, ErrSurface},
		{"negative scale", emptyDoc, Options{Scale: -1}, ErrSurface},
		{"too large", emptyDoc, Options{Width: MaxSurfaceSide + 1, Height: 10, Scale: 1}, ErrSurface},
		{"unknown format", emptyDoc, Options{Format: "gif"}, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Export(tt.doc, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Error("expected no output on error")
			}
		})
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h, scale  float64
		wantW, wantH int
		wantErr      bool
	}{
		{100, 50, 2, 200, 100, false},
		{100, 50, 1.5, 150, 75, false},
		{33, 33, 1.01, 33, 33, false},
		{1, 1, 0.5, 0, 0, true},
		{MaxSurfaceSide, 1, 1, MaxSurfaceSide, 1, false},
		{MaxSurfaceSide, 1, 2, 0, 0, true},
	}

	for _, tt := range tests {
		w, h, err := TargetSize(tt.w, tt.h, tt.scale)
		if tt.wantErr {
			if !errors.Is(err, ErrSurface) {
				t.Errorf("TargetSize(%v,%v,%v): got %v, want ErrSurface", tt.w, tt.h, tt.scale, err)
			}
			continue
		}
		if err != nil || w != tt.wantW || h != tt.wantH {
			t.Errorf("TargetSize(%v,%v,%v) = %d,%d,%v; want %d,%d", tt.w, tt.h, tt.scale, w, h, err, tt.wantW, tt.wantH)
		}
	}
}

func TestRasterize_SurfaceErrors(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, -1}, {MaxSurfaceSide + 1, 1}} {
		if _, err := Rasterize(emptyDoc, size[0], size[1]); !errors.Is(err, ErrSurface) {
			t.Errorf("Rasterize(%dx%d): got %v, want ErrSurface", size[0], size[1], err)
		}
	}
}

func TestJPEGQuality(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.95, 95},
		{1, 100},
		{0.001, 1},
		{0.5, 50},
	}
	for _, tt := range tests {
		if got := jpegQuality(tt.in); got != tt.want {
			t.Errorf("jpegQuality(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
