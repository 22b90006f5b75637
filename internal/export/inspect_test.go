package export

import (
	"errors"
	"testing"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name         string
		doc          string
		wantW, wantH float64
		wantViewBox  string
	}{
		{
			name:        "particle document",
			doc:         emptyDoc,
			wantW:       10,
			wantH:       10,
			wantViewBox: "0 0 10 10",
		},
		{
			name: "path content",
			doc: "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"64\" height=\"48\" viewBox=\"0 0 64 48\">\n" +
				"  <g fill=\"#336699\"><path d=\"M 8,10 a 2,2 0 1,0 4,0 a 2,2 0 1,0 -4,0\"/></g>\n</svg>",
			wantW:       64,
			wantH:       48,
			wantViewBox: "0 0 64 48",
		},
		{
			name:  "px units without viewBox",
			doc:   `<svg xmlns="http://www.w3.org/2000/svg" width="30px" height="12px"></svg>`,
			wantW: 30,
			wantH: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.doc)
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}
			if w, h := info.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Size: got %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
			if info.ViewBox != tt.wantViewBox {
				t.Errorf("ViewBox: got %q, want %q", info.ViewBox, tt.wantViewBox)
			}
		})
	}
}

func TestInfo_SizePrefersViewBox(t *testing.T) {
	info := &Info{Width: 100, Height: 100, ViewWidth: 10, ViewHeight: 20}
	if w, h := info.Size(); w != 10 || h != 20 {
		t.Errorf("Size: got %vx%v, want 10x20", w, h)
	}
}

func TestInspect_Malformed(t *testing.T) {
	if _, err := Inspect("<svg><g></svg>"); !errors.Is(err, ErrRender) {
		t.Errorf("got %v, want ErrRender", err)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{" 12.5 ", 12.5},
		{"30px", 30},
		{"5cm", 0},
		{"", 0},
		{"-3", 0},
	}
	for _, tt := range tests {
		if got := parseLength(tt.in); got != tt.want {
			t.Errorf("parseLength(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
