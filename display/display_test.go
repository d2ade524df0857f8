package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/soft3d"
)

// quadrants returns a w x h image with red, green, blue and white quarters.
func quadrants(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			switch {
			case x < w/2 && y < h/2:
				c.R = 255
			case y < h/2:
				c.G = 255
			case x < w/2:
				c.B = 255
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", FormatPNG},
		{"OUT.PNG", FormatPNG},
		{"a/b.bmp", FormatBMP},
		{"x.tif", FormatTIFF},
		{"x.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if err != nil || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, %v", tt.path, got, err)
			}
		})
	}
	for _, bad := range []string{"x.gif", "noext"} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v", bad, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	src := quadrants(8, 6)
	dir := t.TempDir()
	for _, name := range []string{"f.png", "f.bmp", "f.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			var got image.Image
			switch filepath.Ext(name) {
			case ".png":
				got, _, err = image.Decode(f)
			case ".bmp":
				got, err = bmp.Decode(f)
			case ".tiff":
				got, err = tiff.Decode(f)
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			for _, p := range []image.Point{{0, 0}, {7, 0}, {0, 5}, {7, 5}} {
				r1, g1, b1, _ := got.At(p.X, p.Y).RGBA()
				r2, g2, b2, _ := src.At(p.X, p.Y).RGBA()
				if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
					t.Errorf("pixel %v differs", p)
				}
			}
		})
	}

	if err := Save(filepath.Join(dir, "f.gif"), src); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(gif) error = %v", err)
	}
	if err := Encode(&bytes.Buffer{}, src, Format(9)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(9) error = %v", err)
	}
}

func TestSaveFramebuffer(t *testing.T) {
	fb := soft3d.NewFramebuffer(4, 4, soft3d.WithClearColor(soft3d.Blue))
	path := filepath.Join(t.TempDir(), "fb.bmp")
	if err := Save(path, fb); err != nil {
		t.Fatalf("Save(framebuffer) error = %v", err)
	}
}

func TestScale(t *testing.T) {
	src := quadrants(4, 4)
	got := Scale(src, 8, 8, soft3d.FilterNearest)
	if got.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.NRGBAAt(1, 1); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("top-left = %v, want red", c)
	}
	if c := got.NRGBAAt(6, 6); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("bottom-right = %v, want white", c)
	}
	if empty := Scale(src, 0, 4, soft3d.FilterBilinear); !empty.Bounds().Empty() {
		t.Errorf("Scale(0) bounds = %v", empty.Bounds())
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{640, 480, 80, 100, 80, 60},
		{640, 480, 200, 60, 80, 60},
		{100, 1, 10, 10, 10, 1},
		{0, 10, 10, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := Fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Fit(%d, %d, %d, %d) = %d, %d, want %d, %d",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestOverlay(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 40))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	Overlay(img, []string{"hello", "world"})

	// The backdrop darkens the corner; text pixels stay white.
	if c := img.NRGBAAt(1, 1); c.R >= 255 {
		t.Errorf("corner = %v, want darkened", c)
	}
	white := 0
	for y := 4; y < 30; y++ {
		for x := 4; x < 40; x++ {
			if img.NRGBAAt(x, y).R == 255 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("no text drawn")
	}
	// Outside the box nothing changes.
	if c := img.NRGBAAt(110, 35); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("outside = %v", c)
	}

	Overlay(img, nil)
}

func TestStatsLines(t *testing.T) {
	s := soft3d.Stats{DrawCalls: 2, Primitives: 1200, Vertices: 3600, Fragments: 1234567, FragmentsWritten: 1000}
	lines := StatsLines(Printer(), s, 4*time.Millisecond)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != "draws 2  prims 1,200" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "1,234,567") {
		t.Errorf("line 2 = %q, want grouped digits", lines[2])
	}
	if lines[3] != "4.00 ms  250.0 fps" {
		t.Errorf("line 3 = %q", lines[3])
	}
	if got := StatsLines(Printer(), s, 0); len(got) != 3 {
		t.Errorf("zero frame time gave %d lines", len(got))
	}
}

func TestWriteANSI(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteANSI(&buf, quadrants(4, 4), 4); err != nil {
		t.Fatalf("WriteANSI() error = %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (4 rows of pixels)", len(lines))
	}
	for i, l := range lines {
		if got := strings.Count(l, halfBlock); got != 4 {
			t.Errorf("line %d has %d cells, want 4", i, got)
		}
		if got := ansi.StringWidth(l); got != 4 {
			t.Errorf("line %d printable width = %d, want 4", i, got)
		}
		if !strings.HasSuffix(l, ansi.ResetStyle) {
			t.Errorf("line %d does not reset the style", i)
		}
	}
	if !strings.Contains(lines[0], "255;0;0") {
		t.Errorf("first line has no red foreground: %q", lines[0])
	}

	buf.Reset()
	if err := WriteANSI(&buf, quadrants(8, 8), 0); err != nil || buf.Len() != 0 {
		t.Errorf("WriteANSI(0 cols) wrote %d bytes, err %v", buf.Len(), err)
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := TerminalWidth(int(f.Fd()), 72); got != 72 {
		t.Errorf("TerminalWidth(file) = %d, want fallback 72", got)
	}
}

func TestSurface(t *testing.T) {
	fb := soft3d.NewFramebuffer(4, 3, soft3d.WithClearColor(soft3d.Red))
	s := NewSurface(fb)
	if s.Image().Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", s.Image().Bounds())
	}
	s.Refresh()
	if c := s.Image().NRGBAAt(3, 2); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want red", c)
	}

	var gotW, gotH int
	s.OnResize(func(w, h int) { gotW, gotH = w, h })
	fb.SetResolution(10, 5)
	if gotW != 10 || gotH != 5 {
		t.Errorf("OnResize saw %dx%d", gotW, gotH)
	}
	if s.Image().Bounds() != image.Rect(0, 0, 10, 5) {
		t.Errorf("bounds after resize = %v", s.Image().Bounds())
	}
	s.Refresh()
	if c := s.Image().NRGBAAt(9, 4); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel after resize = %v, want cleared red", c)
	}
}

func TestSurfacePremultiplied(t *testing.T) {
	fb := soft3d.NewFramebuffer(2, 1, soft3d.WithClearColor(soft3d.RGBA{R: 1, G: 1, B: 1, A: 0.5}))
	s := NewSurface(fb)
	s.Refresh()
	s.Image().SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})

	got := s.Premultiplied()
	if got.Bounds() != s.Image().Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), s.Image().Bounds())
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{128, 128, 128, 128}) {
		t.Errorf("translucent white = %v, want premultiplied {128 128 128 128}", c)
	}
	if c := got.RGBAAt(1, 0); c != (color.RGBA{200, 0, 0, 255}) {
		t.Errorf("drawn pixel = %v, want {200 0 0 255}", c)
	}

	fb.SetResolution(3, 2)
	if s.Premultiplied().Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("premultiplied bounds after resize = %v", s.Premultiplied().Bounds())
	}
}
