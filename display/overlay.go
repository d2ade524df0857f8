package display

import (
	"image"
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/soft3d"
)

const overlayPadding = 4

var overlayBackdrop = color.NRGBA{A: 160}

// Overlay draws lines of text in the top-left corner of img over a
// translucent backdrop, using the fixed 7x13 bitmap font. Text that does
// not fit is clipped.
func Overlay(img xdraw.Image, lines []string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	widest := 0
	for _, l := range lines {
		widest = max(widest, font.MeasureString(face, l).Ceil())
	}
	b := img.Bounds()
	box := image.Rect(0, 0, widest+2*overlayPadding, len(lines)*face.Height+2*overlayPadding).
		Add(b.Min).Intersect(b)
	xdraw.Draw(img, box, image.NewUniform(overlayBackdrop), image.Point{}, xdraw.Over)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(b.Min.X+overlayPadding, b.Min.Y+overlayPadding+i*face.Height+face.Ascent)
		d.DrawString(l)
	}
}

// Printer returns the message printer used for overlay and CLI numbers.
func Printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// StatsLines formats renderer statistics for Overlay. A zero frame time
// omits the timing line.
func StatsLines(p *message.Printer, s soft3d.Stats, frame time.Duration) []string {
	lines := []string{
		p.Sprintf("draws %d  prims %d", s.DrawCalls, s.Primitives),
		p.Sprintf("verts %d  clipped %d", s.Vertices, s.ClippedVertices),
		p.Sprintf("frags %d  kept %d", s.Fragments, s.FragmentsWritten),
	}
	if frame > 0 {
		lines = append(lines, p.Sprintf("%.2f ms  %.1f fps", float64(frame.Microseconds())/1000, float64(time.Second)/float64(frame)))
	}
	return lines
}
