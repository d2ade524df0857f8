package display

import (
	"bufio"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/gogpu/soft3d"
)

const halfBlock = "▀"

// WriteANSI prints img as cols columns of truecolor upper-half blocks: each
// character cell shows two image rows, the top one as foreground and the
// bottom one as background. Alpha is ignored.
func WriteANSI(w io.Writer, img image.Image, cols int) error {
	b := img.Bounds()
	if cols <= 0 || b.Empty() {
		return nil
	}
	rows := (b.Dy()*cols/b.Dx() + 1) &^ 1
	rows = max(rows, 2)
	small := Scale(img, cols, rows, soft3d.FilterBilinear)

	bw := bufio.NewWriter(w)
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			style := ansi.Style{}.
				ForegroundColor(opaque(small.NRGBAAt(x, y))).
				BackgroundColor(opaque(small.NRGBAAt(x, y+1)))
			if _, err := bw.WriteString(style.Styled(halfBlock)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(ansi.ResetStyle + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func opaque(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// TerminalWidth returns the column count of the terminal on fd, or fallback
// when fd is not a terminal.
func TerminalWidth(fd int, fallback int) int {
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
