package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
)

// Load decodes a PNG or JPEG file.
func Load(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// FromStdImage copies a standard library image into a new ImageBuf,
// converting to non-premultiplied RGBA.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}

	// Fast path: already NRGBA.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*bytesPerPixel]
			copy(buf.data[y*width*bytesPerPixel:], src)
		}
		return buf, nil
	}

	dst := &image.NRGBA{Pix: buf.data, Stride: width * bytesPerPixel, Rect: image.Rect(0, 0, width, height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf, nil
}

// At returns the texel at (x, y) as a color.NRGBA.
func (b *ImageBuf) At(x, y int) color.NRGBA {
	r, g, bl, a := b.GetRGBA(x, y)
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}
