package soft3d

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer holds the three render target planes: packed ARGB pixels,
// float64 depth and uint8 stencil. All planes always share the same
// width × height and are addressed by offset = x + y*width.
//
// A framebuffer with zero area has no planes; every operation on it is a
// no-op. The renderer owns the framebuffer for the duration of a frame:
// SetResolution must only be called between frames.
type Framebuffer struct {
	width  int
	height int

	pixels  []uint32
	depth   []float64
	stencil []uint8

	clearPixel   uint32
	clearDepth   float64
	clearStencil uint8

	resizeObservers []func(width, height int)
}

// FramebufferOption configures a Framebuffer during creation.
type FramebufferOption func(*Framebuffer)

// WithClearColor sets the color Clear and Discard write to the pixel plane.
func WithClearColor(c RGBA) FramebufferOption {
	return func(fb *Framebuffer) {
		fb.clearPixel = c.Pack()
	}
}

// WithClearDepth sets the value Clear and Discard write to the depth plane.
func WithClearDepth(d float64) FramebufferOption {
	return func(fb *Framebuffer) {
		fb.clearDepth = d
	}
}

// WithClearStencil sets the value Clear and Discard write to the stencil plane.
func WithClearStencil(s uint8) FramebufferOption {
	return func(fb *Framebuffer) {
		fb.clearStencil = s
	}
}

// NewFramebuffer creates a cleared framebuffer. Defaults: opaque black
// pixels, +Inf depth, zero stencil.
func NewFramebuffer(width, height int, opts ...FramebufferOption) *Framebuffer {
	fb := &Framebuffer{
		clearPixel: Black.Pack(),
		clearDepth: math.Inf(1),
	}
	for _, opt := range opts {
		opt(fb)
	}
	fb.SetResolution(width, height)
	return fb
}

// Width returns the width of the framebuffer.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height of the framebuffer.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Pixels returns the packed ARGB pixel plane. The slice aliases the
// framebuffer and is invalidated by SetResolution.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pixels
}

// Depth returns the depth plane.
func (fb *Framebuffer) Depth() []float64 {
	return fb.depth
}

// Stencil returns the stencil plane.
func (fb *Framebuffer) Stencil() []uint8 {
	return fb.stencil
}

// OnResize registers fn to be called after every SetResolution with the new
// dimensions. Display surfaces use it to re-bind their own buffers.
func (fb *Framebuffer) OnResize(fn func(width, height int)) {
	fb.resizeObservers = append(fb.resizeObservers, fn)
}

// SetResolution reallocates all three planes for the new size and clears
// them. A non-positive area leaves the framebuffer zero-sized.
func (fb *Framebuffer) SetResolution(width, height int) {
	fb.pixels, fb.depth, fb.stencil = nil, nil, nil

	if width <= 0 || height <= 0 {
		fb.width, fb.height = 0, 0
	} else {
		fb.width, fb.height = width, height
		n := width * height
		fb.pixels = make([]uint32, n)
		fb.depth = make([]float64, n)
		fb.stencil = make([]uint8, n)
		fb.Clear()
	}

	Logger().Debug("soft3d: framebuffer resized", "width", fb.width, "height", fb.height)
	for _, fn := range fb.resizeObservers {
		fn(fb.width, fb.height)
	}
}

// SetClearColor changes the pixel clear value. It takes effect on the next
// Clear or Discard.
func (fb *Framebuffer) SetClearColor(c RGBA) {
	fb.clearPixel = c.Pack()
}

// SetClearDepth changes the depth clear value.
func (fb *Framebuffer) SetClearDepth(d float64) {
	fb.clearDepth = d
}

// SetClearStencil changes the stencil clear value.
func (fb *Framebuffer) SetClearStencil(s uint8) {
	fb.clearStencil = s
}

// ClearValues returns the packed pixel, depth and stencil clear values.
func (fb *Framebuffer) ClearValues() (pixel uint32, depth float64, stencil uint8) {
	return fb.clearPixel, fb.clearDepth, fb.clearStencil
}

// Clear fills every plane with its clear value.
func (fb *Framebuffer) Clear() {
	n := len(fb.pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.pixels[0] = fb.clearPixel
	fb.depth[0] = fb.clearDepth
	fb.stencil[0] = fb.clearStencil
	for i := 1; i < n; i *= 2 {
		copy(fb.pixels[i:], fb.pixels[:i])
		copy(fb.depth[i:], fb.depth[:i])
		copy(fb.stencil[i:], fb.stencil[:i])
	}
}

// Discard resets a single element of all three planes to the clear values.
// Out-of-bounds coordinates are ignored.
func (fb *Framebuffer) Discard(x, y int) {
	off := fb.Offset(x, y)
	if off < 0 {
		return
	}
	fb.pixels[off] = fb.clearPixel
	fb.depth[off] = fb.clearDepth
	fb.stencil[off] = fb.clearStencil
}

// Offset returns x + y*width, or -1 if (x, y) is outside the framebuffer.
// This is the only bounds check the pipeline performs.
func (fb *Framebuffer) Offset(x, y int) int {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return -1
	}
	return x + y*fb.width
}

// write stores one fragment's results in all three planes at once.
func (fb *Framebuffer) write(off int, pixel uint32, depth float64, stencil uint8) {
	fb.pixels[off] = pixel
	fb.depth[off] = depth
	fb.stencil[off] = stencil
}

// PixelAt returns the packed pixel at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) PixelAt(x, y int) uint32 {
	off := fb.Offset(x, y)
	if off < 0 {
		return 0
	}
	return fb.pixels[off]
}

// DepthAt returns the depth at (x, y), or +Inf when out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	off := fb.Offset(x, y)
	if off < 0 {
		return math.Inf(1)
	}
	return fb.depth[off]
}

// StencilAt returns the stencil value at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) StencilAt(x, y int) uint8 {
	off := fb.Offset(x, y)
	if off < 0 {
		return 0
	}
	return fb.stencil[off]
}

// ToImage converts the pixel plane to a non-premultiplied image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.CopyTo(img)
	return img
}

// CopyTo copies the pixel plane into img, which must have the same
// dimensions. Mismatched images are left untouched.
func (fb *Framebuffer) CopyTo(img *image.NRGBA) {
	b := img.Bounds()
	if b.Dx() != fb.width || b.Dy() != fb.height {
		return
	}
	for y := 0; y < fb.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+fb.width*4]
		for x, p := range fb.pixels[y*fb.width : (y+1)*fb.width] {
			row[x*4+0] = uint8(p >> 16)
			row[x*4+1] = uint8(p >> 8)
			row[x*4+2] = uint8(p)
			row[x*4+3] = uint8(p >> 24)
		}
	}
}

// SavePNG saves the pixel plane to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, fb.ToImage())
}

// At implements the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	p := fb.PixelAt(x, y)
	return color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
