// Package image stores texture texels for soft3d and samples them.
//
// An ImageBuf is a tightly packed, non-premultiplied RGBA8 buffer. Sampling
// uses normalized (u, v) coordinates with (0, 0) at the top-left texel and
// clamps out-of-range coordinates to the edge.
package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is fixed: every texel is R, G, B, A.
const bytesPerPixel = 4

// ImageBuf is a non-premultiplied RGBA8 texel buffer.
//
// ImageBuf is safe for concurrent reads. Writes require external
// synchronization; textures are expected to be filled once at load time.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a zeroed buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * bytesPerPixel
}

// GetRGBA returns the texel at (x, y). Out-of-bounds reads return zero.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	return b.data[off], b.data[off+1], b.data[off+2], b.data[off+3]
}

// SetRGBA sets the texel at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.data[off] = r
	b.data[off+1] = g
	b.data[off+2] = bl
	b.data[off+3] = a
	return nil
}
