package soft3d

import (
	"fmt"
	stdimage "image"
	"io"
	"strings"

	"github.com/gogpu/soft3d/internal/image"
)

// Filter selects texture sampling quality.
type Filter uint8

const (
	// FilterNearest picks the texel containing the sample point.
	FilterNearest Filter = iota
	// FilterBilinear blends the four nearest texels.
	FilterBilinear
)

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// ParseFilter parses "nearest" or "bilinear".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "", "nearest":
		return FilterNearest, nil
	case "bilinear", "linear":
		return FilterBilinear, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownFilter)
	}
}

// Texture is an immutable RGBA image sampled with UV coordinates where
// (0, 0) is the bottom-left corner, as in OBJ files.
type Texture struct {
	buf    *image.ImageBuf
	Filter Filter
}

// NewTexture copies img into a texture.
func NewTexture(img stdimage.Image, filter Filter) (*Texture, error) {
	buf, err := image.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("soft3d: texture: %w", err)
	}
	return &Texture{buf: buf, Filter: filter}, nil
}

// LoadTexture decodes a PNG or JPEG file into a texture.
func LoadTexture(path string, filter Filter) (*Texture, error) {
	buf, err := image.Load(path)
	if err != nil {
		return nil, fmt.Errorf("soft3d: load texture %s: %w", path, err)
	}
	return &Texture{buf: buf, Filter: filter}, nil
}

// DecodeTexture decodes a PNG or JPEG stream into a texture.
func DecodeTexture(r io.Reader, filter Filter) (*Texture, error) {
	buf, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("soft3d: texture: %w", err)
	}
	return &Texture{buf: buf, Filter: filter}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int {
	return t.buf.Width()
}

// Height returns the texture height in texels.
func (t *Texture) Height() int {
	return t.buf.Height()
}

// Sample returns the texture color at (u, v). Coordinates outside [0, 1]
// clamp to the edge.
func (t *Texture) Sample(u, v float64) RGBA {
	mode := image.InterpNearest
	if t.Filter == FilterBilinear {
		mode = image.InterpBilinear
	}
	r, g, b, a := image.Sample(t.buf, u, 1-v, mode)
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}
