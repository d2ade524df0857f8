package soft3d

import (
	"fmt"
	"image"
	"strings"
)

// Topology selects how the vertex stream of a draw call is grouped into
// primitives.
type Topology uint8

const (
	// TopologyTriangles groups vertices into runs of three (the default).
	TopologyTriangles Topology = iota
	// TopologyPoints draws every vertex as a single fragment.
	TopologyPoints
	// TopologyLines pairs (0,1), (2,3), ...; a trailing odd vertex is dropped.
	TopologyLines
	// TopologyLineStrip pairs every vertex with its successor.
	TopologyLineStrip
	// TopologyLineLoop is a line strip closed back to the first vertex.
	TopologyLineLoop
)

var topologyNames = [...]string{
	TopologyTriangles: "triangles",
	TopologyPoints:    "points",
	TopologyLines:     "lines",
	TopologyLineStrip: "linestrip",
	TopologyLineLoop:  "lineloop",
}

// String returns a string representation of the topology.
func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return "unknown"
}

// ParseTopology parses a topology name as returned by String.
func ParseTopology(s string) (Topology, error) {
	for i, name := range topologyNames {
		if strings.EqualFold(s, name) {
			return Topology(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownTopology)
}

// LineAlgorithm selects the line rasterizer.
type LineAlgorithm uint8

const (
	// LineBresenham steps one pixel along the dominant axis (the default).
	LineBresenham LineAlgorithm = iota
	// LineAntialiased draws Xiaolin Wu lines: two fragments per step whose
	// coverage is blended over the existing pixel.
	LineAntialiased
)

// String returns a string representation of the line algorithm.
func (a LineAlgorithm) String() string {
	switch a {
	case LineBresenham:
		return "bresenham"
	case LineAntialiased:
		return "antialiased"
	default:
		return "unknown"
	}
}

// ParseLineAlgorithm parses "bresenham" (or "") and "antialiased" ("aa").
func ParseLineAlgorithm(s string) (LineAlgorithm, error) {
	switch strings.ToLower(s) {
	case "", "bresenham":
		return LineBresenham, nil
	case "antialiased", "aa", "wu":
		return LineAntialiased, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownLineAlgorithm)
	}
}

// CompareFunc is a stencil comparison function.
type CompareFunc uint8

const (
	CompareAlways CompareFunc = iota
	CompareNever
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareNotEqual
	CompareGreaterEqual
	CompareGreater
)

func (f CompareFunc) test(ref, stored uint8) bool {
	switch f {
	case CompareAlways:
		return true
	case CompareNever:
		return false
	case CompareLess:
		return ref < stored
	case CompareLessEqual:
		return ref <= stored
	case CompareEqual:
		return ref == stored
	case CompareNotEqual:
		return ref != stored
	case CompareGreaterEqual:
		return ref >= stored
	case CompareGreater:
		return ref > stored
	default:
		return false
	}
}

// StencilState configures the stencil test. Ref is also the value written
// to the stencil plane for every fragment that reaches the framebuffer.
type StencilState struct {
	Func CompareFunc
	Ref  uint8
	Mask uint8
}

// Viewport maps normalized device coordinates to framebuffer pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Matrix returns the NDC → screen transform: x in [-1,1] maps to
// [X, X+Width], y is flipped so +1 is the top row, z maps to [0, 1].
func (v Viewport) Matrix() Mat4 {
	hw := float64(v.Width) / 2
	hh := float64(v.Height) / 2
	return Mat4{
		{hw, 0, 0, float64(v.X) + hw},
		{0, -hh, 0, float64(v.Y) + hh},
		{0, 0, 0.5, 0.5},
		{0, 0, 0, 1},
	}
}

// Aspect returns Width/Height, or 1 for an empty viewport.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Context is the per-draw-call state: which tests run, how vertices are
// grouped and rasterized, and the uniforms handed to the program.
type Context struct {
	Viewport      Viewport
	Topology      Topology
	Algorithm     Algorithm
	LineAlgorithm LineAlgorithm

	DepthTest bool

	// ScissorTest restricts fragments to Scissor. An empty rectangle
	// covers the whole framebuffer.
	ScissorTest bool
	Scissor     image.Rectangle

	StencilTest bool
	Stencil     StencilState

	Uniforms *Uniforms
}

// ContextOption configures a Context during creation.
type ContextOption func(*Context)

// WithTopology sets the primitive topology.
func WithTopology(t Topology) ContextOption {
	return func(c *Context) {
		c.Topology = t
	}
}

// WithAlgorithm selects the program used for the draw call.
func WithAlgorithm(a Algorithm) ContextOption {
	return func(c *Context) {
		c.Algorithm = a
	}
}

// WithLineAlgorithm selects the line rasterizer.
func WithLineAlgorithm(a LineAlgorithm) ContextOption {
	return func(c *Context) {
		c.LineAlgorithm = a
	}
}

// WithDepthTest enables or disables the depth test.
func WithDepthTest(enabled bool) ContextOption {
	return func(c *Context) {
		c.DepthTest = enabled
	}
}

// WithScissor enables the scissor test with the given rectangle.
func WithScissor(r image.Rectangle) ContextOption {
	return func(c *Context) {
		c.ScissorTest = true
		c.Scissor = r
	}
}

// WithStencil enables the stencil test with the given state.
func WithStencil(s StencilState) ContextOption {
	return func(c *Context) {
		c.StencilTest = true
		c.Stencil = s
	}
}

// WithUniforms sets the uniform table.
func WithUniforms(u *Uniforms) ContextOption {
	return func(c *Context) {
		c.Uniforms = u
	}
}

// NewContext creates a context for the given viewport. Defaults: triangles,
// the solid algorithm, Bresenham lines, depth test on, scissor and stencil
// tests off, stencil func Always with a full mask, empty uniforms.
func NewContext(viewport Viewport, opts ...ContextOption) *Context {
	c := &Context{
		Viewport:      viewport,
		Topology:      TopologyTriangles,
		Algorithm:     AlgorithmSolid,
		LineAlgorithm: LineBresenham,
		DepthTest:     true,
		Stencil:       StencilState{Func: CompareAlways, Mask: 0xFF},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Uniforms == nil {
		c.Uniforms = NewUniforms()
	}
	return c
}
