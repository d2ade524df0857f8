package soft3d

import (
	"errors"
	"image"
	"testing"
)

func TestNewContextDefaults(t *testing.T) {
	c := NewContext(Viewport{Width: 10, Height: 20})
	if c.Topology != TopologyTriangles {
		t.Errorf("Topology = %v, want triangles", c.Topology)
	}
	if c.Algorithm != AlgorithmSolid {
		t.Errorf("Algorithm = %v, want solid", c.Algorithm)
	}
	if c.LineAlgorithm != LineBresenham {
		t.Errorf("LineAlgorithm = %v, want bresenham", c.LineAlgorithm)
	}
	if !c.DepthTest || c.ScissorTest || c.StencilTest {
		t.Errorf("tests = depth %v scissor %v stencil %v", c.DepthTest, c.ScissorTest, c.StencilTest)
	}
	if c.Stencil != (StencilState{Func: CompareAlways, Mask: 0xFF}) {
		t.Errorf("Stencil = %+v", c.Stencil)
	}
	if c.Uniforms == nil {
		t.Error("Uniforms is nil")
	}
}

func TestContextOptions(t *testing.T) {
	u := NewUniforms()
	c := NewContext(Viewport{Width: 10, Height: 10},
		WithTopology(TopologyLineLoop),
		WithAlgorithm(AlgorithmPhong),
		WithLineAlgorithm(LineAntialiased),
		WithDepthTest(false),
		WithScissor(image.Rect(1, 2, 3, 4)),
		WithStencil(StencilState{Func: CompareEqual, Ref: 2, Mask: 0x0F}),
		WithUniforms(u),
	)
	if c.Topology != TopologyLineLoop || c.Algorithm != AlgorithmPhong || c.LineAlgorithm != LineAntialiased {
		t.Errorf("selection options not applied: %+v", c)
	}
	if c.DepthTest || !c.ScissorTest || !c.StencilTest {
		t.Errorf("test options not applied: %+v", c)
	}
	if c.Scissor != image.Rect(1, 2, 3, 4) || c.Stencil.Ref != 2 || c.Uniforms != u {
		t.Errorf("values not applied: %+v", c)
	}
}

func TestParseTopology(t *testing.T) {
	for _, top := range []Topology{TopologyTriangles, TopologyPoints, TopologyLines, TopologyLineStrip, TopologyLineLoop} {
		got, err := ParseTopology(top.String())
		if err != nil || got != top {
			t.Errorf("ParseTopology(%q) = %v, %v", top.String(), got, err)
		}
	}
	if got, err := ParseTopology("LineStrip"); err != nil || got != TopologyLineStrip {
		t.Errorf("ParseTopology is not case-insensitive: %v, %v", got, err)
	}
	if _, err := ParseTopology("quads"); !errors.Is(err, ErrUnknownTopology) {
		t.Errorf("ParseTopology(quads) error = %v, want ErrUnknownTopology", err)
	}
	if got := Topology(99).String(); got != "unknown" {
		t.Errorf("Topology(99).String() = %q", got)
	}
}

func TestParseLineAlgorithm(t *testing.T) {
	for _, a := range []LineAlgorithm{LineBresenham, LineAntialiased} {
		if got, err := ParseLineAlgorithm(a.String()); err != nil || got != a {
			t.Errorf("ParseLineAlgorithm(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, _ := ParseLineAlgorithm("AA"); got != LineAntialiased {
		t.Errorf("ParseLineAlgorithm(AA) = %v", got)
	}
	if _, err := ParseLineAlgorithm("dda"); !errors.Is(err, ErrUnknownLineAlgorithm) {
		t.Errorf("ParseLineAlgorithm(dda) error = %v, want ErrUnknownLineAlgorithm", err)
	}
}

func TestCompareFunc(t *testing.T) {
	tests := []struct {
		f           CompareFunc
		ref, stored uint8
		want        bool
	}{
		{CompareAlways, 1, 2, true},
		{CompareNever, 1, 1, false},
		{CompareLess, 1, 2, true},
		{CompareLess, 2, 2, false},
		{CompareLessEqual, 2, 2, true},
		{CompareEqual, 3, 3, true},
		{CompareEqual, 3, 4, false},
		{CompareNotEqual, 3, 4, true},
		{CompareGreaterEqual, 4, 4, true},
		{CompareGreater, 4, 4, false},
		{CompareGreater, 5, 4, true},
	}
	for _, tt := range tests {
		if got := tt.f.test(tt.ref, tt.stored); got != tt.want {
			t.Errorf("CompareFunc(%d).test(%d, %d) = %v, want %v", tt.f, tt.ref, tt.stored, got, tt.want)
		}
	}
}

func TestViewportMatrix(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, Width: 100, Height: 50}
	m := vp.Matrix()

	tests := []struct {
		ndc, want Vec3
	}{
		{V3(-1, 1, -1), V3(10, 20, 0)}, // top-left, near
		{V3(1, -1, 1), V3(110, 70, 1)}, // bottom-right, far
		{V3(0, 0, 0), V3(60, 45, 0.5)}, // center
	}
	for _, tt := range tests {
		if got := m.MulPoint(tt.ndc).XYZ(); !vecApprox(got, tt.want) {
			t.Errorf("viewport(%v) = %v, want %v", tt.ndc, got, tt.want)
		}
	}

	if got := vp.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}
	if got := (Viewport{}).Aspect(); got != 1 {
		t.Errorf("empty Aspect() = %v, want 1", got)
	}
}
