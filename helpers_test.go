package soft3d

import (
	"math"
	"testing"
)

// testSize is the width and height of the framebuffer most pipeline tests
// draw into.
const testSize = 100

// screenPos returns the NDC position that the default test viewport maps
// to screen pixel (x, y) at window depth d. With an identity mvp this lets
// tests place geometry directly in screen space.
func screenPos(x, y, d float64) Vec3 {
	return V3(2*x/testSize-1, 1-2*y/testSize, 2*d-1)
}

// screenMesh builds a mesh whose faces are consecutive triples of pts.
func screenMesh(t *testing.T, pts ...Vec3) *Mesh {
	t.Helper()
	if len(pts)%3 != 0 {
		t.Fatalf("screenMesh: %d points is not a multiple of 3", len(pts))
	}
	var faces []Face
	for i := 0; i < len(pts); i += 3 {
		faces = append(faces, Face{
			Position: [3]int{i, i + 1, i + 2},
			Normal:   [3]int{-1, -1, -1},
			UV:       [3]int{-1, -1, -1},
		})
	}
	m, err := NewMesh("screen", pts, nil, nil, faces)
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}
	return m
}

// screenTriangle builds a one-face mesh with corners at the given screen
// pixels, all at window depth d.
func screenTriangle(t *testing.T, x0, y0, x1, y1, x2, y2, d float64) *Mesh {
	t.Helper()
	return screenMesh(t, screenPos(x0, y0, d), screenPos(x1, y1, d), screenPos(x2, y2, d))
}

// screenUniforms binds identity transforms and a solid color.
func screenUniforms(c RGBA) *Uniforms {
	u := NewUniforms()
	u.SetMatrix(UniformMVP, Identity())
	u.SetMatrix(UniformModelView, Identity())
	u.SetColor(UniformColor, c)
	return u
}

// screenContext returns a context covering a w×h framebuffer that draws in
// red with alg.
func screenContext(w, h int, alg Algorithm, opts ...ContextOption) *Context {
	base := []ContextOption{WithAlgorithm(alg), WithUniforms(screenUniforms(Red))}
	return NewContext(Viewport{Width: w, Height: h}, append(base, opts...)...)
}

// colorContext is screenContext on the default test size with color c.
func colorContext(c RGBA, opts ...ContextOption) *Context {
	base := []ContextOption{WithUniforms(screenUniforms(c))}
	return NewContext(Viewport{Width: testSize, Height: testSize}, append(base, opts...)...)
}

// collect returns an emitFunc that copies every fragment into *out.
func collect(out *[]Fragment) emitFunc {
	return func(f *Fragment) { *out = append(*out, *f) }
}

// sv builds a screen-space vertex.
func sv(x, y, z float64) vertex {
	return vertex{pos: V3(x, y, z)}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecApprox(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func matApprox(a, b Mat4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approx(a[i][j], b[i][j]) {
				return false
			}
		}
	}
	return true
}

// countPixels returns how many pixels hold the packed value p.
func countPixels(fb *Framebuffer, p uint32) int {
	n := 0
	for _, v := range fb.Pixels() {
		if v == p {
			n++
		}
	}
	return n
}
