package soft3d

import "math"

// vertex is a shaded vertex after the viewport transform.
type vertex struct {
	pos     Vec3 // screen x, y and window depth
	stencil uint8
	varying Varying
	clipped bool
}

// lerpVertex interpolates every field of a vertex; varyings go through the
// program so only its live fields are blended.
func lerpVertex(prog Program, a, b vertex, p float64) vertex {
	return vertex{
		pos:     a.pos.Lerp(b.pos, p),
		stencil: uint8(math.Round(Lerp(float64(a.stencil), float64(b.stencil), p))),
		varying: prog.Lerp(a.varying, b.varying, p),
	}
}

// fragment converts an interpolated vertex into a fragment at (x, y).
func (v vertex) fragment(x, y int, coverage float64) Fragment {
	return Fragment{
		X:        x,
		Y:        y,
		Z:        v.pos.Z,
		Stencil:  v.stencil,
		Coverage: coverage,
		Varying:  v.varying,
	}
}

// outsideViewVolume reports whether a clip-space position must be rejected:
// behind the eye, or with x or y outside [-1, 1] after the divide. Depth is
// not clipped.
func outsideViewVolume(clip Vec4) bool {
	if !(clip.W > 0) {
		return true
	}
	ndc := clip.PerspectiveDivide()
	return ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1
}

// shadeVertices runs the vertex stage for every face corner in order,
// marks vertices outside the view volume and maps the rest to the screen.
// The returned slice reuses the renderer's scratch buffer.
func (r *Renderer) shadeVertices(ctx *Context, prog Program, mesh *Mesh) []vertex {
	vp := ctx.Viewport.Matrix()
	out := r.vertices[:0]
	for f := range mesh.Faces {
		for c := 0; c < 3; c++ {
			o := prog.VertexShader(prog.SetAttributes(mesh, f, c))
			v := vertex{stencil: ctx.Stencil.Ref, varying: o.Varying}
			if outsideViewVolume(o.Position) {
				v.clipped = true
				r.stats.ClippedVertices++
			} else {
				v.pos = vp.MulPoint(o.Position.PerspectiveDivide()).XYZ()
			}
			out = append(out, v)
		}
	}
	r.stats.Vertices += len(out)
	r.vertices = out
	return out
}
