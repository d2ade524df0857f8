package soft3d

// Fragment is a candidate pixel produced by rasterization.
type Fragment struct {
	// X and Y are integer screen coordinates. Rasterizers always set them
	// last; any value produced while interpolating is discarded.
	X, Y int
	// Z is window depth in [0, 1] for geometry inside the view volume.
	Z       float64
	Stencil uint8
	// Coverage is 1 for solid fragments. Antialiased lines emit partial
	// coverage, which is blended over the existing pixel.
	Coverage float64
	Varying  Varying
}

// testFragment runs the fragment test chain in its fixed order and stops
// at the first failure. It returns the framebuffer offset to write when
// every test passes.
func (r *Renderer) testFragment(ctx *Context, f *Fragment) (int, bool) {
	off, ok := r.pixelOwnershipTest(f)
	if !ok {
		return -1, false
	}
	if ctx.ScissorTest && !scissorTest(ctx, f) {
		return -1, false
	}
	if ctx.StencilTest && !r.stencilTest(ctx, off) {
		return -1, false
	}
	if ctx.DepthTest && !r.depthTest(f, off) {
		return -1, false
	}
	return off, true
}

// pixelOwnershipTest passes for every pixel this framebuffer has; with a
// single surface that is exactly the in-bounds check.
func (r *Renderer) pixelOwnershipTest(f *Fragment) (int, bool) {
	off := r.fb.Offset(f.X, f.Y)
	return off, off >= 0
}

// scissorTest passes when the fragment lies inside the scissor rectangle.
// An empty rectangle imposes no restriction.
func scissorTest(ctx *Context, f *Fragment) bool {
	s := ctx.Scissor
	if s.Empty() {
		return true
	}
	return f.X >= s.Min.X && f.X < s.Max.X && f.Y >= s.Min.Y && f.Y < s.Max.Y
}

// stencilTest compares the masked reference against the masked stored value.
func (r *Renderer) stencilTest(ctx *Context, off int) bool {
	st := ctx.Stencil
	return st.Func.test(st.Ref&st.Mask, r.fb.stencil[off]&st.Mask)
}

// depthTest passes only for fragments strictly nearer than the stored
// depth; equal depth fails.
func (r *Renderer) depthTest(f *Fragment, off int) bool {
	return f.Z < r.fb.depth[off]
}

// processFragment tests, shades and writes one fragment. A failed test
// drops the fragment without touching the framebuffer.
func (r *Renderer) processFragment(ctx *Context, prog Program, f *Fragment) {
	r.stats.Fragments++
	off, ok := r.testFragment(ctx, f)
	if !ok {
		r.stats.FragmentsDiscarded++
		return
	}

	c := prog.FragmentShader(f)
	if f.Coverage < 1 {
		c = Unpack(r.fb.pixels[off]).Lerp(c, f.Coverage)
	}
	r.fb.write(off, c.Pack(), f.Z, f.Stencil)
	r.stats.FragmentsWritten++
}
