package soft3d

import "fmt"

// Stats counts the work done by a Renderer since the last ResetStats.
type Stats struct {
	DrawCalls          int
	Vertices           int
	ClippedVertices    int
	Primitives         int
	Fragments          int
	FragmentsWritten   int
	FragmentsDiscarded int
}

// sub returns s - o field by field.
func (s Stats) sub(o Stats) Stats {
	return Stats{
		DrawCalls:          s.DrawCalls - o.DrawCalls,
		Vertices:           s.Vertices - o.Vertices,
		ClippedVertices:    s.ClippedVertices - o.ClippedVertices,
		Primitives:         s.Primitives - o.Primitives,
		Fragments:          s.Fragments - o.Fragments,
		FragmentsWritten:   s.FragmentsWritten - o.FragmentsWritten,
		FragmentsDiscarded: s.FragmentsDiscarded - o.FragmentsDiscarded,
	}
}

// Renderer runs the rasterization pipeline into one framebuffer.
//
// A Renderer is single-threaded: every Render call completes before it
// returns, and draw calls are applied strictly in order so later objects
// see the depth written by earlier ones. It must not be used from more
// than one goroutine at a time.
type Renderer struct {
	fb       *Framebuffer
	programs map[Algorithm]Program
	stats    Stats

	// Scratch buffers reused across draw calls.
	vertices  []vertex
	triangles []triangle
	segments  []segment
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer, opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		fb:       fb,
		programs: o.programs,
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Stats returns the counters accumulated since the last ResetStats.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// ResetStats zeroes the counters.
func (r *Renderer) ResetStats() {
	r.stats = Stats{}
}

// Program returns the program used for algorithm a: a registered one if
// present, otherwise a cached instance of the built-in program.
func (r *Renderer) Program(a Algorithm) (Program, error) {
	if p, ok := r.programs[a]; ok {
		return p, nil
	}
	p, err := NewProgram(a)
	if err != nil {
		return nil, err
	}
	r.programs[a] = p
	return p, nil
}

// Render draws one mesh with the state in ctx.
//
// The vertex stage shades every face corner, vertices outside the view
// volume take their primitive with them, the survivors are assembled per
// ctx.Topology and rasterized, and each fragment goes through the test
// chain before the fragment shader result is written.
func (r *Renderer) Render(ctx *Context, mesh *Mesh) error {
	if ctx == nil {
		return ErrNilContext
	}
	if mesh == nil {
		return ErrNilMesh
	}
	if err := mesh.Validate(); err != nil {
		return err
	}
	switch ctx.Topology {
	case TopologyTriangles, TopologyPoints, TopologyLines, TopologyLineStrip, TopologyLineLoop:
	default:
		return fmt.Errorf("soft3d: topology %d: %w", ctx.Topology, ErrUnknownTopology)
	}

	prog, err := r.Program(ctx.Algorithm)
	if err != nil {
		return err
	}
	if err := prog.Bind(ctx.Uniforms); err != nil {
		return fmt.Errorf("soft3d: bind %s program for mesh %q: %w", ctx.Algorithm, mesh.Name, err)
	}

	before := r.stats
	r.stats.DrawCalls++

	verts := r.shadeVertices(ctx, prog, mesh)
	emit := func(f *Fragment) { r.processFragment(ctx, prog, f) }

	switch ctx.Topology {
	case TopologyTriangles:
		r.triangles = assembleTriangles(prog, verts, r.triangles[:0])
		r.stats.Primitives += len(r.triangles)
		for _, t := range r.triangles {
			rasterizeTriangle(prog, t, emit)
		}
	case TopologyPoints:
		for _, v := range verts {
			if v.clipped {
				continue
			}
			r.stats.Primitives++
			rasterizePoint(v, emit)
		}
	case TopologyLines, TopologyLineStrip, TopologyLineLoop:
		r.segments = assembleLines(ctx.Topology, verts, r.segments[:0])
		r.stats.Primitives += len(r.segments)
		for _, s := range r.segments {
			rasterizeLine(ctx.LineAlgorithm, prog, s, emit)
		}
	}

	d := r.stats.sub(before)
	Logger().Debug("soft3d: draw call",
		"mesh", mesh.Name,
		"algorithm", ctx.Algorithm.String(),
		"topology", ctx.Topology.String(),
		"vertices", d.Vertices,
		"clipped", d.ClippedVertices,
		"primitives", d.Primitives,
		"fragments", d.Fragments,
		"written", d.FragmentsWritten,
		"discarded", d.FragmentsDiscarded,
	)
	return nil
}
