package soft3d

import (
	"math"
	"testing"
)

func TestOutsideViewVolume(t *testing.T) {
	tests := []struct {
		name string
		clip Vec4
		want bool
	}{
		{"center", V4(0, 0, 0, 1), false},
		{"on the edge", V4(1, -1, 0, 1), false},
		{"depth is not clipped", V4(0.5, 0.5, 5, 1), false},
		{"right of view", V4(2, 0, 0, 1), true},
		{"below view", V4(0, -1.5, 0, 1), true},
		{"behind the eye", V4(0, 0, 0, -1), true},
		{"at the eye", V4(0, 0, 0, 0), true},
		{"inside after divide", V4(3, 3, 0, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outsideViewVolume(tt.clip); got != tt.want {
				t.Errorf("outsideViewVolume(%v) = %v, want %v", tt.clip, got, tt.want)
			}
		})
	}
}

func TestSortTriangle(t *testing.T) {
	tri := triangle{sv(5, 9, 0), sv(3, 1, 0), sv(1, 1, 0)}
	sortTriangle(&tri)
	want := [3]Vec3{V3(1, 1, 0), V3(3, 1, 0), V3(5, 9, 0)}
	for i := range tri {
		if tri[i].pos != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, tri[i].pos, want[i])
		}
	}
}

func TestSplitTriangle(t *testing.T) {
	prog := &solidProgram{}
	out := splitTriangle(prog, triangle{sv(0, 0, 0), sv(10, 10, 1), sv(20, 5, 0)}, nil)
	if len(out) != 2 {
		t.Fatalf("split produced %d triangles, want 2", len(out))
	}
	for i, tri := range out {
		if tri[0].pos.Y > tri[1].pos.Y || tri[1].pos.Y > tri[2].pos.Y {
			t.Errorf("triangle %d not sorted by y: %v %v %v", i, tri[0].pos, tri[1].pos, tri[2].pos)
		}
		if tri[0].pos.Y != tri[1].pos.Y && tri[1].pos.Y != tri[2].pos.Y {
			t.Errorf("triangle %d has no flat side: %v %v %v", i, tri[0].pos, tri[1].pos, tri[2].pos)
		}
	}

	// The new vertex sits halfway along the long edge (0,0,0)→(10,10,1),
	// snapped to the middle vertex's row.
	v3 := out[0][1]
	if !vecApprox(v3.pos, V3(5, 5, 0.5)) {
		t.Errorf("split vertex = %v, want (5, 5, 0.5)", v3.pos)
	}
	if out[1][0].pos != v3.pos {
		t.Errorf("halves do not share the split vertex: %v vs %v", out[1][0].pos, v3.pos)
	}
}

func TestSplitTriangleAlreadyFlat(t *testing.T) {
	prog := &solidProgram{}
	for _, tri := range []triangle{
		{sv(0, 0, 0), sv(10, 0, 0), sv(5, 8, 0)}, // flat top
		{sv(5, 0, 0), sv(0, 8, 0), sv(10, 8, 0)}, // flat bottom
		{sv(0, 3, 0), sv(5, 3, 0), sv(9, 3, 0)},  // degenerate row
	} {
		if out := splitTriangle(prog, tri, nil); len(out) != 1 {
			t.Errorf("splitTriangle(%v) produced %d triangles, want 1", tri, len(out))
		}
	}
}

func TestAssembleTrianglesDropsClipped(t *testing.T) {
	prog := &solidProgram{}
	verts := []vertex{
		sv(0, 0, 0), sv(10, 0, 0), sv(0, 10, 0),
		sv(0, 0, 0), {clipped: true}, sv(0, 10, 0),
		sv(0, 0, 0), // incomplete trailing triangle
	}
	out := assembleTriangles(prog, verts, nil)
	if len(out) != 1 {
		t.Errorf("assembled %d triangles, want 1", len(out))
	}
}

func TestAssembleLines(t *testing.T) {
	verts := []vertex{sv(0, 0, 0), sv(1, 0, 0), sv(2, 0, 0), sv(3, 0, 0), sv(4, 0, 0)}
	tests := []struct {
		topology Topology
		want     [][2]float64
	}{
		{TopologyLines, [][2]float64{{0, 1}, {2, 3}}},
		{TopologyLineStrip, [][2]float64{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
		{TopologyLineLoop, [][2]float64{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.topology.String(), func(t *testing.T) {
			got := assembleLines(tt.topology, verts, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s[0].pos.X != tt.want[i][0] || s[1].pos.X != tt.want[i][1] {
					t.Errorf("segment %d = %v→%v, want %v", i, s[0].pos.X, s[1].pos.X, tt.want[i])
				}
			}
		})
	}

	// A two-vertex loop is a single segment, not a doubled one.
	if got := assembleLines(TopologyLineLoop, verts[:2], nil); len(got) != 1 {
		t.Errorf("two-vertex loop produced %d segments", len(got))
	}

	clipped := []vertex{sv(0, 0, 0), {clipped: true}, sv(2, 0, 0)}
	if got := assembleLines(TopologyLineStrip, clipped, nil); len(got) != 0 {
		t.Errorf("strip through a clipped vertex produced %d segments", len(got))
	}
}

func TestRasterizePoint(t *testing.T) {
	var frags []Fragment
	rasterizePoint(vertex{pos: V3(2.4, 3.6, 0.25), stencil: 7}, collect(&frags))
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	f := frags[0]
	if f.X != 2 || f.Y != 4 || f.Z != 0.25 || f.Stencil != 7 || f.Coverage != 1 {
		t.Errorf("fragment = %+v", f)
	}
}

func TestRasterizeTriangleCoversInterior(t *testing.T) {
	prog := &solidProgram{}
	var frags []Fragment
	for _, tri := range splitTriangle(prog, triangle{sv(10, 10, 0), sv(30, 10, 0), sv(10, 30, 0)}, nil) {
		rasterizeTriangle(prog, tri, collect(&frags))
	}

	hit := make(map[[2]int]int)
	for _, f := range frags {
		hit[[2]int{f.X, f.Y}]++
	}
	for _, p := range [][2]int{{10, 10}, {30, 10}, {10, 30}, {15, 15}, {19, 20}} {
		if hit[p] == 0 {
			t.Errorf("pixel %v not covered", p)
		}
	}
	for _, p := range [][2]int{{25, 25}, {9, 10}, {10, 31}, {31, 10}} {
		if hit[p] != 0 {
			t.Errorf("pixel %v covered but lies outside", p)
		}
	}
	for y := 10; y <= 30; y++ {
		x := 10 + (30 - y)
		if hit[[2]int{x, y}] == 0 {
			t.Errorf("hypotenuse pixel (%d, %d) missing", x, y)
		}
	}
}

func TestRasterizeTriangleInterpolatesDepth(t *testing.T) {
	prog := &solidProgram{}
	var frags []Fragment
	tri := triangle{sv(0, 0, 0), sv(20, 0, 0), sv(0, 20, 1)}
	for _, part := range splitTriangle(prog, tri, nil) {
		rasterizeTriangle(prog, part, collect(&frags))
	}
	for _, f := range frags {
		if want := float64(f.Y) / 20; math.Abs(f.Z-want) > 1e-9 {
			t.Fatalf("fragment (%d, %d) depth = %v, want %v", f.X, f.Y, f.Z, want)
		}
	}
}

func TestRasterizeLineBresenham(t *testing.T) {
	prog := &solidProgram{}
	tests := []struct {
		name string
		a, b vertex
		want [][2]int
	}{
		{"single point", sv(2.4, 3.6, 0), sv(2.4, 3.6, 0), [][2]int{{2, 4}}},
		{"horizontal", sv(0, 5, 0), sv(10, 5, 0), span(0, 10, func(i int) [2]int { return [2]int{i, 5} })},
		{"vertical", sv(3, 0, 0), sv(3, 4, 0), span(0, 4, func(i int) [2]int { return [2]int{3, i} })},
		{"reversed diagonal", sv(4, 4, 0), sv(0, 0, 0), span(0, 4, func(i int) [2]int { return [2]int{4 - i, 4 - i} })},
		{"shallow", sv(0, 0, 0), sv(4, 2, 0), [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frags []Fragment
			rasterizeLineBresenham(prog, tt.a, tt.b, collect(&frags))
			if len(frags) != len(tt.want) {
				t.Fatalf("got %d fragments, want %d", len(frags), len(tt.want))
			}
			for i, f := range frags {
				if [2]int{f.X, f.Y} != tt.want[i] {
					t.Errorf("fragment %d at (%d, %d), want %v", i, f.X, f.Y, tt.want[i])
				}
			}
		})
	}
}

func span(from, to int, at func(i int) [2]int) [][2]int {
	var out [][2]int
	for i := from; i <= to; i++ {
		out = append(out, at(i))
	}
	return out
}

func TestRasterizeLineInterpolatesDepth(t *testing.T) {
	var frags []Fragment
	rasterizeLineBresenham(&solidProgram{}, sv(0, 5, 0), sv(10, 5, 1), collect(&frags))
	for _, f := range frags {
		if want := float64(f.X) / 10; math.Abs(f.Z-want) > 1e-12 {
			t.Errorf("x=%d depth = %v, want %v", f.X, f.Z, want)
		}
	}
}

func TestRasterizeLineAA(t *testing.T) {
	var frags []Fragment
	rasterizeLineAA(&solidProgram{}, sv(2, 5, 0), sv(12, 5, 0), collect(&frags))

	cov := make(map[int]float64)
	for _, f := range frags {
		if f.Y != 5 {
			t.Errorf("fragment off the line at (%d, %d) coverage %v", f.X, f.Y, f.Coverage)
		}
		cov[f.X] += f.Coverage
	}
	if len(frags) != 11 {
		t.Errorf("got %d fragments, want 11", len(frags))
	}
	for x := 3; x <= 11; x++ {
		if cov[x] != 1 {
			t.Errorf("x=%d coverage = %v, want 1", x, cov[x])
		}
	}
	if cov[2] != 0.5 || cov[12] != 0.5 {
		t.Errorf("endpoint coverage = %v, %v, want 0.5", cov[2], cov[12])
	}
}

func TestRasterizeLineAADiagonalCoverage(t *testing.T) {
	var frags []Fragment
	rasterizeLineAA(&solidProgram{}, sv(0, 0, 0), sv(10, 5, 0), collect(&frags))

	cols := make(map[int]float64)
	for _, f := range frags {
		if f.Coverage <= 0 || f.Coverage > 1 {
			t.Errorf("fragment (%d, %d) coverage %v outside (0, 1]", f.X, f.Y, f.Coverage)
		}
		cols[f.X] += f.Coverage
	}
	for x := 1; x <= 9; x++ {
		if math.Abs(cols[x]-1) > 1e-9 {
			t.Errorf("column %d total coverage = %v, want 1", x, cols[x])
		}
	}
}

func TestRasterizeLineAASteep(t *testing.T) {
	var frags []Fragment
	rasterizeLineAA(&solidProgram{}, sv(5, 0, 0), sv(5, 8, 0), collect(&frags))
	for _, f := range frags {
		if f.X != 5 {
			t.Errorf("steep line fragment at x=%d, want 5", f.X)
		}
	}
	if len(frags) != 9 {
		t.Errorf("got %d fragments, want 9", len(frags))
	}
}
