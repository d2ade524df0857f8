package soft3d

// triangle is three screen-space vertices. After assembly they are sorted
// by y and at least two of them share a y.
type triangle [3]vertex

// segment is a line primitive.
type segment [2]vertex

// vertexLess orders vertices by y, then x, then z.
func vertexLess(a, b *vertex) bool {
	if a.pos.Y != b.pos.Y {
		return a.pos.Y < b.pos.Y
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}
	return a.pos.Z < b.pos.Z
}

// sortTriangle sorts three vertices in place with vertexLess.
func sortTriangle(t *triangle) {
	if vertexLess(&t[1], &t[0]) {
		t[0], t[1] = t[1], t[0]
	}
	if vertexLess(&t[2], &t[1]) {
		t[1], t[2] = t[2], t[1]
	}
	if vertexLess(&t[1], &t[0]) {
		t[0], t[1] = t[1], t[0]
	}
}

// assembleTriangles groups the vertex stream into runs of three, drops
// triangles with a rejected vertex and splits the rest into flat-sided
// triangles, appending them to out.
func assembleTriangles(prog Program, verts []vertex, out []triangle) []triangle {
	for i := 0; i+2 < len(verts); i += 3 {
		t := triangle{verts[i], verts[i+1], verts[i+2]}
		if t[0].clipped || t[1].clipped || t[2].clipped {
			continue
		}
		out = splitTriangle(prog, t, out)
	}
	return out
}

// splitTriangle sorts t and, when its middle vertex lies strictly between
// the top and bottom rows, cuts it along the middle vertex's scanline. The
// new vertex is interpolated on the long edge v0→v2 and snapped to exactly
// the middle y, giving a flat-bottom and a flat-top triangle.
func splitTriangle(prog Program, t triangle, out []triangle) []triangle {
	sortTriangle(&t)
	v0, v1, v2 := t[0], t[1], t[2]
	if v1.pos.Y == v0.pos.Y || v1.pos.Y == v2.pos.Y {
		return append(out, t)
	}

	p := (v1.pos.Y - v0.pos.Y) / (v2.pos.Y - v0.pos.Y)
	v3 := lerpVertex(prog, v0, v2, p)
	v3.pos.Y = v1.pos.Y

	upper := triangle{v0, v1, v3}
	lower := triangle{v1, v3, v2}
	sortTriangle(&upper)
	sortTriangle(&lower)
	return append(out, upper, lower)
}

// assembleLines pairs vertices according to a line topology, skipping
// segments with a rejected endpoint, and appends them to out.
func assembleLines(topology Topology, verts []vertex, out []segment) []segment {
	add := func(a, b vertex) {
		if a.clipped || b.clipped {
			return
		}
		out = append(out, segment{a, b})
	}

	switch topology {
	case TopologyLines:
		for i := 0; i+1 < len(verts); i += 2 {
			add(verts[i], verts[i+1])
		}
	case TopologyLineStrip, TopologyLineLoop:
		for i := 0; i+1 < len(verts); i++ {
			add(verts[i], verts[i+1])
		}
		if topology == TopologyLineLoop && len(verts) > 2 {
			add(verts[len(verts)-1], verts[0])
		}
	}
	return out
}
