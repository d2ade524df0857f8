package soft3d

import "math"

// quadFaces appends the two counter-clockwise triangles of a quad whose
// corners are at positions base..base+3 and UVs 0..3.
func quadFaces(faces []Face, base, normal int) []Face {
	return append(faces,
		Face{
			Position: [3]int{base, base + 1, base + 2},
			Normal:   [3]int{normal, normal, normal},
			UV:       [3]int{0, 1, 2},
		},
		Face{
			Position: [3]int{base, base + 2, base + 3},
			Normal:   [3]int{normal, normal, normal},
			UV:       [3]int{0, 2, 3},
		},
	)
}

var quadUVs = []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// NewCube creates an axis-aligned cube spanning [-1, 1] on every axis with
// flat per-face normals and a full [0, 1] UV square on each face.
func NewCube() *Mesh {
	sides := []struct{ n, u, v Vec3 }{
		{V3(1, 0, 0), V3(0, 0, -1), V3(0, 1, 0)},
		{V3(-1, 0, 0), V3(0, 0, 1), V3(0, 1, 0)},
		{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{V3(0, -1, 0), V3(1, 0, 0), V3(0, 0, 1)},
		{V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{V3(0, 0, -1), V3(-1, 0, 0), V3(0, 1, 0)},
	}

	m := &Mesh{Name: "cube", UVs: quadUVs}
	for i, s := range sides {
		base := len(m.Positions)
		m.Positions = append(m.Positions,
			s.n.Sub(s.u).Sub(s.v),
			s.n.Add(s.u).Sub(s.v),
			s.n.Add(s.u).Add(s.v),
			s.n.Sub(s.u).Add(s.v),
		)
		m.Normals = append(m.Normals, s.n)
		m.Faces = quadFaces(m.Faces, base, i)
	}
	return m
}

// NewPlane creates a 2×2 square in the XZ plane facing +Y.
func NewPlane() *Mesh {
	m := &Mesh{
		Name: "plane",
		Positions: []Vec3{
			{-1, 0, 1}, {1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
		},
		Normals: []Vec3{{0, 1, 0}},
		UVs:     quadUVs,
	}
	m.Faces = quadFaces(nil, 0, 0)
	return m
}

// NewUVSphere creates a unit sphere from latitude rings and longitude
// segments. Normals equal positions; UVs wrap once around the equator.
func NewUVSphere(rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)

	m := &Mesh{Name: "sphere"}
	for i := 0; i <= rings; i++ {
		theta := float64(i) * math.Pi / float64(rings)
		st, ct := math.Sincos(theta)
		for j := 0; j <= segments; j++ {
			phi := float64(j) * 2 * math.Pi / float64(segments)
			sp, cp := math.Sincos(phi)
			p := V3(st*cp, ct, -st*sp)
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, p)
			m.UVs = append(m.UVs, V2(float64(j)/float64(segments), 1-float64(i)/float64(rings)))
		}
	}

	stride := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := i*stride + j
			b := (i+1)*stride + j
			c := b + 1
			d := a + 1
			if i != rings-1 {
				m.Faces = append(m.Faces, Face{Position: [3]int{a, b, c}, Normal: [3]int{a, b, c}, UV: [3]int{a, b, c}})
			}
			if i != 0 {
				m.Faces = append(m.Faces, Face{Position: [3]int{a, c, d}, Normal: [3]int{a, c, d}, UV: [3]int{a, c, d}})
			}
		}
	}
	return m
}
