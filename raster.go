package soft3d

import "math"

// emitFunc receives every fragment a rasterizer generates. The fragment is
// only valid for the duration of the call.
type emitFunc func(f *Fragment)

// roundCoord rounds a screen coordinate to the pixel it falls in.
func roundCoord(v float64) int {
	return int(math.Round(v))
}

// rasterizePoint emits exactly one fragment at the rounded position.
func rasterizePoint(v vertex, emit emitFunc) {
	f := v.fragment(roundCoord(v.pos.X), roundCoord(v.pos.Y), 1)
	emit(&f)
}

// rasterizeTriangle scan-converts a flat-sided triangle produced by
// splitTriangle (vertices sorted by y).
//
// Every scanline interpolates one endpoint on the long edge v0→v2 and the
// other on whichever short edge spans that row, then walks the span. Both
// levels are plain screen-space lerps; there is no 1/w correction.
func rasterizeTriangle(prog Program, t triangle, emit emitFunc) {
	v0, v1, v2 := t[0], t[1], t[2]
	yStart := roundCoord(v0.pos.Y)
	yEnd := roundCoord(v2.pos.Y)

	if v0.pos.Y == v2.pos.Y {
		left, right := v0, v0
		for _, v := range t[1:] {
			if v.pos.X < left.pos.X {
				left = v
			}
			if v.pos.X > right.pos.X {
				right = v
			}
		}
		rasterizeSpan(prog, left, right, yStart, emit)
		return
	}

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)
		long := lerpVertex(prog, v0, v2, clamp01(progress(v0.pos.Y, v2.pos.Y, fy)))

		// Flat-top halves only have the lower edge, flat-bottom halves only
		// the upper one; rows that straddle a rounded vertex must not pick
		// the zero-height edge.
		var short vertex
		switch {
		case v1.pos.Y == v0.pos.Y:
			short = lerpVertex(prog, v1, v2, clamp01(progress(v1.pos.Y, v2.pos.Y, fy)))
		case v1.pos.Y == v2.pos.Y || fy < v1.pos.Y:
			short = lerpVertex(prog, v0, v1, clamp01(progress(v0.pos.Y, v1.pos.Y, fy)))
		default:
			short = lerpVertex(prog, v1, v2, clamp01(progress(v1.pos.Y, v2.pos.Y, fy)))
		}

		left, right := long, short
		if left.pos.X > right.pos.X {
			left, right = right, left
		}
		rasterizeSpan(prog, left, right, y, emit)
	}
}

// rasterizeSpan emits one fragment per pixel from left to right inclusive
// on row y, interpolating by x progress between the two endpoints.
func rasterizeSpan(prog Program, left, right vertex, y int, emit emitFunc) {
	xStart := roundCoord(left.pos.X)
	xEnd := roundCoord(right.pos.X)
	for x := xStart; x <= xEnd; x++ {
		v := lerpVertex(prog, left, right, clamp01(progress(left.pos.X, right.pos.X, float64(x))))
		f := v.fragment(x, y, 1)
		emit(&f)
	}
}
