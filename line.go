package soft3d

import "math"

// rasterizeLine dispatches to the line algorithm selected in the context.
func rasterizeLine(alg LineAlgorithm, prog Program, s segment, emit emitFunc) {
	if alg == LineAntialiased {
		rasterizeLineAA(prog, s[0], s[1], emit)
		return
	}
	rasterizeLineBresenham(prog, s[0], s[1], emit)
}

// rasterizeLineBresenham steps one pixel at a time along the dominant axis
// between the rounded endpoints, both inclusive. The other coordinate
// comes from the line equation; depth, stencil and varyings are
// interpolated by progress along the stepped axis.
func rasterizeLineBresenham(prog Program, a, b vertex, emit emitFunc) {
	x0, y0 := roundCoord(a.pos.X), roundCoord(a.pos.Y)
	x1, y1 := roundCoord(b.pos.X), roundCoord(b.pos.Y)
	dx, dy := x1-x0, y1-y0

	plot := func(x, y int, p float64) {
		f := lerpVertex(prog, a, b, p).fragment(x, y, 1)
		emit(&f)
	}

	switch {
	case dx == 0 && dy == 0:
		plot(x0, y0, 0)
	case dx == 0:
		sy := sign(dy)
		for i := 0; i <= abs(dy); i++ {
			y := y0 + i*sy
			plot(x0, y, float64(y-y0)/float64(dy))
		}
	case abs(dy) < abs(dx):
		slope := float64(dy) / float64(dx)
		sx := sign(dx)
		for i := 0; i <= abs(dx); i++ {
			x := x0 + i*sx
			y := y0 + roundCoord(slope*float64(x-x0))
			plot(x, y, float64(x-x0)/float64(dx))
		}
	default:
		invSlope := float64(dx) / float64(dy)
		sy := sign(dy)
		for i := 0; i <= abs(dy); i++ {
			y := y0 + i*sy
			x := x0 + roundCoord(invSlope*float64(y-y0))
			plot(x, y, float64(y-y0)/float64(dy))
		}
	}
}

// rasterizeLineAA draws a Xiaolin Wu line: along the major axis every step
// emits the two pixels straddling the ideal line, with coverage split by
// the fractional distance. Endpoints are weighted by their horizontal gap.
func rasterizeLineAA(prog Program, a, b vertex, emit emitFunc) {
	x0, y0 := a.pos.X, a.pos.Y
	x1, y1 := b.pos.X, b.pos.Y

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	from, to := a, b
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		from, to = to, from
	}

	dx := x1 - x0
	gradient := 1.0
	if dx != 0 {
		gradient = (y1 - y0) / dx
	}

	plot := func(major, minor int, coverage, p float64) {
		if coverage <= 0 {
			return
		}
		x, y := major, minor
		if steep {
			x, y = minor, major
		}
		f := lerpVertex(prog, from, to, clamp01(p)).fragment(x, y, math.Min(coverage, 1))
		emit(&f)
	}

	// First endpoint.
	xEnd := math.Floor(x0 + 0.5)
	yEnd := y0 + gradient*(xEnd-x0)
	xGap := rfpart(x0 + 0.5)
	xPx1 := int(xEnd)
	yPx1 := int(math.Floor(yEnd))
	plot(xPx1, yPx1, rfpart(yEnd)*xGap, 0)
	plot(xPx1, yPx1+1, fpart(yEnd)*xGap, 0)
	intery := yEnd + gradient

	// Second endpoint.
	xEnd = math.Floor(x1 + 0.5)
	yEnd = y1 + gradient*(xEnd-x1)
	xGap = fpart(x1 + 0.5)
	xPx2 := int(xEnd)
	yPx2 := int(math.Floor(yEnd))
	if xPx2 == xPx1 {
		return
	}
	plot(xPx2, yPx2, rfpart(yEnd)*xGap, 1)
	plot(xPx2, yPx2+1, fpart(yEnd)*xGap, 1)

	for x := xPx1 + 1; x < xPx2; x++ {
		p := progress(float64(xPx1), float64(xPx2), float64(x))
		y := int(math.Floor(intery))
		plot(x, y, rfpart(intery), p)
		plot(x, y+1, fpart(intery), p)
		intery += gradient
	}
}

func fpart(x float64) float64  { return x - math.Floor(x) }
func rfpart(x float64) float64 { return 1 - fpart(x) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
