package soft3d

// Lerp linearly interpolates between from and to: (1-p)*from + p*to.
//
// p is not restricted to [0, 1]; values outside extrapolate along the same
// line. The result is exactly from when p == 0 or from == to, and exactly
// to when p == 1. Every stage of the pipeline (clip-time vertex blending,
// triangle splitting, edge and span walking) goes through this function.
func Lerp(from, to, p float64) float64 {
	if from == to {
		return from
	}
	return (1-p)*from + p*to
}

// progress returns how far v lies between from and to, or 0 when the span
// is empty.
func progress(from, to, v float64) float64 {
	if to == from {
		return 0
	}
	return (v - from) / (to - from)
}
