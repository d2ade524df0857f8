package soft3d

// VaryingMask selects which Varying fields a program actually uses.
// Interpolation skips the others, which stay zero.
type VaryingMask uint8

const (
	VaryingColor VaryingMask = 1 << iota
	VaryingNormal
	VaryingUV
	VaryingPosition

	VaryingNone VaryingMask = 0
	VaryingAll              = VaryingColor | VaryingNormal | VaryingUV | VaryingPosition
)

// Varying is the per-vertex payload interpolated across a primitive.
// Each program decides which fields it fills (see VaryingMask).
type Varying struct {
	Color    RGBA
	Normal   Vec3 // view space
	UV       Vec2
	Position Vec3 // view space
}

// Lerp interpolates the fields selected by mask; the other fields are
// zero in the result.
func (v Varying) Lerp(to Varying, p float64, mask VaryingMask) Varying {
	var out Varying
	if mask&VaryingColor != 0 {
		out.Color = v.Color.Lerp(to.Color, p)
	}
	if mask&VaryingNormal != 0 {
		out.Normal = v.Normal.Lerp(to.Normal, p)
	}
	if mask&VaryingUV != 0 {
		out.UV = v.UV.Lerp(to.UV, p)
	}
	if mask&VaryingPosition != 0 {
		out.Position = v.Position.Lerp(to.Position, p)
	}
	return out
}
