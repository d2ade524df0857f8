package soft3d

import "math"

// Mat4 is a 4x4 matrix in row-major order, applied to column vectors:
//
//	| m00 m01 m02 m03 |   | x |
//	| m10 m11 m12 m13 | * | y |
//	| m20 m21 m22 m23 |   | z |
//	| m30 m31 m32 m33 |   | w |
//
// so A.Mul(B) applied to a point runs B first, then A.
type Mat4 [4][4]float64

// singularEpsilon is the pivot magnitude below which Inverse gives up.
const singularEpsilon = 1e-12

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(t Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, t.X},
		{0, 1, 0, t.Y},
		{0, 0, 1, t.Z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(s Vec3) Mat4 {
	return Mat4{
		{s.X, 0, 0, 0},
		{0, s.Y, 0, 0},
		{0, 0, s.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX creates a rotation around the X axis (angle in degrees).
func RotateX(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation around the Y axis (angle in degrees).
func RotateY(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation around the Z axis (angle in degrees).
func RotateZ(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotate creates a rotation from Euler angles in degrees. The X rotation
// is applied first, then Y, then Z.
func Rotate(deg Vec3) Mat4 {
	return RotateZ(deg.Z).Mul(RotateY(deg.Y)).Mul(RotateX(deg.X))
}

// Model composes translate ∘ rotate ∘ scale: points are scaled, then
// rotated, then translated.
func Model(t, r, s Vec3) Mat4 {
	return Translate(t).Mul(Rotate(r)).Mul(Scale(s))
}

// Perspective creates an OpenGL-style projection matrix. fovY is the
// vertical field of view in degrees. Points between near and far map to
// NDC z in [-1, 1].
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY*math.Pi/360)
	nf := 1 / (near - far)
	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) * nf, 2 * far * near * nf},
		{0, 0, -1, 0},
	}
}

// Orthographic creates an orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	return Mat4{
		{2 / (right - left), 0, 0, -(right + left) / (right - left)},
		{0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom)},
		{0, 0, -2 / (far - near), -(far + near) / (far - near)},
		{0, 0, 0, 1},
	}
}

// LookAt creates a right-handed view matrix looking from eye towards target.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		{s.X, s.Y, s.Z, -s.Dot(eye)},
		{u.X, u.Y, u.Z, -u.Dot(eye)},
		{-f.X, -f.Y, -f.Z, f.Dot(eye)},
		{0, 0, 0, 1},
	}
}

// Mul multiplies two matrices (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i][0]*other[0][j] +
				m[i][1]*other[1][j] +
				m[i][2]*other[2][j] +
				m[i][3]*other[3][j]
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		W: m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulPoint transforms a point (w = 1) and returns the homogeneous result
// without dividing by w.
func (m Mat4) MulPoint(p Vec3) Vec4 {
	return m.MulVec4(Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
}

// MulDirection transforms a direction (w = 0), ignoring translation.
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Inverse returns the inverse matrix using Gauss-Jordan elimination with
// partial pivoting. Returns the identity and ErrSingularMatrix if the
// matrix is not invertible.
func (m Mat4) Inverse() (Mat4, error) {
	a := m
	inv := Identity()

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < singularEpsilon {
			return Identity(), ErrSingularMatrix
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := 1 / a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] *= scale
			inv[col][j] *= scale
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv, nil
}

// NormalMatrix returns transpose(inverse(modelView)), the matrix that keeps
// normals perpendicular to surfaces under non-uniform scaling. A singular
// model-view (e.g. a zero scale) falls back to the identity and logs a
// warning; lighting on such an object is meaningless anyway.
func NormalMatrix(modelView Mat4) Mat4 {
	inv, err := modelView.Inverse()
	if err != nil {
		Logger().Warn("soft3d: normal matrix fallback to identity", "error", err)
		return Identity()
	}
	return inv.Transpose()
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}
