package soft3d

import "errors"

// Data errors. These describe bad input (a malformed mesh, an unknown name
// in a scene file) and are always returned, never panicked.
var (
	// ErrInvalidFace is returned when a face references a position, normal
	// or UV index outside the mesh arrays.
	ErrInvalidFace = errors.New("soft3d: face index out of range")

	// ErrSingularMatrix is returned by Mat4.Inverse when the determinant is
	// (numerically) zero.
	ErrSingularMatrix = errors.New("soft3d: matrix is singular")

	// ErrUnknownAlgorithm is returned when no program is registered for an
	// algorithm, or an algorithm name cannot be parsed.
	ErrUnknownAlgorithm = errors.New("soft3d: unknown rendering algorithm")

	// ErrUnknownTopology is returned when a topology name cannot be parsed.
	ErrUnknownTopology = errors.New("soft3d: unknown primitive topology")

	// ErrUnknownLineAlgorithm is returned when a line algorithm name cannot
	// be parsed.
	ErrUnknownLineAlgorithm = errors.New("soft3d: unknown line algorithm")

	// ErrUnknownFilter is returned when a texture filter name cannot be
	// parsed.
	ErrUnknownFilter = errors.New("soft3d: unknown texture filter")

	// ErrUniformNotFound is returned when a program asks for a uniform that
	// is not present in the table.
	ErrUniformNotFound = errors.New("soft3d: uniform not found")

	// ErrUniformType is returned when a uniform exists but holds a value of
	// a different kind than requested.
	ErrUniformType = errors.New("soft3d: uniform has wrong type")
)

// Contract errors. Returned instead of panicking so that a caller driving
// the renderer from a long-lived loop can log and continue with the next
// frame.
var (
	// ErrNilContext is returned when Render is called without a context.
	ErrNilContext = errors.New("soft3d: rendering context is nil")

	// ErrNilMesh is returned when Render is called without a mesh.
	ErrNilMesh = errors.New("soft3d: mesh is nil")
)
