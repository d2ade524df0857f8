// Package meshio loads Wavefront OBJ meshes and MTL materials into
// soft3d meshes.
//
// Supported OBJ statements: v, vt, vn, f (with v, v/vt, v//vn and v/vt/vn
// corners, negative indices and polygons of any size, which are fanned into
// triangles), o and g (start a new mesh), usemtl and mtllib. Supported MTL
// statements: newmtl, Ka, Kd, Ks, Ns, d, Tr and map_Kd. Anything else is
// skipped.
//
// Faces without normals get a flat per-face normal.
package meshio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrMalformedFace is returned for a face with fewer than three corners
	// or a corner index that is zero or out of range.
	ErrMalformedFace = errors.New("meshio: malformed face")

	// ErrSyntax is returned for a statement whose arguments cannot be
	// parsed.
	ErrSyntax = errors.New("meshio: syntax error")
)

// Opener opens a file referenced from inside an OBJ or MTL file (material
// libraries, texture maps). Names are exactly as written in the file.
type Opener func(name string) (io.ReadCloser, error)

// DirOpener resolves referenced files relative to dir.
func DirOpener(dir string) Opener {
	return func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, filepath.Clean(name)))
	}
}

// lineError annotates err with the file and line it occurred on.
func lineError(file string, line int, err error) error {
	return fmt.Errorf("%s:%d: %w", file, line, err)
}
