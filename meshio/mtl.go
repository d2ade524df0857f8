package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/soft3d"
)

// ParseMTL parses a material library. Texture maps are opened with open;
// a nil opener skips them. A texture that cannot be loaded is logged and
// left unset rather than failing the whole library.
func ParseMTL(r io.Reader, open Opener) (map[string]*soft3d.Material, error) {
	materials := make(map[string]*soft3d.Material)
	var cur *soft3d.Material

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		key, args := fields[0], fields[1:]

		if key == "newmtl" {
			if len(args) == 0 {
				return nil, lineError("mtl", line, fmt.Errorf("newmtl without a name: %w", ErrSyntax))
			}
			cur = soft3d.DefaultMaterial()
			cur.Name = strings.Join(args, " ")
			materials[cur.Name] = cur
			continue
		}
		if cur == nil {
			// Statements before the first newmtl have nothing to apply to.
			continue
		}

		var err error
		switch key {
		case "Ka":
			cur.Ambient, err = parseColor(args)
		case "Kd":
			cur.Diffuse, err = parseColor(args)
		case "Ks":
			cur.Specular, err = parseColor(args)
		case "Ns":
			cur.Shininess, err = parseScalar(args)
		case "d":
			var d float64
			d, err = parseScalar(args)
			cur.Transparency = 1 - d
		case "Tr":
			cur.Transparency, err = parseScalar(args)
		case "map_Kd":
			if len(args) == 0 {
				err = fmt.Errorf("map_Kd without a file: %w", ErrSyntax)
				break
			}
			// Options precede the file name; only the name is used.
			cur.Texture = loadTexture(open, args[len(args)-1])
		}
		if err != nil {
			return nil, lineError("mtl", line, fmt.Errorf("%s: %w", key, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: read mtl: %w", err)
	}
	return materials, nil
}

func loadTexture(open Opener, name string) *soft3d.Texture {
	if open == nil {
		return nil
	}
	rc, err := open(name)
	if err != nil {
		soft3d.Logger().Warn("meshio: texture unavailable", "file", name, "error", err)
		return nil
	}
	defer func() { _ = rc.Close() }()

	tex, err := soft3d.DecodeTexture(rc, soft3d.FilterBilinear)
	if err != nil {
		soft3d.Logger().Warn("meshio: texture unreadable", "file", name, "error", err)
		return nil
	}
	return tex
}

func parseColor(args []string) (soft3d.RGBA, error) {
	if len(args) < 3 {
		return soft3d.RGBA{}, fmt.Errorf("want r g b, got %d values: %w", len(args), ErrSyntax)
	}
	v, err := parseFloats(args[:3])
	if err != nil {
		return soft3d.RGBA{}, err
	}
	return soft3d.RGB(v[0], v[1], v[2]), nil
}

func parseScalar(args []string) (float64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing value: %w", ErrSyntax)
	}
	v, err := parseFloats(args[:1])
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, ErrSyntax)
		}
		out[i] = v
	}
	return out, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}
