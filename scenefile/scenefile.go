// Package scenefile reads YAML scene documents and builds renderable
// soft3d scenes from them.
//
// A document looks like:
//
//	framebuffer:
//	  width: 640
//	  height: 480
//	  clear: "#1e1e28"
//	camera:
//	  eye: [0, 1.5, 5]
//	  target: [0, 0, 0]
//	  fov: 50
//	light:
//	  position: [4, 6, 5]
//	render:
//	  algorithm: phong
//	  topology: triangles
//	objects:
//	  - name: ball
//	    mesh: builtin:sphere
//	    position: [0, 0, 0]
//	    rotation: [0, 30, 0]
//	    material:
//	      diffuse: "#d04040"
//	  - name: teapot
//	    mesh: models/teapot.obj
//
// Meshes are either builtin:cube, builtin:plane, builtin:sphere, or OBJ
// paths relative to the document.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/soft3d"
)

// ErrInvalid is returned for a document whose values cannot be used.
var ErrInvalid = errors.New("scenefile: invalid document")

// Document is the YAML form of a scene.
type Document struct {
	Framebuffer FramebufferConfig `yaml:"framebuffer"`
	Camera      CameraConfig      `yaml:"camera"`
	Light       LightConfig       `yaml:"light"`
	Render      RenderConfig      `yaml:"render"`
	Objects     []ObjectConfig    `yaml:"objects"`
}

// FramebufferConfig sets the output resolution and clear values.
type FramebufferConfig struct {
	Width  int    `yaml:"width"`  // default 640
	Height int    `yaml:"height"` // default 480
	Clear  *Color `yaml:"clear"`  // default opaque black
}

// CameraConfig overrides fields of soft3d.DefaultCamera.
type CameraConfig struct {
	Eye    *Vec3   `yaml:"eye"`
	Target *Vec3   `yaml:"target"`
	Up     *Vec3   `yaml:"up"`
	FovY   float64 `yaml:"fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

// LightConfig places the point light. It defaults to a white light at the
// camera eye.
type LightConfig struct {
	Position *Vec3  `yaml:"position"`
	Color    *Color `yaml:"color"`
}

// RenderConfig selects the pipeline configuration.
type RenderConfig struct {
	Algorithm string `yaml:"algorithm"` // default solid
	Topology  string `yaml:"topology"`  // default triangles
	Line      string `yaml:"line"`      // bresenham or antialiased
	DepthTest *bool  `yaml:"depth_test"`
	Scissor   []int  `yaml:"scissor"` // [x0, y0, x1, y1]
	Filter    string `yaml:"filter"`  // texture filter: nearest or bilinear
}

// ObjectConfig places one mesh in the scene.
type ObjectConfig struct {
	Name     string          `yaml:"name"`
	Mesh     string          `yaml:"mesh"`
	Hidden   bool            `yaml:"hidden"`
	Position *Vec3           `yaml:"position"`
	Rotation *Vec3           `yaml:"rotation"` // Euler degrees
	Scale    *Vec3           `yaml:"scale"`
	Material *MaterialConfig `yaml:"material"`
}

// MaterialConfig overrides the mesh material. Unset colors keep the
// default material values.
type MaterialConfig struct {
	Ambient      *Color   `yaml:"ambient"`
	Diffuse      *Color   `yaml:"diffuse"`
	Specular     *Color   `yaml:"specular"`
	Shininess    *float64 `yaml:"shininess"`
	Transparency float64  `yaml:"transparency"`
	Texture      string   `yaml:"texture"`
}

// Vec3 is a three-element YAML sequence.
type Vec3 soft3d.Vec3

// UnmarshalYAML implements yaml.Unmarshaler for Vec3.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: want [x, y, z], got %d values: %w", value.Line, len(xs), ErrInvalid)
	}
	*v = Vec3{X: xs[0], Y: xs[1], Z: xs[2]}
	return nil
}

func (v *Vec3) or(def soft3d.Vec3) soft3d.Vec3 {
	if v == nil {
		return def
	}
	return soft3d.Vec3(*v)
}

// Color is a "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" string.
type Color soft3d.RGBA

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if !validHex(s) {
		return fmt.Errorf("line %d: color %q: %w", value.Line, s, ErrInvalid)
	}
	*c = Color(soft3d.Hex(s))
	return nil
}

func (c *Color) or(def soft3d.RGBA) soft3d.RGBA {
	if c == nil {
		return def
	}
	return soft3d.RGBA(*c)
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Load reads and parses a scene document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	soft3d.Logger().Info("scenefile: loaded", "path", path, "objects", len(doc.Objects))
	return doc, nil
}

// Parse decodes a scene document. Unknown keys are rejected; an empty
// document is valid and builds an empty scene with default settings.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &doc, nil
}
