// Package soft3d is a CPU software rasterizer for triangle meshes.
//
// # Overview
//
// soft3d turns meshes into pixels without a GPU. A draw call runs a
// classic fixed pipeline:
//
//	vertex stage → clip → viewport → primitive assembly → rasterization
//	→ fragment tests (ownership, scissor, stencil, depth) → fragment shader
//	→ framebuffer write
//
// # Quick Start
//
//	fb := soft3d.NewFramebuffer(640, 480)
//	r := soft3d.NewRenderer(fb)
//
//	scene := &soft3d.Scene{
//	    Objects: []*soft3d.Object{{Name: "cube", Model: soft3d.Identity(), Mesh: soft3d.NewCube()}},
//	    Viewer: soft3d.Viewer{
//	        Camera:    soft3d.DefaultCamera(),
//	        Viewport:  soft3d.Viewport{Width: 640, Height: 480},
//	        Algorithm: soft3d.AlgorithmPhong,
//	        Light:     soft3d.Light{Position: soft3d.V3(3, 4, 5), Color: soft3d.White},
//	    },
//	}
//	if err := r.RenderScene(scene); err != nil {
//	    log.Fatal(err)
//	}
//	_ = fb.SavePNG("cube.png")
//
// # Programs
//
// Shading is pluggable. A Program supplies attribute setup, a vertex
// shader, varying interpolation and a fragment shader; the renderer picks
// one per draw call from Context.Algorithm. Built-in programs cover solid
// color, per-face color, normals, depth, Gouraud, Phong and textured
// rendering. Custom programs are registered with WithProgram.
//
// # Interpolation
//
// Triangles are split into flat-top and flat-bottom halves and filled
// scanline by scanline. Attributes are interpolated linearly in screen
// space, which is not perspective-correct; textures on large, steeply
// angled faces will swim.
//
// # Coordinate System
//
//   - Right-handed world and view space, camera looks down -Z.
//   - Screen origin (0,0) at top-left, Y increases down.
//   - Window depth in [0, 1], smaller is nearer; the depth buffer clears
//     to +Inf.
//
// # Concurrency
//
// The pipeline is single-threaded and synchronous. A Renderer and its
// Framebuffer belong to one goroutine for the duration of a frame; resize
// the framebuffer only between frames.
package soft3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
