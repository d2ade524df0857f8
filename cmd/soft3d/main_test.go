package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/scenefile"
)

func TestLoadSceneOverrides(t *testing.T) {
	res, err := loadScene(options{width: 80, algorithm: "depth", topology: "lines", line: "aa"})
	if err != nil {
		t.Fatalf("loadScene() error = %v", err)
	}
	if res.Width != 80 || res.Height != scenefile.Default().Framebuffer.Height {
		t.Errorf("size = %dx%d", res.Width, res.Height)
	}
	v := res.Scene.Viewer
	if v.Viewport.Width != 80 || v.Algorithm != soft3d.AlgorithmDepth ||
		v.Topology != soft3d.TopologyLines || v.LineAlgorithm != soft3d.LineAntialiased {
		t.Errorf("viewer = %+v", v)
	}

	if _, err := loadScene(options{algorithm: "raytrace"}); !errors.Is(err, scenefile.ErrInvalid) {
		t.Errorf("loadScene(raytrace) error = %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scene, []byte("objects:\n  - mesh: builtin:cube\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "frame.bmp")
	err := run(options{scene: scene, output: out, width: 40, height: 30, overlay: true, bench: 2})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("output not written: %v", err)
	}

	if err := run(options{scene: scene, output: filepath.Join(dir, "frame.gif")}); err == nil {
		t.Error("run() accepted an unsupported output format")
	}
}
