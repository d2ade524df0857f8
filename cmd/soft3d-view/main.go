// Command soft3d-view shows a scene in a resizable window, re-rendering it
// on the CPU every frame.
//
// Keys:
//
//	arrows      orbit the camera around its target
//	+ / -       move the camera closer or further
//	1 ... 7     switch shading algorithm
//	T           cycle primitive topology
//	L           toggle antialiased lines
//	O           toggle the statistics overlay
//	Esc         quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/display"
	"github.com/gogpu/soft3d/scenefile"
)

const (
	orbitStep = 2.0 // degrees per tick
	zoomStep  = 1.03
	maxPitch  = 85.0
)

var algorithmKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

func main() {
	var (
		scene   = flag.String("scene", "", "YAML scene file (default: built-in demo scene)")
		scale   = flag.Int("scale", 1, "window pixels per framebuffer pixel")
		verbose = flag.Bool("v", false, "log pipeline activity to stderr")
	)
	flag.Parse()

	if *verbose {
		soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := run(*scene, max(*scale, 1)); err != nil {
		fmt.Fprintf(os.Stderr, "soft3d-view: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string, scale int) error {
	doc, dir := scenefile.Default(), "."
	if scenePath != "" {
		var err error
		if doc, err = scenefile.Load(scenePath); err != nil {
			return err
		}
		dir = filepath.Dir(scenePath)
	}
	res, err := doc.Build(dir)
	if err != nil {
		return err
	}

	v := newViewer(res, scale)
	ebiten.SetWindowTitle("soft3d")
	ebiten.SetWindowSize(res.Width*scale, res.Height*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// viewer implements ebiten.Game. The framebuffer is resized only in Layout,
// which ebiten calls between frames.
type viewer struct {
	res     *scenefile.Result
	fb      *soft3d.Framebuffer
	r       *soft3d.Renderer
	surface *display.Surface
	screen  *ebiten.Image
	scale   int

	yaw, pitch, dist float64
	overlay          bool
	stats            soft3d.Stats
	frame            time.Duration
}

func newViewer(res *scenefile.Result, scale int) *viewer {
	fb := res.NewFramebuffer()
	v := &viewer{
		res:     res,
		fb:      fb,
		r:       soft3d.NewRenderer(fb),
		surface: display.NewSurface(fb),
		scale:   scale,
		overlay: true,
	}
	v.surface.OnResize(func(w, h int) { v.rebindScreen(w, h) })
	v.rebindScreen(fb.Width(), fb.Height())

	cam := res.Scene.Viewer.Camera
	off := cam.Eye.Sub(cam.Target)
	v.dist = off.Length()
	if v.dist > 0 {
		v.pitch = math.Asin(off.Y/v.dist) * 180 / math.Pi
		v.yaw = math.Atan2(off.X, off.Z) * 180 / math.Pi
	}
	return v
}

func (v *viewer) rebindScreen(w, h int) {
	if v.screen != nil {
		v.screen.Deallocate()
		v.screen = nil
	}
	if w > 0 && h > 0 {
		v.screen = ebiten.NewImage(w, h)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		v.yaw -= orbitStep
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		v.yaw += orbitStep
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		v.pitch = min(v.pitch+orbitStep, maxPitch)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		v.pitch = max(v.pitch-orbitStep, -maxPitch)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyEqual), ebiten.IsKeyPressed(ebiten.KeyNumpadAdd):
		v.dist /= zoomStep
	case ebiten.IsKeyPressed(ebiten.KeyMinus), ebiten.IsKeyPressed(ebiten.KeyNumpadSubtract):
		v.dist *= zoomStep
	}

	sv := &v.res.Scene.Viewer
	algs := soft3d.Algorithms()
	for i, k := range algorithmKeys {
		if i < len(algs) && inpututil.IsKeyJustPressed(k) {
			sv.Algorithm = algs[i]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		sv.Topology = (sv.Topology + 1) % (soft3d.TopologyLineLoop + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		sv.LineAlgorithm ^= soft3d.LineAntialiased
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.overlay = !v.overlay
	}

	yaw, pitch := v.yaw*math.Pi/180, v.pitch*math.Pi/180
	dir := soft3d.V3(math.Cos(pitch)*math.Sin(yaw), math.Sin(pitch), math.Cos(pitch)*math.Cos(yaw))
	sv.Camera.Eye = sv.Camera.Target.Add(dir.Mul(v.dist))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.screen == nil {
		return
	}

	v.fb.Clear()
	v.r.ResetStats()
	start := time.Now()
	if err := v.r.RenderScene(v.res.Scene); err != nil {
		soft3d.Logger().Error("soft3d-view: render failed", "error", err)
	}
	v.frame = time.Since(start)
	v.stats = v.r.Stats()

	v.surface.Refresh()
	img := v.surface.Image()
	if v.overlay {
		sv := v.res.Scene.Viewer
		lines := append([]string{fmt.Sprintf("%s  %s  %s", sv.Algorithm, sv.Topology, sv.LineAlgorithm)},
			display.StatsLines(display.Printer(), v.stats, v.frame)...)
		display.Overlay(img, lines)
	}
	v.screen.WritePixels(v.surface.Premultiplied().Pix)
	screen.DrawImage(v.screen, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth/v.scale, 1), max(outsideHeight/v.scale, 1)
	if w != v.fb.Width() || h != v.fb.Height() {
		v.fb.SetResolution(w, h)
		v.res.Resize(w, h)
	}
	return w, h
}
