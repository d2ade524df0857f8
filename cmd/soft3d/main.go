// Command soft3d renders a scene file to an image with the soft3d software
// rasterizer.
//
// Usage:
//
//	soft3d -scene scene.yaml -o frame.png
//	soft3d -algorithm gouraud -bench 100 -preview
//
// Without -scene a built-in demo scene is rendered.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/display"
	"github.com/gogpu/soft3d/scenefile"
)

type options struct {
	scene     string
	output    string
	width     int
	height    int
	algorithm string
	topology  string
	line      string
	bench     int
	preview   bool
	overlay   bool
	verbose   bool
}

func main() {
	var o options
	flag.StringVar(&o.scene, "scene", "", "YAML scene file (default: built-in demo scene)")
	flag.StringVar(&o.output, "o", "frame.png", "output image (.png, .bmp, .tif)")
	flag.IntVar(&o.width, "width", 0, "image width (default: from the scene)")
	flag.IntVar(&o.height, "height", 0, "image height (default: from the scene)")
	flag.StringVar(&o.algorithm, "algorithm", "", "shading algorithm: solid, facecolor, normal, depth, gouraud, phong, texture")
	flag.StringVar(&o.topology, "topology", "", "primitive topology: triangles, points, lines, linestrip, lineloop")
	flag.StringVar(&o.line, "line", "", "line rasterizer: bresenham, antialiased")
	flag.IntVar(&o.bench, "bench", 0, "render the scene N more times and report throughput")
	flag.BoolVar(&o.preview, "preview", false, "print a truecolor preview to the terminal")
	flag.BoolVar(&o.overlay, "overlay", false, "draw render statistics onto the image")
	flag.BoolVar(&o.verbose, "v", false, "log pipeline activity to stderr")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "soft3d: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.verbose {
		soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	res, err := loadScene(o)
	if err != nil {
		return err
	}

	fb := res.NewFramebuffer()
	r := soft3d.NewRenderer(fb)

	start := time.Now()
	if err := r.RenderScene(res.Scene); err != nil {
		return err
	}
	frame := time.Since(start)
	stats := r.Stats()

	p := display.Printer()
	if o.bench > 0 {
		if err := bench(r, res.Scene, o.bench); err != nil {
			return err
		}
	}

	img := fb.ToImage()
	if o.overlay {
		display.Overlay(img, display.StatsLines(p, stats, frame))
	}
	if err := display.Save(o.output, img); err != nil {
		return err
	}
	p.Printf("%s: %dx%d, %d primitives, %d fragments in %v\n",
		o.output, res.Width, res.Height, stats.Primitives, stats.FragmentsWritten, frame.Round(time.Microsecond))

	if o.preview {
		cols := display.TerminalWidth(int(os.Stdout.Fd()), 80)
		return display.WriteANSI(os.Stdout, img, min(cols, res.Width))
	}
	return nil
}

// loadScene builds the scene and applies the command-line overrides.
func loadScene(o options) (*scenefile.Result, error) {
	doc, dir := scenefile.Default(), "."
	if o.scene != "" {
		var err error
		if doc, err = scenefile.Load(o.scene); err != nil {
			return nil, err
		}
		dir = filepath.Dir(o.scene)
	}
	if o.algorithm != "" {
		doc.Render.Algorithm = o.algorithm
	}
	if o.topology != "" {
		doc.Render.Topology = o.topology
	}
	if o.line != "" {
		doc.Render.Line = o.line
	}

	res, err := doc.Build(dir)
	if err != nil {
		return nil, err
	}
	if o.width > 0 || o.height > 0 {
		w, h := res.Width, res.Height
		if o.width > 0 {
			w = o.width
		}
		if o.height > 0 {
			h = o.height
		}
		res.Resize(w, h)
	}
	return res, nil
}

// bench re-renders the scene n times into the same framebuffer.
func bench(r *soft3d.Renderer, scene *soft3d.Scene, n int) error {
	fb := r.Framebuffer()
	r.ResetStats()

	pb := progressbar.Default(int64(n), "rendering")
	defer pb.Close()

	start := time.Now()
	for i := 0; i < n; i++ {
		fb.Clear()
		if err := r.RenderScene(scene); err != nil {
			return err
		}
		_ = pb.Add(1)
	}
	elapsed := time.Since(start)

	s := r.Stats()
	secs := elapsed.Seconds()
	display.Printer().Printf("%d frames in %v: %.1f fps, %.0f primitives/s, %.0f fragments/s\n",
		n, elapsed.Round(time.Millisecond), float64(n)/secs,
		float64(s.Primitives)/secs, float64(s.FragmentsWritten)/secs)
	return nil
}
