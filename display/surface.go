package display

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/soft3d"
)

// Surface is an RGBA image that mirrors a framebuffer's pixel plane. It
// follows the framebuffer through resizes, so a window can hand Image()
// straight to its toolkit after every Refresh.
type Surface struct {
	fb      *soft3d.Framebuffer
	img     *image.NRGBA
	rgba    *image.RGBA
	resized func(width, height int)
}

// NewSurface binds a surface to fb.
func NewSurface(fb *soft3d.Framebuffer) *Surface {
	s := &Surface{fb: fb}
	s.rebind(fb.Width(), fb.Height())
	fb.OnResize(s.rebind)
	return s
}

// OnResize registers fn to run after the surface re-binds to a new size.
func (s *Surface) OnResize(fn func(width, height int)) {
	s.resized = fn
}

func (s *Surface) rebind(width, height int) {
	s.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.rgba = image.NewRGBA(s.img.Rect)
	soft3d.Logger().Debug("display: surface rebound", "width", width, "height", height)
	if s.resized != nil {
		s.resized(width, height)
	}
}

// Refresh copies the current pixel plane into the surface image.
func (s *Surface) Refresh() {
	s.fb.CopyTo(s.img)
}

// Image returns the surface image. The pointer changes after a resize.
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Premultiplied converts the surface image, including anything drawn onto
// it since the last Refresh, to alpha-premultiplied RGBA. The returned
// image is reused by the next call.
func (s *Surface) Premultiplied() *image.RGBA {
	xdraw.Draw(s.rgba, s.rgba.Rect, s.img, image.Point{}, xdraw.Src)
	return s.rgba
}
