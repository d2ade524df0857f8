package display

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/soft3d"
)

// Scale resamples img to w x h. Nearest keeps hard pixel edges, which is
// what a rasterizer preview usually wants; bilinear smooths downscales.
func Scale(img image.Image, w, h int, filter soft3d.Filter) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	var s xdraw.Scaler = xdraw.NearestNeighbor
	if filter == soft3d.FilterBilinear {
		s = xdraw.BiLinear
	}
	s.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Fit returns the largest size with the aspect ratio of w x h that fits in
// maxW x maxH. Sizes never drop below one pixel.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	fw, fh := maxW, h*maxW/w
	if fh > maxH {
		fw, fh = w*maxH/h, maxH
	}
	return max(fw, 1), max(fh, 1)
}
