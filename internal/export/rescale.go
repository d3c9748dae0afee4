package export

import (
	"image"

	"golang.org/x/image/draw"
)

// Rescale resizes img to w×h. The scalers filter in premultiplied space and
// store back through the NRGBA model, so transparent edges do not pick up
// dark halos. Integer upscales use nearest neighbour to keep pixel edges
// sharp; everything else uses CatmullRom.
func Rescale(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if w <= 0 || h <= 0 || (b.Dx() == w && b.Dy() == h) {
		return img
	}

	var scaler draw.Scaler = draw.CatmullRom
	if w%b.Dx() == 0 && h%b.Dy() == 0 {
		scaler = draw.NearestNeighbor
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ScaleSize applies factor to a w×h frame, keeping at least one pixel.
func ScaleSize(w, h int, factor float64) (int, int) {
	if factor <= 0 {
		return w, h
	}
	return max(1, int(float64(w)*factor+0.5)), max(1, int(float64(h)*factor+0.5))
}
