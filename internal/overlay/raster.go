package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RasterCanvas draws onto an in-memory image.
type RasterCanvas struct {
	Dst    draw.Image
	Scaler draw.Scaler
}

// NewRasterCanvas draws onto dst with bilinear scaling.
func NewRasterCanvas(dst draw.Image) *RasterCanvas {
	return &RasterCanvas{Dst: dst, Scaler: draw.BiLinear}
}

// Fill blends c over r.
func (rc *RasterCanvas) Fill(r Rect, c color.NRGBA) {
	draw.Draw(rc.Dst, r.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// DrawImage scales img into r and blends it over the destination.
func (rc *RasterCanvas) DrawImage(r Rect, img image.Image, mode ScaleMode) {
	dst := r.Bounds()
	if mode == ScaleToFit {
		dst = fit(dst, img.Bounds().Size())
	}
	if dst.Empty() {
		return
	}
	rc.Scaler.Scale(rc.Dst, dst, img, img.Bounds(), draw.Over, nil)
}

// fit centers the largest rectangle with the aspect ratio of size inside r.
func fit(r image.Rectangle, size image.Point) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := r.Dx(), r.Dy()
	if w*size.Y > h*size.X {
		w = h * size.X / size.Y
	} else {
		h = w * size.Y / size.X
	}
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
