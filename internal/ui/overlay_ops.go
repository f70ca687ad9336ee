// Package ui adapts row decorations to Gio, for hosts built on gioui.org.
package ui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/justyntemme/colorfolder/internal/overlay"
)

// OpsCanvas records overlay draw calls into a Gio op list. Coordinates are
// relative to the current transform, so hosts record it inside the row's
// own layout.
type OpsCanvas struct {
	Ops    *op.Ops
	Images *ImageOpCache
}

// NewOpsCanvas records into ops, reusing image ops from images.
func NewOpsCanvas(ops *op.Ops, images *ImageOpCache) *OpsCanvas {
	if images == nil {
		images = NewImageOpCache(64)
	}
	return &OpsCanvas{Ops: ops, Images: images}
}

// Fill paints c over r.
func (oc *OpsCanvas) Fill(r overlay.Rect, c color.NRGBA) {
	paint.FillShape(oc.Ops, c, clip.Rect(r.Bounds()).Op())
}

// DrawImage paints img into r. Stretching scales each axis independently;
// fitting keeps the aspect ratio and centers the image.
func (oc *OpsCanvas) DrawImage(r overlay.Rect, img image.Image, mode overlay.ScaleMode) {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 || r.Empty() {
		return
	}

	sx := r.W / float32(size.X)
	sy := r.H / float32(size.Y)
	offset := f32.Pt(r.X, r.Y)
	if mode == overlay.ScaleToFit {
		s := min(sx, sy)
		offset.X += (r.W - s*float32(size.X)) / 2
		offset.Y += (r.H - s*float32(size.Y)) / 2
		sx, sy = s, s
	}

	tr := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(sx, sy)).Offset(offset)
	defer op.Affine(tr).Push(oc.Ops).Pop()
	defer clip.Rect{Max: size}.Push(oc.Ops).Pop()

	oc.Images.Get(img).Add(oc.Ops)
	paint.PaintOp{}.Add(oc.Ops)
}
