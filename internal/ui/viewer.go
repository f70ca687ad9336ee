package ui

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/decorate"
	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/overlay"
)

var (
	colWhite   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colAlt     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colDirBlue = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
)

// indentDp is the tree indentation per depth level
const indentDp = 14

// Viewer is a read-only tree list that decorates each row after drawing
// the row's own icon, the way a host file list would.
type Viewer struct {
	Theme *material.Theme

	decorator *decorate.Decorator
	entries   []fs.Entry
	images    *ImageOpCache
	folder    image.Image
	file      image.Image
	list      widget.List
}

// NewViewer lists entries with stock icons from glyph.
func NewViewer(d *decorate.Decorator, glyph icons.Glyph, entries []fs.Entry) *Viewer {
	size := int(d.Layout().RowHeight + 0.5)
	v := &Viewer{
		Theme:     material.NewTheme(),
		decorator: d,
		entries:   entries,
		images:    NewImageOpCache(256),
		folder:    glyph.Folder(size).Image(),
		file:      glyph.File(size).Image(),
	}
	v.list.Axis = layout.Vertical
	return v
}

// Run drives w until it is closed.
func (v *Viewer) Run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			v.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// Layout draws the list.
func (v *Viewer) Layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, colWhite)
	return material.List(v.Theme, &v.list).Layout(gtx, len(v.entries), v.layoutRow)
}

func (v *Viewer) layoutRow(gtx layout.Context, i int) layout.Dimensions {
	e := v.entries[i]
	l := v.decorator.Layout()
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(l.RowHeight)))

	if i%2 == 1 {
		paint.FillShape(gtx.Ops, colAlt, clip.Rect{Max: size}.Op())
	}

	// Row geometry is in dp so the Row variant survives display scaling.
	row := overlay.Rect{X: float32(indentDp * (e.Depth + 1)), H: l.RowHeight}
	row.W = float32(size.X)/gtx.Metric.PxPerDp - row.X
	iconRect := l.IconRect(row, icons.Row)

	px := gtx.Metric.PxPerDp
	scale := op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(px, px))).Push(gtx.Ops)
	canvas := NewOpsCanvas(gtx.Ops, v.images)
	stock := v.file
	if e.IsDir {
		stock = v.folder
	}
	canvas.DrawImage(iconRect, stock, overlay.StretchToFill)
	if out := v.decorator.Render(e.Rel, e.IsDir, row, canvas); out.Err != nil {
		debug.Log(debug.OVERLAY, "row %q undecorated: %v", e.Rel, out.Err)
	}
	scale.Pop()

	name := e.Name
	lbl := material.Body2(v.Theme, name)
	lbl.TextSize = unit.Sp(11)
	lbl.MaxLines = 1
	if e.IsDir {
		lbl.Text = name + "/"
		lbl.Color = colDirBlue
	}
	labelX := gtx.Dp(unit.Dp(iconRect.X + iconRect.W + 4))
	stack := op.Offset(image.Pt(labelX, 0)).Push(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints = layout.Constraints{Max: image.Pt(max(0, size.X-labelX), size.Y)}
	lbl.Layout(lgtx)
	stack.Pop()

	return layout.Dimensions{Size: size}
}
