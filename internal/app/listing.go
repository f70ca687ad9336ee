package app

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/justyntemme/colorfolder/internal/decorate"
	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/overlay"
)

var (
	colWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colAlt   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
)

const (
	indentStep  = 14
	labelHeight = 14
)

// listing draws entries the way a file tree widget would, calling the
// decorator after each row's own icon.
type listing struct {
	d     *decorate.Decorator
	glyph icons.Glyph
	width int
	cell  int
}

// rows draws a single-column tree list.
func (l *listing) rows(entries []fs.Entry) *image.NRGBA {
	rh := l.d.Layout().RowHeight
	h := max(1, int(float32(len(entries))*rh+0.5))
	dst := image.NewNRGBA(image.Rect(0, 0, l.width, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: colWhite}, image.Point{}, draw.Src)
	canvas := overlay.NewRasterCanvas(dst)

	for i, e := range entries {
		row := overlay.Rect{
			X: float32(indentStep * (e.Depth + 1)),
			Y: float32(i) * rh,
			W: float32(l.width - indentStep*(e.Depth+1)),
			H: rh,
		}
		if i%2 == 1 {
			canvas.Fill(overlay.Rect{Y: row.Y, W: float32(l.width), H: rh}, colAlt)
		}

		iconRect := l.d.Layout().IconRect(row, icons.Row)
		canvas.DrawImage(iconRect, l.stock(e, int(rh)), overlay.StretchToFill)
		l.d.Render(e.Rel, e.IsDir, row, canvas)

		label(dst, e.Name, int(iconRect.X+iconRect.W)+4, int(row.Y+rh)-4)
	}
	return dst
}

// grid draws the entries as large icon cells.
func (l *listing) grid(entries []fs.Entry) *image.NRGBA {
	cols := max(1, l.width/l.cell)
	cellH := l.cell + labelHeight
	lines := (len(entries) + cols - 1) / cols
	dst := image.NewNRGBA(image.Rect(0, 0, l.width, max(1, lines*cellH)))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: colWhite}, image.Point{}, draw.Src)
	canvas := overlay.NewRasterCanvas(dst)

	for i, e := range entries {
		row := overlay.Rect{
			X: float32((i % cols) * l.cell),
			Y: float32((i / cols) * cellH),
			W: float32(l.cell),
			H: float32(cellH),
		}
		iconRect := l.d.Layout().IconRect(row, icons.Grid)
		canvas.DrawImage(iconRect, l.stock(e, l.cell), overlay.StretchToFill)
		l.d.Render(e.Rel, e.IsDir, row, canvas)

		label(dst, truncate(e.Name, l.cell/7), int(row.X)+2, int(row.Y)+cellH-3)
	}
	return dst
}

func (l *listing) stock(e fs.Entry, size int) image.Image {
	if e.IsDir {
		return l.glyph.Folder(size).Image()
	}
	return l.glyph.File(size).Image()
}

func label(dst draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: colBlack},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
