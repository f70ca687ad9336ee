package icons

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/justyntemme/colorfolder/internal/pixel"
)

// Glyph draws simple folder and file icons. Hosts without stock artwork
// use it as their StockProvider.
type Glyph struct {
	RowSize  int
	GridSize int
	Inner    color.NRGBA
	Outer    color.NRGBA
}

// DefaultGlyph matches the list icon sizes of a 16px row and a 64px grid cell.
func DefaultGlyph() Glyph {
	return Glyph{
		RowSize:  16,
		GridSize: 64,
		Inner:    color.NRGBA{R: 180, G: 180, B: 180, A: 255},
		Outer:    color.NRGBA{R: 100, G: 100, B: 100, A: 255},
	}
}

func (g Glyph) size(v Variant) int {
	if v == Grid {
		return g.GridSize
	}
	return g.RowSize
}

// StockIcon implements StockProvider.
func (g Glyph) StockIcon(v Variant) (*pixel.Buffer, error) {
	size := g.size(v)
	if size <= 0 {
		return nil, ErrNoStockIcon
	}
	return g.Folder(size), nil
}

// Folder draws a folder body with a border and a tab.
func (g Glyph) Folder(size int) *pixel.Buffer {
	buf := pixel.New(size, size)
	dst := buf.Image()
	s := float32(size)

	bodyY := int(s * 0.28)
	bodyH := int(s * 0.58)
	bodyW := int(s * 0.76)
	bodyX := int(s * 0.12)
	border := max(1, size/16)

	fill(dst, image.Rect(bodyX, bodyY, bodyX+bodyW, bodyY+bodyH), g.Inner)
	fill(dst, image.Rect(bodyX, bodyY, bodyX+bodyW, bodyY+border), g.Outer)
	fill(dst, image.Rect(bodyX, bodyY+bodyH-border, bodyX+bodyW, bodyY+bodyH), g.Outer)
	fill(dst, image.Rect(bodyX, bodyY, bodyX+border, bodyY+bodyH), g.Outer)
	fill(dst, image.Rect(bodyX+bodyW-border, bodyY, bodyX+bodyW, bodyY+bodyH), g.Outer)

	// Tab
	tabW := int(s * 0.30)
	tabH := max(1, int(s*0.12))
	fill(dst, image.Rect(bodyX, bodyY-tabH, bodyX+tabW, bodyY+border), g.Outer)
	return buf
}

// File draws a sheet with a folded corner.
func (g Glyph) File(size int) *pixel.Buffer {
	buf := pixel.New(size, size)
	dst := buf.Image()
	s := float32(size)

	left, right := int(s*0.2), int(s*0.8)
	top, bottom := int(s*0.1), int(s*0.9)
	fold := int(s * 0.2)
	border := max(1, size/16)

	fill(dst, image.Rect(left, top, right, bottom), g.Outer)
	fill(dst, image.Rect(left+border, top+border, right-border, bottom-border), color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	fill(dst, image.Rect(right-fold, top, right, top+fold), g.Inner)
	return buf
}

func fill(dst draw.Image, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
