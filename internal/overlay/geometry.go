package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/justyntemme/colorfolder/internal/icons"
)

// Rect is a row rectangle in host coordinates.
type Rect struct {
	X, Y, W, H float32
}

// Bounds rounds r to integer pixel bounds.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Round(float64(r.X))),
		int(math.Round(float64(r.Y))),
		int(math.Round(float64(r.X+r.W))),
		int(math.Round(float64(r.Y+r.H))),
	)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// rowEpsilon is the tolerance for recognizing a single-line row height.
const rowEpsilon = 1e-5

// Layout describes the host's row geometry.
type Layout struct {
	// RowHeight is the height of a single-line list row.
	RowHeight float32
	// TwoColumnRightX is the largest row x offset of the two-column
	// layout's right-hand list; one-column rows start further right.
	TwoColumnRightX float32
	// Background masks the host icon underneath override images.
	Background color.NRGBA
}

// DefaultLayout returns the geometry of a 16px list row.
func DefaultLayout() Layout {
	return Layout{
		RowHeight:       16,
		TwoColumnRightX: 14,
		Background:      color.NRGBA{R: 194, G: 194, B: 194, A: 255},
	}
}

// Variant picks Row for single-line rows and Grid otherwise.
func (l Layout) Variant(row Rect) icons.Variant {
	if math.Abs(float64(row.H-l.RowHeight)) <= rowEpsilon {
		return icons.Row
	}
	return icons.Grid
}

// IconRect maps a row rectangle onto the square covering the host's icon.
func (l Layout) IconRect(row Rect, v icons.Variant) Rect {
	r := row
	if v == icons.Grid {
		r.H = r.W
		return r
	}
	if r.X <= l.TwoColumnRightX {
		r.X += 2
		r.W -= 2
	}
	r.W = r.H + 1
	r.H = r.W
	return r
}
