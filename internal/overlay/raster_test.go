package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/draw"
)

func TestRasterCanvasFill(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	c := NewRasterCanvas(dst)
	c.Fill(Rect{X: 2, Y: 2, W: 4, H: 4}, color.NRGBA{R: 255, A: 255})

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, dst.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(6, 6))
}

func TestRasterCanvasStretch(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})

	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	c := &RasterCanvas{Dst: dst, Scaler: draw.NearestNeighbor}
	c.DrawImage(Rect{X: 0, Y: 0, W: 10, H: 10}, src, StretchToFill)

	// Stretching ignores aspect ratio and covers the whole rect.
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, dst.NRGBAAt(9, 9))
}

func TestRasterCanvasFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})

	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	c := &RasterCanvas{Dst: dst, Scaler: draw.NearestNeighbor}
	c.DrawImage(Rect{W: 10, H: 10}, src, ScaleToFit)

	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, dst.NRGBAAt(5, 5))
}

func TestFit(t *testing.T) {
	assert.Equal(t, image.Rect(0, 2, 10, 7), fit(image.Rect(0, 0, 10, 10), image.Pt(2, 1)))
	assert.Equal(t, image.Rect(2, 0, 7, 10), fit(image.Rect(0, 0, 10, 10), image.Pt(1, 2)))
	assert.True(t, fit(image.Rect(0, 0, 10, 10), image.Pt(0, 2)).Empty())
}

func TestRectBounds(t *testing.T) {
	assert.Equal(t, image.Rect(2, 3, 19, 20), Rect{X: 2, Y: 3, W: 17, H: 17}.Bounds())
	assert.True(t, Rect{W: 0, H: 5}.Empty())
}
