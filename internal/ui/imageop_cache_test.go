package ui

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/op"
	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/colorfolder/internal/overlay"
)

func TestImageOpCacheReusesOps(t *testing.T) {
	c := NewImageOpCache(2)
	a := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	first := c.Get(a)
	assert.Equal(t, first, c.Get(a))
	assert.Equal(t, image.Pt(4, 4), first.Size())
	assert.Equal(t, 1, c.Size())

	c.Get(b)
	assert.Equal(t, 2, c.Size())
}

func TestImageOpCacheEvictsLeastRecent(t *testing.T) {
	c := NewImageOpCache(2)
	a := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	d := image.NewNRGBA(image.Rect(0, 0, 3, 3))

	c.Get(a)
	c.Get(b)
	c.Get(a) // a is now most recent
	c.Get(d)

	assert.Equal(t, 2, c.Size())
	_, hasA := c.cache[a]
	_, hasB := c.cache[b]
	assert.True(t, hasA)
	assert.False(t, hasB)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestOpsCanvasRecords(t *testing.T) {
	ops := new(op.Ops)
	images := NewImageOpCache(4)
	canvas := NewOpsCanvas(ops, images)

	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	plan := overlay.Plan{Steps: []overlay.Step{
		{Kind: overlay.FillStep, Rect: overlay.Rect{X: 2, Y: 0, W: 17, H: 17}, Color: color.NRGBA{A: 255}},
		{Kind: overlay.ImageStep, Rect: overlay.Rect{X: 2, Y: 0, W: 17, H: 17}, Image: img},
		{Kind: overlay.ImageStep, Rect: overlay.Rect{X: 2, Y: 0, W: 17, H: 17}, Image: img, Mode: overlay.ScaleToFit},
	}}
	plan.Execute(canvas)

	assert.Equal(t, 1, images.Size())
}
