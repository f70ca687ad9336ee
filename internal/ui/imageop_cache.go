package ui

import (
	"container/list"
	"image"

	"gioui.org/op/paint"

	"github.com/justyntemme/colorfolder/internal/debug"
)

// ImageOpCache provides an LRU cache of Gio image ops keyed by source image.
// Gio uploads each ImageOp once, so reusing the op across frames keeps the
// tinted icons resident on the GPU.
type ImageOpCache struct {
	cache   map[image.Image]*imageOpEntry
	lru     *list.List // front = most recent
	maxSize int
}

type imageOpEntry struct {
	src     image.Image
	op      paint.ImageOp
	element *list.Element
}

// NewImageOpCache creates a cache holding at most maxEntries ops.
func NewImageOpCache(maxEntries int) *ImageOpCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ImageOpCache{
		cache:   make(map[image.Image]*imageOpEntry),
		lru:     list.New(),
		maxSize: maxEntries,
	}
}

// Get returns the op for img, creating it on first use.
func (c *ImageOpCache) Get(img image.Image) paint.ImageOp {
	if entry, ok := c.cache[img]; ok {
		c.lru.MoveToFront(entry.element)
		return entry.op
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*imageOpEntry)
		delete(c.cache, old.src)
		c.lru.Remove(oldest)
		debug.Log(debug.OVERLAY, "ImageOpCache: evicted %dx%d", old.src.Bounds().Dx(), old.src.Bounds().Dy())
	}

	imgOp := paint.NewImageOp(img)
	imgOp.Filter = paint.FilterLinear
	entry := &imageOpEntry{src: img, op: imgOp}
	entry.element = c.lru.PushFront(entry)
	c.cache[img] = entry
	return imgOp
}

// Clear removes all entries from the cache.
func (c *ImageOpCache) Clear() {
	c.cache = make(map[image.Image]*imageOpEntry)
	c.lru = list.New()
	debug.Log(debug.OVERLAY, "ImageOpCache: cleared")
}

// Size returns the current number of cached ops.
func (c *ImageOpCache) Size() int {
	return len(c.cache)
}
