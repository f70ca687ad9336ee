// Package appearance derives and caches the image drawn for each rule.
package appearance

import (
	"errors"
	"fmt"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/pixel"
	"github.com/justyntemme/colorfolder/internal/rules"
)

var (
	// ErrMissingBaseImage means no base icon exists for the variant; the
	// row is drawn without decoration.
	ErrMissingBaseImage = errors.New("appearance: base image unavailable")
	// ErrPixelOperation wraps a failed clone, tint or decode.
	ErrPixelOperation = errors.New("appearance: pixel operation failed")
)

// BaseIcons supplies the untinted icon per variant.
type BaseIcons interface {
	Icon(v icons.Variant) (*pixel.Buffer, error)
}

// OverrideLoader resolves a rule's override image reference.
type OverrideLoader func(ref string) (*pixel.Buffer, error)

type key struct {
	index   int
	variant icons.Variant
}

// Cache maps (rule index, variant) to a tinted copy of the base icon. Keys
// carry only the rule position, so Reset must follow any rule edit.
// Not safe for concurrent use.
type Cache struct {
	entries   map[key]*pixel.Buffer
	overrides map[string]*pixel.Buffer
	load      OverrideLoader
}

// NewCache creates an empty cache. A nil loader reads override images from
// disk with pixel.Load.
func NewCache(load OverrideLoader) *Cache {
	if load == nil {
		load = pixel.Load
	}
	return &Cache{
		entries:   make(map[key]*pixel.Buffer),
		overrides: make(map[string]*pixel.Buffer),
		load:      load,
	}
}

// Image returns the image to draw for the rule at index. Override images
// are returned as is; otherwise the base icon for v is tinted on first use.
func (c *Cache) Image(index int, v icons.Variant, rule *rules.Rule, base BaseIcons) (*pixel.Buffer, error) {
	if rule.OverrideImage != "" {
		return c.override(rule.OverrideImage)
	}

	k := key{index: index, variant: v}
	if buf, ok := c.entries[k]; ok {
		if buf.Valid() {
			return buf, nil
		}
		debug.Log(debug.CACHE, "rule %d %s: cached image released, regenerating", index, v)
	}

	if base == nil {
		return nil, ErrMissingBaseImage
	}
	src, err := base.Icon(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingBaseImage, err)
	}
	if !src.Valid() {
		return nil, ErrMissingBaseImage
	}

	dst, err := src.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPixelOperation, err)
	}
	if err := dst.Tint(rule.Tint.NRGBA()); err != nil {
		dst.Release()
		return nil, fmt.Errorf("%w: tint rule %d: %w", ErrPixelOperation, index, err)
	}

	c.put(k, dst)
	debug.Log(debug.CACHE, "rule %d %s: tinted %s", index, v, rule.Tint)
	return dst, nil
}

// put stores buf, releasing whatever the slot held before.
func (c *Cache) put(k key, buf *pixel.Buffer) {
	if old, ok := c.entries[k]; ok && old != buf {
		old.Release()
	}
	c.entries[k] = buf
}

// override loads an override image once per reference.
func (c *Cache) override(ref string) (*pixel.Buffer, error) {
	if buf, ok := c.overrides[ref]; ok && buf.Valid() {
		return buf, nil
	}
	buf, err := c.load(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: override %q: %w", ErrPixelOperation, ref, err)
	}
	if !buf.Valid() {
		return nil, fmt.Errorf("%w: override %q: %w", ErrPixelOperation, ref, pixel.ErrReleased)
	}
	c.overrides[ref] = buf
	return buf, nil
}

// Len returns the number of tinted entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Reset releases every tinted entry. Override images belong to the loader
// and are only forgotten.
func (c *Cache) Reset() {
	for k, buf := range c.entries {
		buf.Release()
		delete(c.entries, k)
	}
	clear(c.overrides)
	debug.Log(debug.CACHE, "reset")
}
