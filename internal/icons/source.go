// Package icons derives the white base folder icons that rule tints are
// multiplied into, and persists them to a scratch directory so derivation
// happens once even across runs.
package icons

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/pixel"
)

// ErrNoStockIcon is returned when the host has no stock icon for a variant.
var ErrNoStockIcon = errors.New("icons: stock icon unavailable")

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// StockProvider supplies the host's own folder icons.
type StockProvider interface {
	StockIcon(v Variant) (*pixel.Buffer, error)
}

// Source lazily loads the base icons. It owns the returned buffers; callers
// that modify pixels must Clone first. Not safe for concurrent use.
type Source struct {
	dir    string
	stock  StockProvider
	loaded [len(Variants)]*pixel.Buffer
	failed [len(Variants)]error
}

// NewSource reads and writes scratch files under dir.
func NewSource(dir string, stock StockProvider) *Source {
	return &Source{dir: dir, stock: stock}
}

// Dir returns the scratch directory.
func (s *Source) Dir() string {
	return s.dir
}

// Path returns the scratch file for v.
func (s *Source) Path(v Variant) string {
	return filepath.Join(s.dir, v.fileName())
}

// Icon returns the base icon for v, loading the scratch file or deriving it
// from the stock icon on first use. A failure is remembered until Forget.
func (s *Source) Icon(v Variant) (*pixel.Buffer, error) {
	if v != Row && v != Grid {
		return nil, fmt.Errorf("icons: unknown variant %d", v)
	}
	if s.loaded[v].Valid() {
		return s.loaded[v], nil
	}
	if s.failed[v] != nil {
		return nil, s.failed[v]
	}

	buf, err := s.load(v)
	if err != nil {
		s.failed[v] = err
		return nil, err
	}
	s.loaded[v] = buf
	return buf, nil
}

// Forget drops loaded icons and remembered failures. Scratch files stay.
func (s *Source) Forget() {
	for i := range s.loaded {
		s.loaded[i].Release()
		s.loaded[i] = nil
		s.failed[i] = nil
	}
}

// Regenerate deletes the scratch files and derives both icons again.
func (s *Source) Regenerate() error {
	s.Forget()
	for _, v := range Variants {
		if err := os.Remove(s.Path(v)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	for _, v := range Variants {
		if _, err := s.Icon(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) load(v Variant) (*pixel.Buffer, error) {
	path := s.Path(v)
	buf, err := pixel.Load(path)
	if err == nil {
		debug.Log(debug.ICONS, "loaded %s icon from %s", v, path)
		return buf, nil
	}
	if !os.IsNotExist(err) {
		debug.Warn(debug.ICONS, err, "unreadable scratch icon, regenerating")
	}

	derived, err := s.derive(v)
	if err != nil {
		return nil, err
	}
	if err := derived.Save(path); err != nil {
		// The icon is still usable for this process.
		debug.Warn(debug.ICONS, err, "failed to persist scratch icon")
	} else {
		debug.Log(debug.ICONS, "derived %s icon into %s", v, path)
	}
	return derived, nil
}

// derive whitens the stock icon, keeping its alpha as the shape mask.
func (s *Source) derive(v Variant) (*pixel.Buffer, error) {
	if s.stock == nil {
		return nil, ErrNoStockIcon
	}
	stock, err := s.stock.StockIcon(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStockIcon, err)
	}
	if !stock.Valid() {
		return nil, ErrNoStockIcon
	}
	buf, err := stock.Clone()
	if err != nil {
		return nil, err
	}
	if err := buf.Recolor(white); err != nil {
		return nil, fmt.Errorf("icons: derive %s: %w", v, err)
	}
	return buf, nil
}
