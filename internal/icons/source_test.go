package icons

import (
	"errors"
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/colorfolder/internal/pixel"
)

type countingStock struct {
	calls int
	err   error
}

func (c *countingStock) StockIcon(v Variant) (*pixel.Buffer, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	size := 4
	if v == Grid {
		size = 8
	}
	b := pixel.New(size, size)
	b.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	return b, nil
}

func TestIconDerivesWhiteAndPersists(t *testing.T) {
	dir := t.TempDir()
	stock := &countingStock{}
	s := NewSource(dir, stock)

	icon, err := s.Icon(Row)
	require.NoError(t, err)
	assert.Equal(t, 4, icon.Width())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, icon.At(1, 1))
	assert.Equal(t, uint8(0), icon.At(0, 0).A)
	assert.FileExists(t, s.Path(Row))

	// Second call is served from memory.
	_, err = s.Icon(Row)
	require.NoError(t, err)
	assert.Equal(t, 1, stock.calls)

	grid, err := s.Icon(Grid)
	require.NoError(t, err)
	assert.Equal(t, 8, grid.Width())
	assert.Equal(t, 2, stock.calls)
}

func TestIconLoadsScratchFileInNewProcess(t *testing.T) {
	dir := t.TempDir()
	first := NewSource(dir, &countingStock{})
	want, err := first.Icon(Grid)
	require.NoError(t, err)

	stock := &countingStock{}
	second := NewSource(dir, stock)
	got, err := second.Icon(Grid)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.calls)
	assert.Equal(t, want.Image().Pix, got.Image().Pix)
}

func TestIconRegeneratesCorruptScratchFile(t *testing.T) {
	dir := t.TempDir()
	stock := &countingStock{}
	s := NewSource(dir, stock)
	require.NoError(t, os.WriteFile(s.Path(Row), []byte("not a png"), 0o644))

	icon, err := s.Icon(Row)
	require.NoError(t, err)
	assert.Equal(t, 4, icon.Width())
	assert.Equal(t, 1, stock.calls)
}

func TestIconMissingStock(t *testing.T) {
	stock := &countingStock{err: errors.New("no such icon")}
	s := NewSource(t.TempDir(), stock)

	_, err := s.Icon(Row)
	assert.ErrorIs(t, err, ErrNoStockIcon)

	// The failure is remembered.
	_, err = s.Icon(Row)
	assert.ErrorIs(t, err, ErrNoStockIcon)
	assert.Equal(t, 1, stock.calls)

	s.Forget()
	_, err = s.Icon(Row)
	assert.Error(t, err)
	assert.Equal(t, 2, stock.calls)

	_, err = NewSource(t.TempDir(), nil).Icon(Grid)
	assert.ErrorIs(t, err, ErrNoStockIcon)
}

func TestRegenerate(t *testing.T) {
	stock := &countingStock{}
	s := NewSource(t.TempDir(), stock)
	_, err := s.Icon(Row)
	require.NoError(t, err)

	require.NoError(t, s.Regenerate())
	assert.Equal(t, 3, stock.calls)
	assert.FileExists(t, s.Path(Row))
	assert.FileExists(t, s.Path(Grid))
}

func TestGlyphFolder(t *testing.T) {
	g := DefaultGlyph()
	row, err := g.StockIcon(Row)
	require.NoError(t, err)
	assert.Equal(t, 16, row.Width())

	grid, err := g.StockIcon(Grid)
	require.NoError(t, err)
	assert.Equal(t, 64, grid.Width())
	assert.Equal(t, g.Inner, grid.At(32, 40))
	assert.Equal(t, uint8(0), grid.At(0, 0).A)

	_, err = Glyph{}.StockIcon(Row)
	assert.ErrorIs(t, err, ErrNoStockIcon)
}
