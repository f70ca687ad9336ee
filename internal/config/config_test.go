package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/overlay"
	"github.com/justyntemme/colorfolder/internal/rules"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorfolder", "config.json")
	m := NewManager(path)
	require.NoError(t, m.Load())
	assert.FileExists(t, path)
	assert.NoError(t, m.ParseError())

	cfg := m.Get()
	assert.Equal(t, float32(16), cfg.Layout.RowHeight)
	assert.Equal(t, float32(14), cfg.Layout.TwoColumnRightX)
	assert.Equal(t, 64, cfg.Icons.GridSize)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"layout":{"rowHeight":20},"background":"#102030FF"}`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	cfg := m.Get()
	assert.Equal(t, float32(20), cfg.Layout.RowHeight)
	assert.Equal(t, rules.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}, cfg.Background)
	assert.Equal(t, 16, cfg.Icons.RowSize)

	l := cfg.OverlayLayout()
	assert.Equal(t, icons.Row, l.Variant(overlay.Rect{W: 100, H: 20}))
}

func TestLoadParseErrorFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	assert.Error(t, m.ParseError())
	assert.Equal(t, *DefaultConfig(), m.Get())
}

func TestSettersPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManager(path)
	require.NoError(t, m.Load())
	require.NoError(t, m.SetBackground(rules.Color{R: 1, G: 2, B: 3, A: 4}))
	require.NoError(t, m.SetLayout(LayoutConfig{RowHeight: 18, TwoColumnRightX: 10}))
	require.NoError(t, m.SetScratchDir("/tmp/cf"))

	again := NewManager(path)
	require.NoError(t, again.Load())
	cfg := again.Get()
	assert.Equal(t, rules.Color{R: 1, G: 2, B: 3, A: 4}, cfg.Background)
	assert.Equal(t, float32(18), cfg.Layout.RowHeight)
	assert.Equal(t, "/tmp/cf", cfg.ScratchDir)
}

func TestGenerateConfigBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	backup, err := GenerateConfig(path)
	require.NoError(t, err)
	assert.Empty(t, backup)

	backup, err = GenerateConfig(path)
	require.NoError(t, err)
	assert.FileExists(t, backup)
}
