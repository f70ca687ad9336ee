package ui

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/colorfolder/internal/decorate"
	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/rules"
)

func testEntries() []fs.Entry {
	return []fs.Entry{
		{Name: "docs", Rel: "proj/docs", IsDir: true},
		{Name: "src", Rel: "proj/src", IsDir: true},
		{Name: "a.go", Rel: "proj/src/a.go", Depth: 1},
	}
}

func layoutViewer(t *testing.T, rs *rules.RuleSet, scale float32) *Viewer {
	t.Helper()
	glyph := icons.DefaultGlyph()
	d := decorate.New(rs, icons.NewSource(t.TempDir(), glyph))
	v := NewViewer(d, glyph, testEntries())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: scale, PxPerSp: scale},
		Constraints: layout.Exact(image.Pt(300, 200)),
	}
	v.Layout(gtx)
	return v
}

func TestViewerDrawsStockIconsOnly(t *testing.T) {
	v := layoutViewer(t, rules.NewRuleSet(), 1)
	assert.Equal(t, 2, v.images.Size(), "folder and file stock icons")
}

func TestViewerDecoratesMatchingRows(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
	}{
		{"1x", 1},
		{"2x", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rules.NewRule()
			r.SetPatterns("^src$")
			r.Tint = rules.Color{R: 255, A: 255}

			v := layoutViewer(t, rules.NewRuleSet(r), tt.scale)
			assert.Equal(t, 3, v.images.Size(), "stock icons plus the tinted Row icon")
		})
	}
}
