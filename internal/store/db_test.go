package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/colorfolder/internal/rules"
)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "colorfolder.db")
	db := NewDB()
	require.NoError(t, db.Open(path))
	t.Cleanup(db.Close)
	return db, path
}

func TestEmptyDatabase(t *testing.T) {
	db, _ := openTemp(t)
	rs, err := db.LoadRuleSet()
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
}

func TestRuleSetRoundTrip(t *testing.T) {
	db, path := openTemp(t)

	a := rules.NewRule()
	a.Tint = rules.Color{R: 12, G: 34, B: 56, A: 78}
	a.ApplyToChildren = true
	a.SetPatterns("^Assets$", "", `\.meta$`)

	b := rules.NewRule()
	b.OverrideImage = "icons/plugins.png"
	b.ApplyToNonFolders = true
	b.NonFolderAlpha = 0.75

	want := rules.NewRuleSet(a, b, rules.NewRule())
	require.NoError(t, db.SaveRuleSet(want))

	// Reopen to make sure it hit the disk.
	db.Close()
	reopened := NewDB()
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()

	got, err := reopened.LoadRuleSet()
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.Fingerprint(), got.Fingerprint())
	assert.Equal(t, []string{"^Assets$", "", `\.meta$`}, got.At(0).Patterns)
	assert.Equal(t, "icons/plugins.png", got.At(1).OverrideImage)
	assert.Equal(t, float32(0.75), got.At(1).NonFolderAlpha)
}

func TestSaveReplacesPreviousOrder(t *testing.T) {
	db, _ := openTemp(t)

	first := rules.NewRule()
	first.SetPatterns("first")
	second := rules.NewRule()
	second.SetPatterns("second", "2")
	rs := rules.NewRuleSet(first, second)
	require.NoError(t, db.SaveRuleSet(rs))

	require.NoError(t, rs.MoveUp(1))
	require.NoError(t, db.SaveRuleSet(rs))

	got, err := db.LoadRuleSet()
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"second", "2"}, got.At(0).Patterns)
	assert.Equal(t, []string{"first"}, got.At(1).Patterns)
}
