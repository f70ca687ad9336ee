package rules

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *RuleSet {
	a := rule(true, "^Assets$", "", `^Third\.Party$`)
	a.Tint = Color{R: 255, G: 64, B: 0, A: 200}
	a.ApplyToNonFolders = true
	a.NonFolderAlpha = 0.5

	b := rule(false, "Editor")
	b.OverrideImage = "icons/editor.png"

	return NewRuleSet(a, b, NewRule())
}

func TestCodecRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(f.String(), func(t *testing.T) {
			want := sampleSet()
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, want, f))

			got, err := Decode(&buf, f)
			require.NoError(t, err)
			require.Equal(t, want.Len(), got.Len())
			for i := range want.Rules() {
				w, g := want.At(i), got.At(i)
				assert.Equal(t, w.Tint, g.Tint)
				assert.Equal(t, w.OverrideImage, g.OverrideImage)
				assert.Equal(t, w.ApplyToChildren, g.ApplyToChildren)
				assert.Equal(t, w.ApplyToNonFolders, g.ApplyToNonFolders)
				assert.Equal(t, w.NonFolderAlpha, g.NonFolderAlpha)
				assert.Equal(t, w.Patterns, g.Patterns)
			}
			assert.Equal(t, want.Fingerprint(), got.Fingerprint())
		})
	}
}

func TestDecodeNormalizesPatterns(t *testing.T) {
	rs, err := Decode(bytes.NewBufferString(`{"rules":[{"tint":"#FFFFFFFF"}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, rs.At(0).Patterns)
}

func TestDecodeBadColor(t *testing.T) {
	_, err := Decode(bytes.NewBufferString(`{"rules":[{"tint":"blue"}]}`), FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("rules.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("/tmp/rules.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatFromPath("rules.ini")
	assert.Error(t, err)
}
