package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(children bool, patterns ...string) *Rule {
	r := NewRule()
	r.ApplyToChildren = children
	r.SetPatterns(patterns...)
	return r
}

func TestMatchEmptyRuleSet(t *testing.T) {
	m := NewMatcher()
	res := m.Match("anything.txt", NewRuleSet())
	assert.False(t, res.Matched)
	assert.Equal(t, -1, res.Index)

	var nilSet *RuleSet
	assert.False(t, m.Match("anything.txt", nilSet).Matched)
}

func TestMatchFirstRuleWins(t *testing.T) {
	rs := NewRuleSet(
		rule(false, "^Scripts$"),
		rule(false, "", "^Art", "Scripts"),
		rule(false, "^Scripts$"),
	)
	m := NewMatcher()

	testCases := []struct {
		path    string
		index   int
		matched bool
	}{
		{"Assets/Scripts", 0, true},
		{"Assets/MoreScripts", 1, true},
		{"Assets/Artwork", 1, true},
		{"Assets/Audio", -1, false},
		{"Scripts", 0, true},
	}
	for _, tc := range testCases {
		res := m.Match(tc.path, rs)
		assert.Equal(t, tc.matched, res.Matched, tc.path)
		assert.Equal(t, tc.index, res.Index, tc.path)
	}
}

func TestMatchUsesBaseName(t *testing.T) {
	rs := NewRuleSet(rule(false, "^Project"))
	m := NewMatcher()
	assert.False(t, m.Match("Project/Assets", rs).Matched)
	assert.True(t, m.Match("Other/ProjectFiles", rs).Matched)
}

func TestMatchInsertBeforeChangesWinnerOnlyWhenMatching(t *testing.T) {
	rs := NewRuleSet(rule(false, "^Audio$"), rule(false, "^Scripts$"))
	m := NewMatcher()
	require.Equal(t, 1, m.Match("Assets/Scripts", rs).Index)

	require.NoError(t, rs.Insert(0, rule(false, "^Textures$")))
	assert.Equal(t, 2, m.Match("Assets/Scripts", rs).Index)

	require.NoError(t, rs.Insert(0, rule(false, "Script")))
	assert.Equal(t, 0, m.Match("Assets/Scripts", rs).Index)
}

func TestMatchApplyToChildren(t *testing.T) {
	m := NewMatcher()

	backslash := NewRuleSet(rule(true, `^a\\$`))
	assert.True(t, m.Match(`x/a\/y`, backslash).Matched, "escaped backslash before the anchor")

	withChildren := NewRuleSet(rule(true, "^Assets$"))
	assert.True(t, m.Match("Assets", withChildren).Matched)
	assert.True(t, m.Match("Project/Assets/Sub", withChildren).Matched)
	assert.True(t, m.Match("Assets/Sub/Deeper", withChildren).Matched)
	assert.False(t, m.Match("Project/AssetsOld/Sub", withChildren).Matched)

	without := NewRuleSet(rule(false, "^Assets$"))
	assert.True(t, m.Match("Assets", without).Matched)
	assert.False(t, m.Match("Project/Assets/Sub", without).Matched)
}

func TestMatchChildFormAppliesToNonFolderPaths(t *testing.T) {
	rs := NewRuleSet(rule(true, "^Editor$"))
	assert.True(t, NewMatcher().Match("Assets/Editor/Tool.cs", rs).Matched)
}

func TestMatchSkipsMalformedPatterns(t *testing.T) {
	rs := NewRuleSet(
		rule(true, "([unclosed", "^Never$"),
		rule(false, "^Scripts$"),
	)
	res := NewMatcher().Match("Assets/Scripts", rs)
	require.True(t, res.Matched)
	assert.Equal(t, 1, res.Index)
	require.NotEmpty(t, res.Skipped)

	first := res.Skipped[0]
	assert.Equal(t, 0, first.Rule)
	assert.Equal(t, 0, first.Pattern)
	assert.Equal(t, "([unclosed", first.Expr)
	assert.Error(t, first.Unwrap())
}

func TestMatchMalformedPatternIsMemoized(t *testing.T) {
	m := NewMatcher()
	rs := NewRuleSet(rule(false, "(?<"))
	m.Match("a", rs)
	m.Match("b", rs)
	assert.Len(t, m.compiled, 1)

	m.Reset()
	assert.Empty(t, m.compiled)
}

func TestMatchDotNetSyntax(t *testing.T) {
	// Lookbehind is accepted by the .NET dialect.
	rs := NewRuleSet(rule(false, `(?<=^Pre)fab$`))
	res := NewMatcher().Match("Assets/Prefab", rs)
	assert.True(t, res.Matched)
	assert.Empty(t, res.Skipped)
}

func TestChildPattern(t *testing.T) {
	testCases := []struct {
		pattern  string
		expected string
	}{
		{"^Assets$", "/(?:Assets)/"},
		{"Assets", "/(?:Assets)/"},
		{"^A|B$", "/(?:A|B)/"},
		{`^Price\$`, `/(?:Price\$)/`},
		{`^dir\\$`, `/(?:dir\\)/`},
		{`^dir\\\$`, `/(?:dir\\\$)/`},
		{"^$", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, childPattern(tc.pattern), tc.pattern)
	}
}

func TestChildPatternsInvalidation(t *testing.T) {
	r := rule(false, "^A$")
	assert.Nil(t, r.ChildPatterns())

	r.SetApplyToChildren(true)
	assert.Equal(t, []string{"/(?:A)/"}, r.ChildPatterns())

	r.AddPattern("^B$")
	assert.Equal(t, []string{"/(?:A)/", "/(?:B)/"}, r.ChildPatterns())

	// Direct field edits are picked up too.
	r.Patterns[0] = "^C$"
	assert.Equal(t, []string{"/(?:C)/", "/(?:B)/"}, r.ChildPatterns())

	r.ApplyToChildren = false
	assert.Nil(t, r.ChildPatterns())
}
