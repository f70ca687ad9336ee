// Package rules holds the decoration rule model and the first-match-wins
// path matcher.
package rules

import (
	"slices"
	"strings"
)

// Rule decorates every entry whose name (or, with ApplyToChildren, any
// ancestor directory name) matches one of its patterns.
type Rule struct {
	Tint              Color
	OverrideImage     string // reference to an external image, empty when tinting
	ApplyToChildren   bool
	ApplyToNonFolders bool
	NonFolderAlpha    float32
	Patterns          []string

	derived *derivedPatterns
}

// derivedPatterns remembers the inputs the child patterns were built from.
type derivedPatterns struct {
	applyToChildren bool
	source          []string
	child           []string
}

// NewRule returns a white rule with a single empty pattern, ready for editing.
func NewRule() *Rule {
	return &Rule{
		Tint:           White,
		NonFolderAlpha: 0.25,
		Patterns:       []string{""},
	}
}

// Normalize restores the invariant that Patterns is never empty.
func (r *Rule) Normalize() {
	if len(r.Patterns) == 0 {
		r.Patterns = []string{""}
		r.derived = nil
	}
}

// SetPatterns replaces the pattern list.
func (r *Rule) SetPatterns(patterns ...string) {
	r.Patterns = append([]string(nil), patterns...)
	r.Normalize()
	r.derived = nil
}

// SetPattern edits a single pattern in place.
func (r *Rule) SetPattern(i int, pattern string) error {
	if i < 0 || i >= len(r.Patterns) {
		return ErrIndexOutOfRange
	}
	r.Patterns[i] = pattern
	r.derived = nil
	return nil
}

// AddPattern appends a pattern and returns its index.
func (r *Rule) AddPattern(pattern string) int {
	r.Patterns = append(r.Patterns, pattern)
	r.derived = nil
	return len(r.Patterns) - 1
}

// RemovePattern deletes a pattern. Removing the last one leaves an empty pattern.
func (r *Rule) RemovePattern(i int) error {
	if i < 0 || i >= len(r.Patterns) {
		return ErrIndexOutOfRange
	}
	r.Patterns = slices.Delete(r.Patterns, i, i+1)
	r.Normalize()
	r.derived = nil
	return nil
}

// SetApplyToChildren toggles child propagation.
func (r *Rule) SetApplyToChildren(on bool) {
	r.ApplyToChildren = on
	r.derived = nil
}

// ResetDerived drops the lazily computed child patterns.
func (r *Rule) ResetDerived() {
	r.derived = nil
}

// ChildPatterns returns one path-segment pattern per entry of Patterns, or
// nil when the rule does not apply to children. Patterns that reduce to
// nothing map to "".
func (r *Rule) ChildPatterns() []string {
	if r.derived != nil &&
		r.derived.applyToChildren == r.ApplyToChildren &&
		slices.Equal(r.derived.source, r.Patterns) {
		return r.derived.child
	}

	d := &derivedPatterns{
		applyToChildren: r.ApplyToChildren,
		source:          slices.Clone(r.Patterns),
	}
	if r.ApplyToChildren {
		d.child = make([]string, len(r.Patterns))
		for i, p := range r.Patterns {
			d.child[i] = childPattern(p)
		}
	}
	r.derived = d
	return d.child
}

// Clone returns a copy without derived state.
func (r *Rule) Clone() *Rule {
	c := *r
	c.Patterns = slices.Clone(r.Patterns)
	c.derived = nil
	return &c
}

// childPattern rewrites a filename pattern so it matches the same name as a
// whole segment of a "/"-wrapped path.
func childPattern(pattern string) string {
	root := strings.TrimPrefix(pattern, "^")
	if strings.HasSuffix(root, "$") && trailingBackslashes(root[:len(root)-1])%2 == 0 {
		root = root[:len(root)-1]
	}
	if root == "" {
		return ""
	}
	return "/(?:" + root + ")/"
}

// trailingBackslashes counts the backslashes ending s. An odd count escapes
// whatever follows.
func trailingBackslashes(s string) int {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '\\' {
		n++
	}
	return n
}
