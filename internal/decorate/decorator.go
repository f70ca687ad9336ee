// Package decorate is the entry point a host calls once per visible row.
// It joins the rule set, matcher, appearance cache, base icons and row
// layout into one explicitly owned context.
package decorate

import (
	"fmt"

	"github.com/justyntemme/colorfolder/internal/appearance"
	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/overlay"
	"github.com/justyntemme/colorfolder/internal/rules"
)

// Outcome reports what happened for one row. Err is set when a matched
// rule could not be drawn; the row is then left undecorated.
type Outcome struct {
	Match rules.MatchResult
	Plan  overlay.Plan
	Err   error
}

// Decorated reports whether anything was drawn.
func (o Outcome) Decorated() bool {
	return !o.Plan.Empty()
}

// Option configures a Decorator.
type Option func(*Decorator)

// WithLayout sets the host row geometry and background color.
func WithLayout(l overlay.Layout) Option {
	return func(d *Decorator) { d.layout = l }
}

// WithOverrideLoader sets how override image references are resolved.
func WithOverrideLoader(load appearance.OverrideLoader) Option {
	return func(d *Decorator) { d.cache = appearance.NewCache(load) }
}

// Decorator is single-threaded: the host must call it from its paint pass only.
type Decorator struct {
	rules   *rules.RuleSet
	base    appearance.BaseIcons
	matcher *rules.Matcher
	cache   *appearance.Cache
	layout  overlay.Layout

	fingerprint uint64
	warned      map[string]bool
}

// New creates a decorator over rs. base supplies the untinted icons.
func New(rs *rules.RuleSet, base appearance.BaseIcons, opts ...Option) *Decorator {
	if rs == nil {
		rs = rules.NewRuleSet()
	}
	d := &Decorator{
		rules:   rs,
		base:    base,
		matcher: rules.NewMatcher(),
		cache:   appearance.NewCache(nil),
		layout:  overlay.DefaultLayout(),
		warned:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.fingerprint = rs.Fingerprint()
	return d
}

// Rules returns the rule set being rendered.
func (d *Decorator) Rules() *rules.RuleSet {
	return d.rules
}

// Layout returns the row geometry in use.
func (d *Decorator) Layout() overlay.Layout {
	return d.layout
}

// SetRules swaps the rule set and drops everything derived from the old one.
func (d *Decorator) SetRules(rs *rules.RuleSet) {
	if rs == nil {
		rs = rules.NewRuleSet()
	}
	d.rules = rs
	d.Reset()
}

// Reset drops cached images, derived child patterns and compiled patterns.
// Hosts call it after editing any rule; Render also calls it when it sees
// the rule content change.
func (d *Decorator) Reset() {
	d.cache.Reset()
	d.rules.ResetDerived()
	d.matcher.Reset()
	d.warned = make(map[string]bool)
	d.fingerprint = d.rules.Fingerprint()
	debug.Log(debug.RULES, "reset: %d rules", d.rules.Len())
}

// sync resets when rule content changed since the last reset.
func (d *Decorator) sync() {
	if fp := d.rules.Fingerprint(); fp != d.fingerprint {
		debug.Log(debug.RULES, "rule content changed (%x -> %x)", d.fingerprint, fp)
		d.Reset()
	}
}

// Plan matches path and resolves the draw calls for its row without drawing.
func (d *Decorator) Plan(path string, isFolder bool, row overlay.Rect) Outcome {
	d.sync()

	match := d.matcher.Match(path, d.rules)
	for _, skipped := range match.Skipped {
		debug.Log(debug.RULES, "skipped pattern: %v", skipped)
	}
	if !match.Matched {
		return Outcome{Match: match}
	}

	rule := d.rules.At(match.Index)
	plan := overlay.Compute(match, rule, row, isFolder, d.layout)
	if !plan.NeedsImage() {
		return Outcome{Match: match, Plan: plan}
	}

	img, err := d.cache.Image(match.Index, plan.Variant, rule, d.base)
	if err != nil {
		d.warn(match.Index, plan, err)
		return Outcome{Match: match, Plan: plan.Resolve(nil), Err: err}
	}
	return Outcome{Match: match, Plan: plan.Resolve(img.Image())}
}

// Render plans the row and issues its draw calls on c.
func (d *Decorator) Render(path string, isFolder bool, row overlay.Rect, c overlay.Canvas) Outcome {
	out := d.Plan(path, isFolder, row)
	out.Plan.Execute(c)
	return out
}

// warn logs an image failure once per rule and variant until the next reset.
func (d *Decorator) warn(index int, plan overlay.Plan, err error) {
	k := fmt.Sprintf("%d/%s", index, plan.Variant)
	if d.warned[k] {
		return
	}
	d.warned[k] = true
	debug.Warn(debug.CACHE, err, fmt.Sprintf("rule %d: no %s image, drawing row undecorated", index, plan.Variant))
}
