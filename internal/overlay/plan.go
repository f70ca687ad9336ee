// Package overlay turns a rule match into an ordered list of draw calls
// positioned over the host's own row icon.
package overlay

import (
	"image"
	"image/color"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/rules"
)

// ScaleMode controls how an image is fitted into its rectangle.
type ScaleMode int

const (
	StretchToFill ScaleMode = iota
	ScaleToFit
)

// StepKind distinguishes draw steps.
type StepKind int

const (
	FillStep StepKind = iota
	ImageStep
)

// Step is a single draw call.
type Step struct {
	Kind  StepKind
	Rect  Rect
	Color color.NRGBA // FillStep
	Image image.Image // ImageStep, set by Resolve
	Mode  ScaleMode
}

// Plan is the ordered draw calls for one row. The zero Plan draws nothing.
type Plan struct {
	Variant icons.Variant
	Steps   []Step
}

// Empty reports whether the plan draws nothing.
func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

// NeedsImage reports whether an image step is waiting for Resolve.
func (p Plan) NeedsImage() bool {
	for _, s := range p.Steps {
		if s.Kind == ImageStep && s.Image == nil {
			return true
		}
	}
	return false
}

// Resolve attaches img to the image step. A nil image empties the plan:
// without the icon there is nothing worth masking.
func (p Plan) Resolve(img image.Image) Plan {
	if img == nil {
		return Plan{Variant: p.Variant}
	}
	steps := make([]Step, len(p.Steps))
	copy(steps, p.Steps)
	for i := range steps {
		if steps[i].Kind == ImageStep {
			steps[i].Image = img
		}
	}
	return Plan{Variant: p.Variant, Steps: steps}
}

// Compute builds the plan for a row. rule is the matched rule and is
// ignored when nothing matched.
func Compute(match rules.MatchResult, rule *rules.Rule, row Rect, isFolder bool, l Layout) Plan {
	if !match.Matched || rule == nil || row.Empty() {
		return Plan{}
	}

	if !isFolder {
		if !rule.ApplyToNonFolders {
			return Plan{}
		}
		return Plan{
			Variant: l.Variant(row),
			Steps: []Step{{
				Kind:  FillStep,
				Rect:  row,
				Color: rule.Tint.WithAlpha(rule.NonFolderAlpha),
			}},
		}
	}

	v := l.Variant(row)
	dst := l.IconRect(row, v)
	plan := Plan{Variant: v}
	if rule.OverrideImage != "" {
		plan.Steps = append(plan.Steps, Step{Kind: FillStep, Rect: dst, Color: l.Background})
	}
	plan.Steps = append(plan.Steps, Step{Kind: ImageStep, Rect: dst, Mode: StretchToFill})

	debug.Log(debug.OVERLAY, "rule %d %s: row %+v -> %+v", match.Index, v, row, dst)
	return plan
}

// Canvas receives draw calls.
type Canvas interface {
	Fill(r Rect, c color.NRGBA)
	DrawImage(r Rect, img image.Image, mode ScaleMode)
}

// Execute issues the plan's draw calls in order. Image steps without an
// image are skipped.
func (p Plan) Execute(c Canvas) {
	for _, s := range p.Steps {
		switch s.Kind {
		case FillStep:
			c.Fill(s.Rect, s.Color)
		case ImageStep:
			if s.Image != nil {
				c.DrawImage(s.Rect, s.Image, s.Mode)
			}
		}
	}
}
