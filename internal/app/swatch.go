package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/colorfolder/internal/rules"
)

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC3545"))
)

// swatch renders a colored block for a rule.
func swatch(r *rules.Rule) string {
	if r.OverrideImage != "" {
		return "▣"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(r.Tint.Hex())).Render("■")
}

// describeRule renders one line of `rules list`.
func describeRule(i int, r *rules.Rule) string {
	var flags []string
	if r.ApplyToChildren {
		flags = append(flags, "children")
	}
	if r.ApplyToNonFolders {
		flags = append(flags, fmt.Sprintf("non-folders@%.2f", r.NonFolderAlpha))
	}
	if r.OverrideImage != "" {
		flags = append(flags, "override="+r.OverrideImage)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", boldStyle.Render(fmt.Sprintf("%2d", i)), swatch(r), r.Tint)
	if len(flags) > 0 {
		fmt.Fprintf(&b, " %s", dimStyle.Render("["+strings.Join(flags, ", ")+"]"))
	}
	for j, p := range r.Patterns {
		if p == "" {
			p = dimStyle.Render("(empty)")
		}
		fmt.Fprintf(&b, "\n     %d: %s", j, p)
	}
	return b.String()
}
