package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/overlay"
	"github.com/justyntemme/colorfolder/internal/rules"
)

func newScanCommand(flags *globalFlags) *cobra.Command {
	var depth int
	var hidden bool
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List a directory tree with the rule matching each entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if !cmd.Flags().Changed("depth") {
				depth = s.cfg.Render.MaxDepth
			}
			if !cmd.Flags().Changed("hidden") {
				hidden = s.cfg.Render.ShowHidden
			}
			entries, err := fs.Walk(cmd.Context(), dir, fs.Options{MaxDepth: depth, ShowHidden: hidden})
			if err != nil {
				return err
			}
			return scan(cmd.OutOrStdout(), s, entries)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "maximum folder depth, negative for unlimited")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include dotfiles")
	return cmd
}

func scan(w io.Writer, s *session, entries []fs.Entry) error {
	d := s.decorator()
	layout := d.Layout()
	skipped := map[string]*rules.PatternError{}

	for _, e := range entries {
		row := overlay.Rect{X: 16 + float32(e.Depth)*14, W: 200, H: layout.RowHeight}
		out := d.Plan(e.Rel, e.IsDir, row)
		for _, p := range out.Match.Skipped {
			skipped[p.Expr] = p
		}

		name := e.Name
		if e.IsDir {
			name += "/"
		}
		line := strings.Repeat("  ", e.Depth) + name
		switch {
		case !out.Match.Matched:
			fmt.Fprintln(w, line)
		case out.Err != nil:
			fmt.Fprintf(w, "%s  %s\n", line, warnStyle.Render(fmt.Sprintf("rule %d: %v", out.Match.Index, out.Err)))
		case !out.Decorated():
			fmt.Fprintf(w, "%s  %s\n", line, dimStyle.Render(fmt.Sprintf("rule %d (not drawn)", out.Match.Index)))
		default:
			r := d.Rules().At(out.Match.Index)
			fmt.Fprintf(w, "%s  %s %s\n", line, swatch(r), dimStyle.Render(fmt.Sprintf("rule %d", out.Match.Index)))
		}
	}

	for _, p := range skipped {
		fmt.Fprintln(w, warnStyle.Render("skipped "+p.Error()))
	}
	return nil
}
