package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/ui"
)

func newViewCommand(flags *globalFlags) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "view [dir]",
		Short: "Open a window listing a directory with its decorations",
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

			if !cmd.Flags().Changed("depth") {
				depth = s.cfg.Render.MaxDepth
			}
			entries, err := fs.Walk(cmd.Context(), dir, fs.Options{MaxDepth: depth, ShowHidden: s.cfg.Render.ShowHidden})
			if err != nil {
				s.Close()
				return err
			}

			abs, _ := filepath.Abs(dir)
			v := ui.NewViewer(s.decorator(), s.glyph(), entries)
			go func() {
				w := new(app.Window)
				w.Option(
					app.Title("colorfolder - "+abs),
					app.Size(unit.Dp(float32(s.cfg.Render.Width)), unit.Dp(640)),
				)
				err := v.Run(w)
				s.Close()
				if err != nil {
					fmt.Fprintln(os.Stderr, "colorfolder:", err)
					os.Exit(1)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "maximum folder depth, negative for unlimited")
	return cmd
}
