package app

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/fs"
	"github.com/justyntemme/colorfolder/internal/pixel"
)

func newRenderCommand(flags *globalFlags) *cobra.Command {
	var (
		output string
		grid   bool
		depth  int
		width  int
	)
	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Draw a decorated listing of a directory to PNG",
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
			if !cmd.Flags().Changed("width") {
				width = s.cfg.Render.Width
			}
			if grid {
				depth = 0
			}
			entries, err := fs.Walk(cmd.Context(), dir, fs.Options{MaxDepth: depth, ShowHidden: s.cfg.Render.ShowHidden})
			if err != nil {
				return err
			}

			l := &listing{d: s.decorator(), glyph: s.glyph(), width: width, cell: s.cfg.Render.GridCell}
			var img *image.NRGBA
			if grid {
				img = l.grid(entries)
			} else {
				img = l.rows(entries)
			}
			if err := pixel.FromImage(img).Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d entries)\n", output, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "colorfolder.png", "PNG file to write")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw large icons instead of a tree list")
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "maximum folder depth for the tree list")
	cmd.Flags().IntVarP(&width, "width", "w", 480, "image width in pixels")
	return cmd
}
