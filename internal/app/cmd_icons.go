package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/icons"
)

func newIconsCommand(flags *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Derive the white base icons into the scratch directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			src := s.iconSource()
			if force {
				if err := src.Regenerate(); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, v := range icons.Variants {
				buf, err := src.Icon(v)
				if err != nil {
					fmt.Fprintf(out, "%-4s %s\n", v, warnStyle.Render(err.Error()))
					continue
				}
				state := "cached"
				if info, err := os.Stat(src.Path(v)); err == nil {
					state = info.ModTime().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "%-4s %dx%d %s %s\n", v, buf.Width(), buf.Height(), src.Path(v), dimStyle.Render(state))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete and re-derive existing icons")
	return cmd
}
