package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/config"
	"github.com/justyntemme/colorfolder/internal/rules"
)

func newConfigCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or reset the settings file",
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewManager(flags.configPath).Path())
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file, backing up any existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.NewManager(flags.configPath).Path()
			backup, err := config.GenerateConfig(p)
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "backed up %s\n", backup)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			return nil
		},
	}

	background := &cobra.Command{
		Use:   "background <color>",
		Short: "Set the color that masks host icons under override images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rules.ParseColor(args[0])
			if err != nil {
				return err
			}
			m := config.NewManager(flags.configPath)
			if err := m.Load(); err != nil {
				return err
			}
			if err := m.SetBackground(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "background %s\n", c)
			return nil
		},
	}

	cmd.AddCommand(path, initCmd, background)
	return cmd
}
