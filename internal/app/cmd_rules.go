package app

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/rules"
)

// ruleFlags are the editable rule fields shared by `rules add` and `rules set`.
type ruleFlags struct {
	tint       string
	override   string
	children   bool
	nonFolders bool
	alpha      float32
	insertAt   int
}

func (rf *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.tint, "tint", "t", "#FFFFFFFF", "tint color, #RRGGBB or #RRGGBBAA")
	cmd.Flags().StringVar(&rf.override, "override", "", "image drawn instead of the tinted icon")
	cmd.Flags().BoolVarP(&rf.children, "children", "c", false, "also decorate everything inside matching folders")
	cmd.Flags().BoolVar(&rf.nonFolders, "non-folders", false, "also decorate files")
	cmd.Flags().Float32Var(&rf.alpha, "alpha", 0.25, "tint opacity for files")
}

// apply copies the flags the user set onto r.
func (rf *ruleFlags) apply(cmd *cobra.Command, r *rules.Rule) error {
	f := cmd.Flags()
	if f.Changed("tint") {
		c, err := rules.ParseColor(rf.tint)
		if err != nil {
			return err
		}
		r.Tint = c
	}
	if f.Changed("override") {
		r.OverrideImage = rf.override
	}
	if f.Changed("children") {
		r.SetApplyToChildren(rf.children)
	}
	if f.Changed("non-folders") {
		r.ApplyToNonFolders = rf.nonFolders
	}
	if f.Changed("alpha") {
		if rf.alpha < 0 || rf.alpha > 1 {
			return fmt.Errorf("alpha %v out of range [0,1]", rf.alpha)
		}
		r.NonFolderAlpha = rf.alpha
	}
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func newRulesCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Edit the ordered rule list",
	}
	cmd.AddCommand(
		newRulesListCommand(flags),
		newRulesAddCommand(flags),
		newRulesRemoveCommand(flags),
		newRulesMoveCommand(flags, "up", (*rules.RuleSet).MoveUp),
		newRulesMoveCommand(flags, "down", (*rules.RuleSet).MoveDown),
		newRulesSetCommand(flags),
		newRulesPatternCommand(flags),
		newRulesExportCommand(flags),
		newRulesImportCommand(flags),
	)
	return cmd
}

// editRules opens a session, runs edit and saves the result.
func editRules(flags *globalFlags, out io.Writer, edit func(rs *rules.RuleSet) error) error {
	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := edit(s.rules); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	debug.Log(debug.RULES, "saved %d rules", s.rules.Len())
	listRules(out, s.rules)
	return nil
}

func listRules(w io.Writer, rs *rules.RuleSet) {
	if rs.Len() == 0 {
		fmt.Fprintln(w, dimStyle.Render("no rules"))
		return
	}
	for i, r := range rs.Rules() {
		fmt.Fprintln(w, describeRule(i, r))
	}
}

func newRulesListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the rules in match order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()
			listRules(cmd.OutOrStdout(), s.rules)
			return nil
		},
	}
}

func newRulesAddCommand(flags *globalFlags) *cobra.Command {
	rf := &ruleFlags{}
	cmd := &cobra.Command{
		Use:   "add [pattern...]",
		Short: "Append a rule (or insert it with --at)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := rules.NewRule()
			if len(args) > 0 {
				r.SetPatterns(args...)
			}
			if err := rf.apply(cmd, r); err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				if cmd.Flags().Changed("at") {
					return rs.Insert(rf.insertAt, r)
				}
				rs.Add(r)
				return nil
			})
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVar(&rf.insertAt, "at", 0, "insert position")
	return cmd
}

func newRulesRemoveCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a rule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				return rs.Remove(i)
			})
		},
	}
}

func newRulesMoveCommand(flags *globalFlags, name string, move func(*rules.RuleSet, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <index>",
		Short: "Move a rule " + name + " one place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				return move(rs, i)
			})
		},
	}
}

func newRulesSetCommand(flags *globalFlags) *cobra.Command {
	rf := &ruleFlags{}
	cmd := &cobra.Command{
		Use:   "set <index>",
		Short: "Change a rule's tint, override image or flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				r := rs.At(i)
				if r == nil {
					return rules.ErrIndexOutOfRange
				}
				return rf.apply(cmd, r)
			})
		},
	}
	rf.register(cmd)
	return cmd
}

func newRulesPatternCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Edit a rule's patterns",
	}
	add := &cobra.Command{
		Use:   "add <index> <pattern>",
		Short: "Append a pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				r := rs.At(i)
				if r == nil {
					return rules.ErrIndexOutOfRange
				}
				r.AddPattern(args[1])
				return nil
			})
		},
	}
	set := &cobra.Command{
		Use:   "set <index> <pattern-index> <pattern>",
		Short: "Replace a pattern",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			j, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				r := rs.At(i)
				if r == nil {
					return rules.ErrIndexOutOfRange
				}
				return r.SetPattern(j, args[2])
			})
		},
	}
	remove := &cobra.Command{
		Use:     "remove <index> <pattern-index>",
		Aliases: []string{"rm"},
		Short:   "Delete a pattern; a rule always keeps at least one",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			j, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return editRules(flags, cmd.OutOrStdout(), func(rs *rules.RuleSet) error {
				r := rs.At(i)
				if r == nil {
					return rules.ErrIndexOutOfRange
				}
				return r.RemovePattern(j)
			})
		},
	}
	cmd.AddCommand(add, set, remove)
	return cmd
}

func newRulesExportCommand(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the rules as JSON, YAML or TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 0 {
				f, err := rules.ParseFormat(format)
				if err != nil {
					return err
				}
				return rules.Encode(cmd.OutOrStdout(), s.rules, f)
			}

			f, err := formatFor(cmd, format, args[0])
			if err != nil {
				return err
			}
			out, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := rules.Encode(out, s.rules, f); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, yaml or toml")
	return cmd
}

func newRulesImportCommand(flags *globalFlags) *cobra.Command {
	var (
		format string
		add    bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace (or extend with --append) the rules from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(cmd, format, args[0])
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			imported, err := rules.Decode(in, f)
			in.Close()
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()
			if add {
				for _, r := range imported.Rules() {
					s.rules.Add(r)
				}
			} else {
				s.rules = imported
			}
			if err := s.save(); err != nil {
				return err
			}
			listRules(cmd.OutOrStdout(), s.rules)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or toml (default from the file extension)")
	cmd.Flags().BoolVar(&add, "append", false, "keep existing rules and append the imported ones")
	return cmd
}

// formatFor honours an explicit --format, then falls back to the extension.
func formatFor(cmd *cobra.Command, format, path string) (rules.Format, error) {
	if cmd.Flags().Changed("format") {
		return rules.ParseFormat(format)
	}
	return rules.FormatFromPath(path)
}
