// Package app is the colorfolder command line host. It owns everything the
// decoration core leaves to its host: loading settings, persisting rules,
// walking directories and producing output.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justyntemme/colorfolder/internal/config"
	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/decorate"
	"github.com/justyntemme/colorfolder/internal/icons"
	"github.com/justyntemme/colorfolder/internal/rules"
	"github.com/justyntemme/colorfolder/internal/store"
)

type globalFlags struct {
	configPath string
	dbPath     string
	verbose    bool
}

// Main runs the CLI and exits with a non-zero status on error.
func Main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "colorfolder:", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "colorfolder",
		Short: "Color folders in a file tree by path rules",
		Long: `colorfolder decorates file tree entries with a tint or a custom icon,
picked by the first rule whose regular expression matches the entry's name
(or, for rules that apply to children, any of its parent folders).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				debug.EnableAll()
			}
			debug.Log(debug.APP, "command %s", cmd.Name())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/colorfolder/config.json)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "rule database (overrides the config)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable all debug categories (debug builds)")

	root.AddCommand(
		newScanCommand(flags),
		newRenderCommand(flags),
		newViewCommand(flags),
		newRulesCommand(flags),
		newIconsCommand(flags),
		newConfigCommand(flags),
	)
	return root
}

// session is the state shared by one command invocation.
type session struct {
	cfg   config.Config
	db    *store.DB
	rules *rules.RuleSet
}

func openSession(flags *globalFlags) (*session, error) {
	m := config.NewManager(flags.configPath)
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := m.ParseError(); err != nil {
		debug.Warn(debug.APP, err, "config is invalid, using defaults")
	}
	cfg := m.Get()
	if flags.dbPath != "" {
		cfg.Database = flags.dbPath
	}

	db := store.NewDB()
	if err := db.Open(cfg.Database); err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database, err)
	}
	rs, err := db.LoadRuleSet()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &session{cfg: cfg, db: db, rules: rs}, nil
}

func (s *session) Close() {
	s.db.Close()
}

// save persists the rule set after an edit.
func (s *session) save() error {
	return s.db.SaveRuleSet(s.rules)
}

func (s *session) glyph() icons.Glyph {
	g := icons.DefaultGlyph()
	g.RowSize = s.cfg.Icons.RowSize
	g.GridSize = s.cfg.Icons.GridSize
	return g
}

func (s *session) iconSource() *icons.Source {
	return icons.NewSource(s.cfg.ScratchDir, s.glyph())
}

func (s *session) decorator() *decorate.Decorator {
	return decorate.New(s.rules, s.iconSource(), decorate.WithLayout(s.cfg.OverlayLayout()))
}
