// Package store persists the rule set in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/rules"
)

type DB struct {
	conn *sql.DB
}

func NewDB() *DB {
	return &DB{}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return err
	}

	// Schema - one row per rule, position is precedence
	rulesQuery := `
	CREATE TABLE IF NOT EXISTS rules (
		position INTEGER PRIMARY KEY,
		tint TEXT NOT NULL,
		override_image TEXT NOT NULL DEFAULT '',
		apply_children INTEGER NOT NULL DEFAULT 0,
		apply_non_folders INTEGER NOT NULL DEFAULT 0,
		non_folder_alpha REAL NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(rulesQuery); err != nil {
		db.Close()
		return err
	}

	// Schema - patterns in declared order
	patternsQuery := `
	CREATE TABLE IF NOT EXISTS patterns (
		rule_position INTEGER NOT NULL REFERENCES rules(position) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		pattern TEXT NOT NULL,
		PRIMARY KEY (rule_position, position)
	);
	`
	if _, err := db.Exec(patternsQuery); err != nil {
		db.Close()
		return err
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

// LoadRuleSet reads every rule in precedence order.
func (d *DB) LoadRuleSet() (*rules.RuleSet, error) {
	rows, err := d.conn.Query(`SELECT position, tint, override_image, apply_children, apply_non_folders, non_folder_alpha
		FROM rules ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	defer rows.Close()

	var positions []int
	var loaded []*rules.Rule
	for rows.Next() {
		var (
			pos      int
			tint     string
			r        rules.Rule
			children int
			nonFold  int
		)
		if err := rows.Scan(&pos, &tint, &r.OverrideImage, &children, &nonFold, &r.NonFolderAlpha); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if err := r.Tint.UnmarshalText([]byte(tint)); err != nil {
			return nil, fmt.Errorf("rule %d: %w", pos, err)
		}
		r.ApplyToChildren = children != 0
		r.ApplyToNonFolders = nonFold != 0
		positions = append(positions, pos)
		loaded = append(loaded, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i, pos := range positions {
		patterns, err := d.loadPatterns(pos)
		if err != nil {
			return nil, err
		}
		loaded[i].Patterns = patterns
	}

	debug.Log(debug.STORE, "loaded %d rules", len(loaded))
	return rules.NewRuleSet(loaded...), nil
}

func (d *DB) loadPatterns(rulePos int) ([]string, error) {
	rows, err := d.conn.Query("SELECT pattern FROM patterns WHERE rule_position = ? ORDER BY position ASC", rulePos)
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}
	defer rows.Close()

	var patterns []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// SaveRuleSet replaces the stored rules with rs in one transaction.
func (d *DB) SaveRuleSet(rs *rules.RuleSet) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM patterns"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM rules"); err != nil {
		return err
	}

	for i, r := range rs.Rules() {
		_, err := tx.Exec(`INSERT INTO rules (position, tint, override_image, apply_children, apply_non_folders, non_folder_alpha)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.Tint.String(), r.OverrideImage, boolInt(r.ApplyToChildren), boolInt(r.ApplyToNonFolders), r.NonFolderAlpha)
		if err != nil {
			return fmt.Errorf("save rule %d: %w", i, err)
		}
		for j, p := range r.Patterns {
			if _, err := tx.Exec("INSERT INTO patterns (rule_position, position, pattern) VALUES (?, ?, ?)", i, j, p); err != nil {
				return fmt.Errorf("save rule %d pattern %d: %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved %d rules", rs.Len())
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}
