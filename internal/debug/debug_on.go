//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable category logging.
package debug

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP     Category = "APP"     // CLI host orchestration
	RULES   Category = "RULES"   // Rule set edits and matching
	CACHE   Category = "CACHE"   // Appearance cache hits, misses, resets
	ICONS   Category = "ICONS"   // Base icon derivation and scratch files
	OVERLAY Category = "OVERLAY" // Draw plan construction
	STORE   Category = "STORE"   // Database operations
	FS      Category = "FS"      // Directory walking

	// Verbose, one line per row
	RULES_MATCH Category = "RULES_MATCH"
)

var (
	enabledCategories = map[Category]bool{
		APP:     true,
		RULES:   true,
		CACHE:   true,
		ICONS:   true,
		OVERLAY: true,
		STORE:   true,
		FS:      true,

		RULES_MATCH: false,
	}
	categoryMu sync.RWMutex
)

func init() {
	// Format: COLORFOLDER_DEBUG=RULES,CACHE or COLORFOLDER_DEBUG=all or COLORFOLDER_DEBUG=none
	if env := os.Getenv("COLORFOLDER_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				enabledCategories[Category(strings.TrimSpace(cat))] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	logger.Debug().Str("category", string(cat)).Msg(fmt.Sprintf(format, args...))
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}
