//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// This is the release version: category logging is a no-op, Warn still logs.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP         Category = "APP"
	RULES       Category = "RULES"
	CACHE       Category = "CACHE"
	ICONS       Category = "ICONS"
	OVERLAY     Category = "OVERLAY"
	STORE       Category = "STORE"
	FS          Category = "FS"
	RULES_MATCH Category = "RULES_MATCH"
)

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// Enable is a no-op in release builds
func Enable(cat Category) {}

// Disable is a no-op in release builds
func Disable(cat Category) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }

// EnableAll is a no-op in release builds
func EnableAll() {}
