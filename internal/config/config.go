package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	"github.com/justyntemme/colorfolder/internal/debug"
	"github.com/justyntemme/colorfolder/internal/overlay"
	"github.com/justyntemme/colorfolder/internal/rules"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Layout     LayoutConfig `json:"layout"`
	Background rules.Color  `json:"background"` // masks the host icon under override images
	ScratchDir string       `json:"scratchDir"` // derived base icons, safe to delete
	Database   string       `json:"database"`
	Icons      IconsConfig  `json:"icons"`
	Render     RenderConfig `json:"render"`
}

// LayoutConfig describes the host's row geometry
type LayoutConfig struct {
	RowHeight       float32 `json:"rowHeight"`
	TwoColumnRightX float32 `json:"twoColumnRightX"`
}

// IconsConfig holds the stock icon sizes per variant
type IconsConfig struct {
	RowSize  int `json:"rowSize"`
	GridSize int `json:"gridSize"`
}

// RenderConfig holds settings for rendered listings
type RenderConfig struct {
	Width      int  `json:"width"`
	GridCell   int  `json:"gridCell"`
	MaxDepth   int  `json:"maxDepth"`
	ShowHidden bool `json:"showHidden"`
}

// OverlayLayout converts the layout settings for the overlay renderer.
func (c Config) OverlayLayout() overlay.Layout {
	l := overlay.DefaultLayout()
	if c.Layout.RowHeight > 0 {
		l.RowHeight = c.Layout.RowHeight
	}
	l.TwoColumnRightX = c.Layout.TwoColumnRightX
	l.Background = c.Background.NRGBA()
	return l
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a configuration manager for path, or ConfigPath()
// when path is empty
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	l := overlay.DefaultLayout()
	return &Config{
		Layout: LayoutConfig{
			RowHeight:       l.RowHeight,
			TwoColumnRightX: l.TwoColumnRightX,
		},
		Background: rules.Color(l.Background),
		ScratchDir: filepath.Join(xdg.CacheHome, "colorfolder"),
		Database:   filepath.Join(xdg.DataHome, "colorfolder", "rules.db"),
		Icons: IconsConfig{
			RowSize:  16,
			GridSize: 64,
		},
		Render: RenderConfig{
			Width:    480,
			GridCell: 64,
			MaxDepth: 3,
		},
	}
}

// ConfigPath returns the config file path: $XDG_CONFIG_HOME/colorfolder/config.json
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "colorfolder", "config.json")
}

// Path returns the file the manager reads and writes
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		debug.Warn(debug.APP, err, "config: failed to create directory")
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.APP, "config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			return saveErr
		}
		return nil
	}
	if err != nil {
		return err
	}

	// Missing keys keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		debug.Warn(debug.APP, err, "config: JSON parse error, using defaults")
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	debug.Log(debug.APP, "config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetBackground updates the override mask color
func (m *Manager) SetBackground(c rules.Color) error {
	m.mu.Lock()
	m.config.Background = c
	m.mu.Unlock()
	return m.Save()
}

// SetLayout updates the row geometry
func (m *Manager) SetLayout(l LayoutConfig) error {
	m.mu.Lock()
	m.config.Layout = l
	m.mu.Unlock()
	return m.Save()
}

// SetScratchDir updates where derived icons are stored
func (m *Manager) SetScratchDir(dir string) error {
	m.mu.Lock()
	m.config.ScratchDir = dir
	m.mu.Unlock()
	return m.Save()
}

// GenerateConfig backs up the existing config at path and writes a fresh default one
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
