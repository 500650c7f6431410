// ABOUTME: Configuration management for browser and scroll-engine parameters
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// BrowserConfig holds all tunable browser and scroll-engine parameters.
// Durations are plain millisecond counts so the file stays readable.
type BrowserConfig struct {
	// Rows reserved above the content for the fixed header
	TopOffset float64 `toml:"top_offset"`

	// Engine timing
	ThrottleMs       int `toml:"throttle_ms"`
	ResizeDebounceMs int `toml:"resize_debounce_ms"`
	ScrollDurationMs int `toml:"scroll_duration_ms"`
	SettleDelayMs    int `toml:"settle_delay_ms"`

	// Fraction of the viewport excluded at the bottom of the active band
	BandExclusion float64 `toml:"band_exclusion"`

	// Layout
	MobileBreakpointCols int `toml:"mobile_breakpoint_cols"`
	SidebarWidthCols     int `toml:"sidebar_width_cols"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/archive-browser/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./archive-browser.toml"); err == nil {
		return "./archive-browser.toml"
	}

	// Then try ~/.config/archive-browser/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./archive-browser.toml"
	}

	return filepath.Join(home, ".config", "archive-browser", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (BrowserConfig, error) {
	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML
	var config BrowserConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return clampConfig(config), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config BrowserConfig) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	// Encode config as TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default browser configuration
func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		TopOffset:            2,
		ThrottleMs:           8,
		ResizeDebounceMs:     100,
		ScrollDurationMs:     350,
		SettleDelayMs:        80,
		BandExclusion:        0.8,
		MobileBreakpointCols: 90,
		SidebarWidthCols:     28,
	}
}

// SharedConfig wraps BrowserConfig with a mutex for thread-safe access
// between the UI loop and engine timer callbacks
type SharedConfig struct {
	mu     sync.RWMutex
	config BrowserConfig
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() BrowserConfig {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update updates the config (thread-safe write)
func (sc *SharedConfig) Update(config BrowserConfig) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = config
}

// clampConfig pulls out-of-range values back to usable ones so a hand
// edited file cannot wedge the engine
func clampConfig(config BrowserConfig) BrowserConfig {
	defaults := DefaultConfig()

	if config.TopOffset < 0 {
		config.TopOffset = 0
	}

	if config.ThrottleMs <= 0 {
		config.ThrottleMs = defaults.ThrottleMs
	}

	if config.ResizeDebounceMs <= 0 {
		config.ResizeDebounceMs = defaults.ResizeDebounceMs
	}

	if config.ScrollDurationMs <= 0 {
		config.ScrollDurationMs = defaults.ScrollDurationMs
	}

	if config.SettleDelayMs <= 0 {
		config.SettleDelayMs = defaults.SettleDelayMs
	}

	if config.BandExclusion <= 0 || config.BandExclusion >= 1 {
		config.BandExclusion = defaults.BandExclusion
	}

	if config.MobileBreakpointCols <= 0 {
		config.MobileBreakpointCols = defaults.MobileBreakpointCols
	}

	if config.SidebarWidthCols < 16 {
		config.SidebarWidthCols = defaults.SidebarWidthCols
	}

	return config
}
