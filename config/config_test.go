// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing, default fallback and out-of-range clamping

package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ThrottleMs != 8 {
		t.Errorf("Expected ThrottleMs 8, got %d", cfg.ThrottleMs)
	}

	if cfg.BandExclusion != 0.8 {
		t.Errorf("Expected BandExclusion 0.8, got %.2f", cfg.BandExclusion)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	// Create temp file
	tmpfile, err := os.CreateTemp(t.TempDir(), "archive-browser-*.toml")
	if err != nil {
		t.Fatal(err)
	}

	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	// Save a tweaked config
	cfg := DefaultConfig()
	cfg.ScrollDurationMs = 500
	cfg.TopOffset = 4

	if err := SaveConfig(tmpfile.Name(), cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Load it back
	loaded, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify values match
	if loaded.ScrollDurationMs != cfg.ScrollDurationMs {
		t.Errorf("ScrollDurationMs mismatch: got %d, want %d", loaded.ScrollDurationMs, cfg.ScrollDurationMs)
	}

	if loaded.TopOffset != cfg.TopOffset {
		t.Errorf("TopOffset mismatch: got %.2f, want %.2f", loaded.TopOffset, cfg.TopOffset)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Loading non-existent file should return defaults without error
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	// Should be default values
	defaults := DefaultConfig()
	if cfg.ThrottleMs != defaults.ThrottleMs {
		t.Errorf("Expected default ThrottleMs %d, got %d", defaults.ThrottleMs, cfg.ThrottleMs)
	}
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "archive-browser-*.toml")
	if err != nil {
		t.Fatal(err)
	}

	defer os.Remove(tmpfile.Name())

	content := []byte("top_offset = -3\nthrottle_ms = 0\nband_exclusion = 1.5\nsidebar_width_cols = 2\n")
	if _, err := tmpfile.Write(content); err != nil {
		t.Fatal(err)
	}

	tmpfile.Close()

	cfg, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	defaults := DefaultConfig()

	if cfg.TopOffset != 0 {
		t.Errorf("Expected negative top_offset clamped to 0, got %.2f", cfg.TopOffset)
	}

	if cfg.ThrottleMs != defaults.ThrottleMs {
		t.Errorf("Expected zero throttle_ms replaced with %d, got %d", defaults.ThrottleMs, cfg.ThrottleMs)
	}

	if cfg.BandExclusion != defaults.BandExclusion {
		t.Errorf("Expected band_exclusion 1.5 replaced with %.2f, got %.2f", defaults.BandExclusion, cfg.BandExclusion)
	}

	if cfg.SidebarWidthCols != defaults.SidebarWidthCols {
		t.Errorf("Expected tiny sidebar_width_cols replaced with %d, got %d", defaults.SidebarWidthCols, cfg.SidebarWidthCols)
	}
}

func TestSharedConfigRoundTrip(t *testing.T) {
	sc := &SharedConfig{}
	sc.Update(DefaultConfig())

	cfg := sc.Get()
	cfg.TopOffset = 7
	sc.Update(cfg)

	if got := sc.Get().TopOffset; got != 7 {
		t.Errorf("Expected TopOffset 7 after Update, got %.2f", got)
	}
}
