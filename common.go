// ABOUTME: Shared initialization code for both modes (outline and TUI)
// ABOUTME: Provides archive loading, config setup, and debug logging

package main

import (
	"fmt"
	"log"
	"os"

	"archive-browser/config"
	"archive-browser/content"
)

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	ArchivePath string
	ConfigPath  string
	Style       string
	ForceMobile bool
	DebugLog    bool
}

// BrowseContext contains the loaded archive and associated config
type BrowseContext struct {
	Manifest     *content.Manifest
	Config       config.BrowserConfig
	SharedConfig *config.SharedConfig
	ConfigPath   string
}

// InitializeArchive loads the manifest and config for either mode
func InitializeArchive(opts RunOptions) (*BrowseContext, error) {
	manifest, err := content.LoadManifest(opts.ArchivePath)
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	cfg, _ := config.LoadConfig(configPath)

	sharedConfig := &config.SharedConfig{}
	sharedConfig.Update(cfg)

	return &BrowseContext{
		Manifest:     manifest,
		Config:       cfg,
		SharedConfig: sharedConfig,
		ConfigPath:   configPath,
	}, nil
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == "archive-browser-debug.log" {
		fileInfo, _ := os.Stdout.Stat()
		if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
			fmt.Printf("Debug logging enabled: %s\n", filename)
		}
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
