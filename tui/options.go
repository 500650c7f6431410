// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters for running the TUI

package tui

// Options contains configuration for running the TUI
type Options struct {
	ArchivePath string // Directory with archive.toml and article files
	Style       string // Glamour style name ("" = auto-detect)
	ForceMobile bool   // Force the single-column layout regardless of width
	DebugLog    bool   // Enable debug logging to file
}
