// ABOUTME: Entry point for archive-browser application
// ABOUTME: Handles command-line parsing, profiling, and routing to outline or TUI modes

// Package main provides the entry point for archive-browser, a terminal browser
// for markdown archives with a scroll-synchronized section sidebar.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"archive-browser/content"
	"archive-browser/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	outline := flag.Bool("outline", false, "print the archive outline and exit instead of browsing")
	configPath := flag.String("config", "", "config file path (default: ./archive-browser.toml, then XDG config dir)")
	debug := flag.Bool("debug", false, "enable debug logging to archive-browser-debug.log")
	mobile := flag.Bool("mobile", false, "force the narrow single-column layout regardless of width")
	style := flag.String("style", "", "glamour style name (default: auto-detect from terminal)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: archive-browser [flags] <archive-dir>")
		fmt.Println("Example: archive-browser ~/archives/ember-wastes")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	archivePath := args[0]

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	opts := RunOptions{
		ArchivePath: archivePath,
		ConfigPath:  *configPath,
		Style:       *style,
		ForceMobile: *mobile,
		DebugLog:    *debug,
	}

	if *outline {
		if err := RunOutline(opts); err != nil {
			log.Printf("Outline error: %v", err)

			return 1
		}

		return 0
	}

	if *debug {
		if err := SetupDebugLog("archive-browser-debug.log"); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	data, err := InitializeArchive(opts)
	if err != nil {
		log.Printf("Failed to load archive: %v", err)

		return 1
	}

	tuiOpts := tui.Options{
		ArchivePath: archivePath,
		Style:       *style,
		ForceMobile: *mobile,
		DebugLog:    *debug,
	}

	loadManifest := func(string) (*content.Manifest, error) {
		// Reuse the manifest validated above
		return data.Manifest, nil
	}
	loadArticle := func(m *content.Manifest, a content.Article) (*content.ArticleSource, error) {
		return m.LoadArticle(a)
	}

	if err := tui.Run(tuiOpts, data.SharedConfig, loadManifest, loadArticle, content.RenderArticle, debugf, data.ConfigPath); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
