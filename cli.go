// ABOUTME: Outline mode implementation for non-interactive archive inspection
// ABOUTME: Prints the article and section structure as a table for scripting

package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"archive-browser/content"
)

const outlineRenderWidth = 80

// RunOutline prints the archive structure without entering the TUI
func RunOutline(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("archive-browser-debug.log"); err != nil {
			return err
		}
	}

	data, err := InitializeArchive(opts)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d articles)\n\n", data.Manifest.Title, len(data.Manifest.Articles))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tID\tKind\tSections\tLines\tTitle"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t---\t----\t--------\t-----\t-----"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	rendered := make([]*content.RenderedArticle, len(data.Manifest.Articles))

	for i, a := range data.Manifest.Articles {
		src, err := data.Manifest.LoadArticle(a)
		if err != nil {
			return fmt.Errorf("failed to load article %q: %w", a.ID, err)
		}

		ra, err := content.RenderArticle(src, outlineRenderWidth, "notty")
		if err != nil {
			return fmt.Errorf("failed to render article %q: %w", a.ID, err)
		}

		rendered[i] = ra

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			i+1,
			truncate(a.ID, 24),
			a.Kind,
			len(ra.Sections),
			ra.TotalLines,
			truncate(a.Title, 40),
		); err != nil {
			log.Printf("Warning: failed to write article %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	for i, a := range data.Manifest.Articles {
		ra := rendered[i]

		fmt.Printf("\n%s\n", a.Title)

		if len(ra.Sections) == 0 {
			fmt.Println("  (no section headings)")

			continue
		}

		for _, s := range ra.Sections {
			fmt.Printf("  %d. %s  #%s  [line %d, %d lines]\n",
				s.OrderIndex+1,
				truncate(s.Title, 40),
				s.ID,
				s.StartLine,
				s.Height,
			)
		}
	}

	return nil
}
