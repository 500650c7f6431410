// ABOUTME: Parallel terminal rendering of article sections
// ABOUTME: Worker pool with one markdown renderer per worker, results assembled in order

package content

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// RenderedSection is a section rendered to terminal lines, positioned at
// StartLine within the assembled article
type RenderedSection struct {
	Section

	Lines     []string
	StartLine int
	Height    int
}

// RenderedArticle is a fully rendered article with line offsets resolved
type RenderedArticle struct {
	Article    Article
	IntroLines []string
	Sections   []RenderedSection
	TotalLines int
}

// RenderArticle renders the intro and every section in parallel and
// assembles them with contiguous line offsets. The style name selects a
// glamour standard style; empty means auto-detect, tests use "notty".
//
// Renderers are not safe for concurrent use, so each worker owns one.
func RenderArticle(src *ArticleSource, width int, style string) (*RenderedArticle, error) {
	jobs := make([]string, 0, len(src.Sections)+1)
	jobs = append(jobs, src.Intro)

	for _, s := range src.Sections {
		jobs = append(jobs, s.Body)
	}

	results := make([][]string, len(jobs))
	errs := make([]error, len(jobs))
	indexChan := make(chan int, len(jobs))

	for i := range jobs {
		indexChan <- i
	}

	close(indexChan)

	workers := min(runtime.NumCPU(), len(jobs))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			renderer, err := newRenderer(width, style)
			if err != nil {
				for i := range indexChan {
					errs[i] = err
				}

				return
			}

			for i := range indexChan {
				results[i], errs[i] = renderBlock(renderer, jobs[i])
			}
		}()
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to render block %d of %q: %w", i, src.Article.ID, err)
		}
	}

	ra := &RenderedArticle{
		Article:    src.Article,
		IntroLines: results[0],
	}

	line := len(ra.IntroLines)

	for i, s := range src.Sections {
		lines := results[i+1]

		ra.Sections = append(ra.Sections, RenderedSection{
			Section:   s,
			Lines:     lines,
			StartLine: line,
			Height:    len(lines),
		})

		line += len(lines)
	}

	ra.TotalLines = line

	return ra, nil
}

// AllLines flattens the article back into one line slice for the viewport
func (ra *RenderedArticle) AllLines() []string {
	lines := make([]string, 0, ra.TotalLines)
	lines = append(lines, ra.IntroLines...)

	for _, s := range ra.Sections {
		lines = append(lines, s.Lines...)
	}

	return lines
}

func newRenderer(width int, style string) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}

	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	return glamour.NewTermRenderer(opts...)
}

// renderBlock renders one markdown block and splits it into lines
// An empty block renders to zero lines, not one empty line
func renderBlock(renderer *glamour.TermRenderer, markdown string) ([]string, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return nil, err
	}

	out = strings.Trim(out, "\n")
	if out == "" {
		return nil, nil
	}

	return strings.Split(out, "\n"), nil
}
