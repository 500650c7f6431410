// ABOUTME: Handles reading archive manifests and article sources from disk
// ABOUTME: Provides functions to load the manifest with validation and fetch article markdown

// Package content loads a creature archive from disk and prepares it for
// display. An archive is a directory with an archive.toml manifest listing
// articles, each backed by a markdown file that gets split into sections
// and rendered for the terminal.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Article kinds. Profiles are creature entries, elements are habitat or
// material entries, pages are free-form chapters.
const (
	KindProfile = "profile"
	KindElement = "element"
	KindPage    = "page"
)

// Article describes one manifest entry
type Article struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Kind    string `toml:"kind"`
	File    string `toml:"file"`
	Summary string `toml:"summary"`
}

// Manifest is the parsed archive.toml
type Manifest struct {
	Title    string    `toml:"title"`
	Articles []Article `toml:"articles"`

	// Directory the manifest was loaded from, used to resolve article files
	Dir string `toml:"-"`
}

// ArticleSource is an article's markdown split into ordered sections
type ArticleSource struct {
	Article  Article
	Intro    string // markdown before the first section heading
	Sections []Section
}

// LoadManifest reads and validates dir/archive.toml
// Every article must have a unique non-empty id, a known kind and a file
// that exists under dir
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "archive.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m.Dir = dir

	if len(m.Articles) == 0 {
		return nil, fmt.Errorf("manifest %s lists no articles", path)
	}

	seen := make(map[string]bool, len(m.Articles))

	for i, a := range m.Articles {
		if a.ID == "" {
			return nil, fmt.Errorf("article %d has no id", i)
		}

		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate article id %q", a.ID)
		}

		seen[a.ID] = true

		switch a.Kind {
		case KindProfile, KindElement, KindPage:
		case "":
			// Default unstated kinds to page
			m.Articles[i].Kind = KindPage
		default:
			return nil, fmt.Errorf("article %q has unknown kind %q", a.ID, a.Kind)
		}

		if a.File == "" {
			return nil, fmt.Errorf("article %q has no file", a.ID)
		}

		if _, err := os.Stat(filepath.Join(dir, a.File)); err != nil {
			return nil, fmt.Errorf("article %q: %w", a.ID, err)
		}
	}

	return &m, nil
}

// Find returns the article with the given id, or false
func (m *Manifest) Find(id string) (Article, bool) {
	for _, a := range m.Articles {
		if a.ID == id {
			return a, true
		}
	}

	return Article{}, false
}

// LoadArticle reads an article's markdown file and splits it into sections
func (m *Manifest) LoadArticle(a Article) (*ArticleSource, error) {
	data, err := os.ReadFile(filepath.Join(m.Dir, a.File))
	if err != nil {
		return nil, fmt.Errorf("failed to read article %q: %w", a.ID, err)
	}

	intro, sections := SplitSections(data)

	return &ArticleSource{
		Article:  a,
		Intro:    intro,
		Sections: sections,
	}, nil
}
