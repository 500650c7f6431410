// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation with scroll engine integration

// Package tui provides an interactive terminal browser for a creature
// archive, with a scroll-synchronized section sidebar.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"

	"archive-browser/config"
	"archive-browser/content"
	"archive-browser/engine"
)

// Layout constants for UI dimensions
const (
	headerHeight = 2 // Archive title bar plus article tab line
	leadHeight   = 3 // Article banner inside the scrollable document
	footerHeight = 2 // Status bar plus help line
	panelPadding = 2 // Horizontal spacing between content and sidebar

	sidebarChrome = 2 // Sidebar title and rule above the section list

	// Profile pages trade sidebar columns for portrait-heavy content
	profileSidebarTrim = 6

	// Minimum content dimensions to ensure usability
	minContentWidth = 20
	minBodyHeight   = 5
	minSidebarWidth = 16
)

// Navigation and interaction constants
const (
	pageJumpRows          = 10              // Rows to jump on PageUp/PageDown
	wheelScrollRows       = 3               // Rows per mouse wheel tick
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
)

// engineEventMsg carries an engine callback into the update loop
type engineEventMsg struct {
	kind engineEvent
}

// model holds the TUI state
type model struct {
	// Dependencies (concrete types following Go philosophy)
	sharedConfig  *config.SharedConfig
	loadArticle   func(*content.Manifest, content.Article) (*content.ArticleSource, error)
	renderArticle func(*content.ArticleSource, int, string) (*content.RenderedArticle, error)
	debugf        func(string, ...interface{})

	// Archive state
	manifest   *content.Manifest
	articleIdx int
	article    *content.RenderedArticle

	// Engine plumbing
	doc    *docState
	eng    *engine.Engine
	events chan engineEvent

	// Configuration
	cfg        config.BrowserConfig
	configPath string
	style      string // glamour style name, empty for auto

	// File watching
	watcher *fsnotify.Watcher

	// UI state
	width         int
	height        int
	mobile        bool
	forceMobile   bool
	overlayOpen   bool
	overlayCursor int
	ready         bool
	quitting      bool
	statusMsg     string
	statusMsgAge  time.Time
	errorMsg      string
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Overlay  key.Binding
	Reset    key.Binding
	Select   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "]"),
		key.WithHelp("tab/]", "next article"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "["),
		key.WithHelp("shift+tab/[", "previous article"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "sections menu"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-sync layout"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump to section"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 1)

	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	sidebarEntryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	sidebarActiveStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// Run starts the TUI mode with injected dependencies
func Run(opts Options, sharedConfig *config.SharedConfig, loadManifest func(string) (*content.Manifest, error), loadArticle func(*content.Manifest, content.Article) (*content.ArticleSource, error), renderArticle func(*content.ArticleSource, int, string) (*content.RenderedArticle, error), debugf func(string, ...interface{}), configPath string) error {
	manifest, err := loadManifest(opts.ArchivePath)
	if err != nil {
		return err
	}

	// Mouse zones for sidebar clicks
	zone.NewGlobal()

	// Watch the archive directory so edits to article files reload live
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(manifest.Dir); err != nil {
		watcher.Close()

		return fmt.Errorf("failed to watch archive directory: %w", err)
	}

	m := initModel(manifest, opts, sharedConfig, loadArticle, renderArticle, debugf, configPath)
	m.watcher = watcher

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()

	watcher.Close()
	m.eng.Stop()

	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(manifest *content.Manifest, opts Options, sharedConfig *config.SharedConfig, loadArticle func(*content.Manifest, content.Article) (*content.ArticleSource, error), renderArticle func(*content.ArticleSource, int, string) (*content.RenderedArticle, error), debugf func(string, ...interface{}), configPath string) model {
	cfg := sharedConfig.Get()

	events := make(chan engineEvent, 16)
	doc := newDocState(events)

	eng := engine.New(engine.Config{
		TopOffset:      cfg.TopOffset,
		BandExclusion:  cfg.BandExclusion,
		ThrottleEvery:  time.Duration(cfg.ThrottleMs) * time.Millisecond,
		ResizeDebounce: time.Duration(cfg.ResizeDebounceMs) * time.Millisecond,
		ScrollDuration: time.Duration(cfg.ScrollDurationMs) * time.Millisecond,
		SettleDelay:    time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		OnActiveChange: func(string) { doc.notify(eventRepaint) },
		OnMobileNavigate: func() {
			doc.notify(eventCloseOverlay)
		},
		Debugf: debugf,
	}, doc, doc, nil)

	return model{
		sharedConfig:  sharedConfig,
		loadArticle:   loadArticle,
		renderArticle: renderArticle,
		debugf:        debugf,

		manifest:   manifest,
		articleIdx: 0,

		doc:    doc,
		eng:    eng,
		events: events,

		cfg:         cfg,
		configPath:  configPath,
		style:       opts.Style,
		forceMobile: opts.ForceMobile,
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForEngineEvent(m.events),
		waitForFileChange(m.watcher, m.debugf),
		tea.EnterAltScreen,
	)
}

// waitForEngineEvent waits for engine callbacks and returns them as messages
func waitForEngineEvent(events <-chan engineEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}

		return engineEventMsg{kind: ev}
	}
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// sectionDescriptors converts the rendered article to tracker subscriptions
func sectionDescriptors(article *content.RenderedArticle) []engine.SectionDescriptor {
	descs := make([]engine.SectionDescriptor, 0, len(article.Sections))

	for _, s := range article.Sections {
		descs = append(descs, engine.SectionDescriptor{ID: s.ID, OrderIndex: s.OrderIndex})
	}

	return descs
}

// sectionBoxes converts rendered line offsets to the adapter's box map
func sectionBoxes(article *content.RenderedArticle) map[string]lineRange {
	boxes := make(map[string]lineRange, len(article.Sections))

	for _, s := range article.Sections {
		boxes[s.ID] = lineRange{start: float64(s.StartLine), height: float64(s.Height)}
	}

	return boxes
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
