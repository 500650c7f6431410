// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"archive-browser/config"
	"archive-browser/content"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case engineEventMsg:
		if msg.kind == eventCloseOverlay {
			m.overlayOpen = false
		}

		// Engine state changed on a timer goroutine; re-render and re-arm
		return m, waitForEngineEvent(m.events)

	case fileChangeMsg:
		return m.handleFileChange()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.overlayOpen {
			return m.handleOverlayKey(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// handleResize recomputes the layout and feeds the engine the new geometry
func (m model) handleResize(msg tea.WindowSizeMsg) (model, tea.Cmd) {
	widthChanged := msg.Width != m.width

	m.width = msg.Width
	m.height = msg.Height

	wasMobile := m.mobile
	m.mobile = m.forceMobile || msg.Width < m.cfg.MobileBreakpointCols

	if m.mobile != wasMobile {
		m.debugf("[TUI] Layout %dx%d -> mobile=%v", msg.Width, msg.Height, m.mobile)
	}

	if m.article == nil || widthChanged || wasMobile != m.mobile {
		if err := m.loadCurrentArticle(); err != nil {
			m.errorMsg = err.Error()

			return m, nil
		}

		m.errorMsg = ""
	}

	m.applyLayout()
	m.eng.SetMobile(m.mobile)

	if !m.ready {
		m.ready = true
		m.eng.Start()

		return m, nil
	}

	m.eng.OnResize()

	return m, nil
}

// handleFileChange reloads the current article after an on-disk edit
func (m model) handleFileChange() (model, tea.Cmd) {
	if err := m.loadCurrentArticle(); err != nil {
		m.errorMsg = err.Error()
	} else {
		m.errorMsg = ""
		m.applyLayout()
		m.setStatusMsg("Archive reloaded")
		m.debugf("[TUI] Reloaded article %q after file change", m.currentArticle().ID)
	}

	return m, waitForFileChange(m.watcher, m.debugf)
}

// handleMouse routes wheel scrolling and sidebar clicks
func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelScrollRows)

	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelScrollRows)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if m.article == nil {
			break
		}

		for _, s := range m.article.Sections {
			if zone.Get(navZoneID(s.ID)).InBounds(msg) {
				m.eng.GoTo(s.ID)

				break
			}
		}
	}

	return m, nil
}

// handleKey handles key presses in the normal browsing state
func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-pageJumpRows)

	case key.Matches(msg, keys.PageDown):
		m.scrollBy(pageJumpRows)

	case key.Matches(msg, keys.Top):
		m.doc.SetScrollTop(0)
		m.eng.OnScroll()

	case key.Matches(msg, keys.Bottom):
		m.doc.SetScrollTop(m.docHeight())
		m.eng.OnScroll()

	case key.Matches(msg, keys.Next):
		return m.switchArticle(1)

	case key.Matches(msg, keys.Prev):
		return m.switchArticle(-1)

	case key.Matches(msg, keys.Overlay):
		if m.mobile {
			m.overlayOpen = true
			m.overlayCursor = 0
		}

	case key.Matches(msg, keys.Reset):
		m.eng.Reset()
		m.setStatusMsg("Layout re-synced")

	default:
		if idx, ok := sectionDigit(msg); ok {
			m.goToSectionIndex(idx)
		}
	}

	return m, nil
}

// handleOverlayKey handles key presses while the mobile section menu is open
func (m model) handleOverlayKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Overlay), msg.Type == tea.KeyEsc:
		m.overlayOpen = false

	case key.Matches(msg, keys.Up):
		if m.overlayCursor > 0 {
			m.overlayCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.article != nil && m.overlayCursor < len(m.article.Sections)-1 {
			m.overlayCursor++
		}

	case key.Matches(msg, keys.Select):
		// The engine's mobile-navigate hook closes the overlay
		m.goToSectionIndex(m.overlayCursor)

	default:
		if idx, ok := sectionDigit(msg); ok {
			m.goToSectionIndex(idx)
		}
	}

	return m, nil
}

// handleQuitKey handles the quit key press
func (m model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true
	m.eng.Stop()

	// Save config on quit
	if err := config.SaveConfig(m.configPath, m.sharedConfig.Get()); err != nil {
		m.debugf("[TUI] Failed to save config on quit: %v", err)
		// Continue anyway - don't block quit on config save failure
	}

	return m, tea.Quit
}

// scrollBy moves the scroll position and signals the engine
func (m *model) scrollBy(rows float64) {
	m.doc.SetScrollTop(m.doc.ScrollTop() + rows)
	m.eng.OnScroll()
}

// docHeight returns the full scrollable document height in rows
func (m *model) docHeight() float64 {
	if m.article == nil {
		return 0
	}

	return float64(m.leadRows() + m.article.TotalLines)
}

// goToSectionIndex navigates to the nth section of the current article
func (m *model) goToSectionIndex(idx int) {
	if m.article == nil || idx < 0 || idx >= len(m.article.Sections) {
		return
	}

	m.eng.GoTo(m.article.Sections[idx].ID)
}

// switchArticle cycles to another manifest article and restarts the engine
// against its sections
func (m model) switchArticle(delta int) (model, tea.Cmd) {
	n := len(m.manifest.Articles)
	if n < 2 {
		return m, nil
	}

	m.eng.Stop()

	m.articleIdx = (m.articleIdx + delta + n) % n

	if err := m.loadCurrentArticle(); err != nil {
		m.errorMsg = err.Error()

		return m, nil
	}

	m.errorMsg = ""
	m.doc.SetScrollTop(0)
	m.applyLayout()
	m.eng.Start()
	m.setStatusMsg("Switched to " + m.currentArticle().Title)

	return m, nil
}

// currentArticle returns the manifest entry being browsed
func (m *model) currentArticle() content.Article {
	return m.manifest.Articles[m.articleIdx]
}

// stickyRows returns the screen rows pinned above the scrolled document.
// Element cards keep their banner on screen, so it counts as sticky chrome
// and widens the engine's scroll offset.
func (m *model) stickyRows() int {
	if m.currentArticle().Kind == content.KindElement {
		return headerHeight + leadHeight
	}

	return headerHeight
}

// leadRows returns the banner rows that scroll away with the document
func (m *model) leadRows() int {
	if m.currentArticle().Kind == content.KindElement {
		return 0
	}

	return leadHeight
}

// sidebarWidth returns the sidebar column width for the current article kind
func (m *model) sidebarWidth() int {
	w := m.cfg.SidebarWidthCols
	if m.currentArticle().Kind == content.KindProfile {
		w -= profileSidebarTrim
	}

	if w < minSidebarWidth {
		w = minSidebarWidth
	}

	return w
}

// contentWidth returns the column width available to article text
func (m *model) contentWidth() int {
	w := m.width
	if !m.mobile {
		w -= m.sidebarWidth() + panelPadding
	}

	if w < minContentWidth {
		w = minContentWidth
	}

	return w
}

// bodyRows returns the rows available to the scrolled document
func (m *model) bodyRows() int {
	rows := m.height - m.stickyRows() - footerHeight
	if rows < minBodyHeight {
		rows = minBodyHeight
	}

	return rows
}

// loadCurrentArticle loads and renders the selected article at the current
// content width
func (m *model) loadCurrentArticle() error {
	src, err := m.loadArticle(m.manifest, m.currentArticle())
	if err != nil {
		return err
	}

	article, err := m.renderArticle(src, m.contentWidth()-2, m.style)
	if err != nil {
		return err
	}

	m.article = article

	return nil
}

// applyLayout pushes the current screen geometry and article content into
// the engine's document
func (m *model) applyLayout() {
	if m.article == nil {
		return
	}

	sidebarH := float64(sidebarChrome + len(m.article.Sections))

	wrapperLeft := float64(m.contentWidth() + panelPadding)
	wrapperWidth := float64(m.sidebarWidth())

	if m.mobile {
		wrapperLeft = 0
		wrapperWidth = 0
	}

	m.doc.setLayout(
		float64(m.height),
		float64(m.bodyRows()),
		float64(m.stickyRows()),
		float64(m.leadRows()),
		wrapperLeft,
		wrapperWidth,
		sidebarH,
	)
	m.doc.setContent(float64(m.article.TotalLines), sectionBoxes(m.article))
	m.eng.SetSections(sectionDescriptors(m.article))
}

// sectionDigit maps the 1-9 keys to a section index
func sectionDigit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1'), true
	}

	return 0, false
}

// navZoneID is the mouse zone id for one sidebar entry
func navZoneID(sectionID string) string {
	return "nav-" + sectionID
}
