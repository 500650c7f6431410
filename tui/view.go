// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"archive-browser/engine"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	if !m.ready || m.article == nil {
		if m.errorMsg != "" {
			return errorStyle.Render("Error: "+m.errorMsg) + "\n"
		}

		return "Loading archive...\n"
	}

	header := m.renderHeader()

	var body string
	if m.mobile {
		body = m.renderMobileBody()
	} else {
		body = m.renderDesktopBody()
	}

	ui := header + "\n"

	// Element cards keep their banner pinned under the header
	if m.stickyRows() > headerHeight {
		ui += strings.Join(m.bannerLines(), "\n") + "\n"
	}

	ui += body + "\n" + m.renderStatus() + "\n" + m.renderHelp()

	// Register the frame with the zone manager so mouse hits resolve
	return zone.Scan(ui)
}

// renderHeader renders the sticky archive title and article tab line
func (m model) renderHeader() string {
	title := titleStyle.Render(m.manifest.Title)

	var tabs []string

	for i, a := range m.manifest.Articles {
		label := truncate(a.Title, 18)
		if i == m.articleIdx {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// bannerLines renders the article title banner
func (m model) bannerLines() []string {
	a := m.currentArticle()

	kindLine := kindStyle.Render(a.Kind)
	if a.Summary != "" {
		kindLine = kindStyle.Render(a.Kind + " · " + a.Summary)
	}

	return []string{bannerStyle.Render(a.Title), kindLine, ""}
}

// docLines assembles the scrollable document: article banner (when it
// scrolls with the content) plus rendered lines. Its length is
// leadRows + TotalLines, matching the geometry the engine samples.
func (m model) docLines() []string {
	lines := make([]string, 0, m.leadRows()+m.article.TotalLines)

	if m.leadRows() > 0 {
		lines = append(lines, m.bannerLines()...)
	}

	return append(lines, m.article.AllLines()...)
}

// visibleLines slices the document to the rows on screen, padded to a full
// body column
func (m model) visibleLines() []string {
	doc := m.docLines()
	rows := m.bodyRows()
	top := int(m.doc.ScrollTop())

	visible := make([]string, rows)

	for r := range rows {
		if i := top + r; i >= 0 && i < len(doc) {
			visible[r] = doc[i]
		}
	}

	return visible
}

// renderDesktopBody renders the two-column layout: content left, sidebar
// positioned in the right column per the engine's placement
func (m model) renderDesktopBody() string {
	contentLines := m.visibleLines()
	sidebarLines := m.renderSidebarLines()
	top := m.sidebarTopRow()

	cw := m.contentWidth()
	gap := strings.Repeat(" ", panelPadding)

	rows := make([]string, len(contentLines))

	sticky := m.stickyRows()

	for r, line := range contentLines {
		cell := ""

		// Sidebar rows are addressed in viewport coordinates
		if idx := r + sticky - top; idx >= 0 && idx < len(sidebarLines) {
			cell = sidebarLines[idx]
		}

		rows[r] = lipgloss.PlaceHorizontal(cw, lipgloss.Left, line) + gap + cell
	}

	return strings.Join(rows, "\n")
}

// sidebarTopRow converts the applied placement to a screen row. Before the
// first placement write the sidebar flows with the container.
func (m model) sidebarTopRow() int {
	snap := m.doc.snapshot()

	flowing := int(snap.headerRows + snap.leadRows - snap.scrollTop)

	if !snap.placed {
		return flowing
	}

	switch snap.placement.Position {
	case engine.PositionFixed:
		return int(snap.placement.Top.Px)
	case engine.PositionAbsolute:
		// Parked at the container's bottom edge
		return int(snap.headerRows + snap.leadRows + snap.totalLines - snap.scrollTop - snap.sidebarH)
	default:
		return flowing
	}
}

// renderSidebarLines renders the section list, one line per entry, each
// wrapped in a mouse zone
func (m model) renderSidebarLines() []string {
	w := m.sidebarWidth()
	active := m.eng.ActiveSection()

	lines := make([]string, 0, sidebarChrome+len(m.article.Sections))
	lines = append(lines,
		sidebarTitleStyle.Render("Sections"),
		helpStyle.Render(strings.Repeat("─", w)),
	)

	for i, s := range m.article.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		if runewidth.StringWidth(label) > w-2 {
			label = runewidth.Truncate(label, w-3, "…")
		}

		var line string
		if s.ID == active {
			line = sidebarActiveStyle.Render("▸ " + label)
		} else {
			line = sidebarEntryStyle.Render("  " + label)
		}

		lines = append(lines, zone.Mark(navZoneID(s.ID), line))
	}

	return lines
}

// renderMobileBody renders the single-column layout, or the section menu
// overlay when it is open
func (m model) renderMobileBody() string {
	if m.overlayOpen {
		return m.renderOverlay()
	}

	return strings.Join(m.visibleLines(), "\n")
}

// renderOverlay renders the full-screen section menu for narrow layouts
func (m model) renderOverlay() string {
	rows := m.bodyRows()

	lines := make([]string, 0, rows)
	lines = append(lines, sidebarTitleStyle.Render("Sections"), "")

	active := m.eng.ActiveSection()

	for i, s := range m.article.Sections {
		marker := "  "
		if s.ID == active {
			marker = "· "
		}

		label := fmt.Sprintf("%s%d %s", marker, i+1, truncate(s.Title, m.width-8))

		if i == m.overlayCursor {
			lines = append(lines, sidebarActiveStyle.Render("▸"+label[1:]))
		} else {
			lines = append(lines, sidebarEntryStyle.Render(label))
		}
	}

	for len(lines) < rows {
		lines = append(lines, "")
	}

	return strings.Join(lines[:rows], "\n")
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.errorMsg != "" {
		return statusStyle.Width(m.width).Render(errorStyle.Render("Error: " + m.errorMsg))
	}

	// Show status message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	phaseStr := "detached"
	if phase, known := m.eng.Phase(); known {
		phaseStr = phase.String()
	}

	activeStr := "-"

	if id := m.eng.ActiveSection(); id != "" {
		for _, s := range m.article.Sections {
			if s.ID == id {
				activeStr = s.Title

				break
			}
		}
	}

	navFlag := ""
	if m.eng.Navigating() {
		navFlag = "[NAV] "
	}

	status := fmt.Sprintf("%sArticle %d/%d | Sidebar: %s | Section: %s | Row %d/%d",
		navFlag,
		m.articleIdx+1,
		len(m.manifest.Articles),
		phaseStr,
		activeStr,
		int(m.doc.ScrollTop()),
		int(m.docHeight()),
	)

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	if m.mobile {
		return helpStyle.Render(" ↑/↓/j/k: scroll | m: sections | 1-9: jump | tab/[]: switch article | r: re-sync | q: quit")
	}

	return helpStyle.Render(" ↑/↓/j/k: scroll | 1-9/click: jump to section | tab/[]: switch article | g/G: top/bottom | r: re-sync | q: quit")
}
