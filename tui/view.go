// ABOUTME: View composition for the TUI
// ABOUTME: Layers background, drawer, sheet and status bar into one frame

package tui

import "strings"

// View renders the TUI
func (m model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rows := max(m.height-statusBarHeight, 0)

	lines := m.renderBackground(rows)
	m.overlayDrawer(lines)
	m.overlaySheet(lines)
	lines = append(lines, m.renderStatus())

	return strings.Join(lines, "\n")
}
