// ABOUTME: Rendering functions for TUI components
// ABOUTME: Draws the background, the drawer with its shadow, the detail sheet and status bar

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Grayscale ramp bounds (xterm 256-color palette)
const (
	grayBright = 252
	grayDark   = 232
)

// bgLine is one background row with the style it has when not dimmed
type bgLine struct {
	text  string
	style lipgloss.Style
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// grayLevel maps an alpha in [0,1] onto the grayscale ramp, 0 being brightest
func grayLevel(alpha float64) lipgloss.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	level := grayBright - int(math.Round(alpha*float64(grayBright-grayDark)))
	return lipgloss.Color(fmt.Sprintf("%d", level))
}

// renderBackground renders the app content behind the drawer as rows lines
func (m model) renderBackground(rows int) []string {
	src := m.backgroundLines()

	texts := make([]string, len(src))
	for i, l := range src {
		texts[i] = l.text
	}

	bg := m.background
	bg.SetContent(strings.Join(texts, "\n"))
	visible := strings.Split(bg.View(), "\n")

	alpha := m.drawer.Visuals().OverlayAlpha
	dim := lipgloss.NewStyle().Foreground(grayLevel(alpha))

	lines := make([]string, rows)
	for i := range lines {
		text := ""
		if i < len(visible) {
			text = visible[i]
		}
		text = strings.TrimRight(text, " ")

		switch {
		case alpha > 0:
			lines[i] = dim.Render(fit(text, m.width))
		case i < len(src):
			style := src[i].style
			lines[i] = style.Render(fit(text, m.width-style.GetHorizontalFrameSize()))
		default:
			lines[i] = fit(text, m.width)
		}
	}

	return lines
}

// backgroundLines builds the state readout and the params panel or help
func (m model) backgroundLines() []bgLine {
	plain := lipgloss.NewStyle()
	d := m.drawer
	v := d.Visuals()
	motion := d.Motion()

	names := make([]string, 0, 4)
	if d.Attached() {
		for _, p := range d.Table().Sorted() {
			names = append(names, p.String())
		}
	}

	dragging := "no"
	if d.Dragging() {
		dragging = "yes"
	}

	lines := []bgLine{
		{m.title, titleStyle},
		{"", plain},
		{fmt.Sprintf("%-12s %s", "Position", d.Position()), plain},
		{fmt.Sprintf("%-12s %.1f (target %.1f)", "Offset", d.Offset(), motion.Target()), plain},
		{fmt.Sprintf("%-12s %.1f", "Velocity", motion.Velocity()), plain},
		{fmt.Sprintf("%-12s overlay %.2f  shadow %.2f  content %.2f", "Visuals", v.OverlayAlpha, v.ShadowOpacity, v.ContentAlpha), plain},
		{fmt.Sprintf("%-12s %s", "Positions", strings.Join(names, ", ")), plain},
		{fmt.Sprintf("%-12s %s", "Dragging", dragging), plain},
		{fmt.Sprintf("%-12s %d undo / %d redo", "History", m.host.history.UndoSize(), m.host.history.RedoSize()), plain},
		{"", plain},
	}

	if m.showParams {
		return append(lines, m.renderParameters()...)
	}
	return append(lines, m.renderHelp()...)
}

// renderParameters renders the parameter control panel
func (m model) renderParameters() []bgLine {
	lines := []bgLine{
		{"► Drawer parameters [FOCUSED]", titleStyle},
		{"", lipgloss.NewStyle()},
	}

	for i, param := range m.paramMgr.All() {
		value := "N/A"
		if param.Value != nil {
			value = fmt.Sprintf(param.Format, *param.Value)
		}

		// Fixed width formatting to prevent column misalignment
		prefix := "  "
		style := paramStyle
		if i == m.paramMgr.Selected() {
			prefix = "► "
			style = selectedParamStyle
		}

		lines = append(lines, bgLine{fmt.Sprintf("%s%-25s %6s", prefix, param.Name, value), style})
	}

	return lines
}

// renderHelp renders the key reference
func (m model) renderHelp() []bgLine {
	groups := [][]key.Binding{
		{keys.Open, keys.Close, keys.Jump, keys.Conceal},
		{keys.CursorUp, keys.CursorDn, keys.Present, keys.Copy},
		{keys.Search, keys.Undo, keys.Redo, keys.Tab, keys.Quit},
	}

	lines := make([]bgLine, 0, len(groups))
	for _, group := range groups {
		parts := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		lines = append(lines, bgLine{strings.Join(parts, "  •  "), helpStyle})
	}

	return lines
}

// panelBorder renders a rounded top border with a centered grab handle
func panelBorder(width int) string {
	if width < 2 {
		return fit("", width)
	}

	inner := width - 2
	handle := "━━━━"
	if runewidth.StringWidth(handle) > inner {
		return "╭" + strings.Repeat("─", inner) + "╮"
	}

	left := (inner - runewidth.StringWidth(handle)) / 2
	right := inner - left - runewidth.StringWidth(handle)

	return "╭" + strings.Repeat("─", left) + handle + strings.Repeat("─", right) + "╮"
}

// panelRowText wraps text in the panel's side borders
func panelRowText(text string, width int) string {
	if width < 4 {
		return fit(text, width)
	}
	return "│ " + fit(text, width-4) + " │"
}

// renderShadow draws the drawer's shadow row above its border
func renderShadow(width int, opacity float64) string {
	if opacity <= 0 {
		return ""
	}

	shade := "░"
	if opacity >= 0.67 {
		shade = "▒"
	}

	style := lipgloss.NewStyle().Foreground(grayLevel(1 - opacity))
	return style.Render(strings.Repeat(shade, max(width, 0)))
}

// overlayDrawer paints the drawer over lines starting at its live offset
func (m model) overlayDrawer(lines []string) {
	d := m.drawer
	if !d.Attached() || d.Concealed() {
		return
	}

	top := panelRow(d)
	v := d.Visuals()

	if shadow := top - 1; shadow >= 0 && shadow < len(lines) {
		if s := renderShadow(m.width, v.ShadowOpacity); s != "" {
			lines[shadow] = s
		}
	}

	collapsed := int(math.Round(d.Config().CollapsedHeight))
	faded := lipgloss.NewStyle().Foreground(grayLevel(1 - v.ContentAlpha))

	for row := max(top, 0); row < len(lines); row++ {
		idx := row - top

		switch idx {
		case 0:
			lines[row] = drawerStyle.Render(panelBorder(m.width))
		case 1:
			lines[row] = m.renderDrawerHeader()
		default:
			lines[row] = m.renderListRow(m.list.FirstRow()+idx-drawerChrome, idx >= collapsed && v.ContentAlpha < 1, faded)
		}
	}
}

// renderDrawerHeader renders the drawer's title row inside its borders
func (m model) renderDrawerHeader() string {
	if m.width < 4 {
		return fit("", m.width)
	}
	return drawerStyle.Render("│ ") + drawerHeaderStyle.Render(fit(m.drawerHeader(), m.width-4)) + drawerStyle.Render(" │")
}

// drawerHeader returns the drawer's title row text
func (m model) drawerHeader() string {
	if m.searching {
		return "/" + m.search.Value() + "█"
	}

	if q := m.search.Value(); q != "" {
		return fmt.Sprintf("filter %q  %d rows", q, m.list.Len())
	}

	return fmt.Sprintf("Library  %d rows", m.list.Len())
}

// renderListRow renders one list row inside the drawer's borders
func (m model) renderListRow(i int, fade bool, faded lipgloss.Style) string {
	if m.width < 4 {
		return fit("", m.width)
	}

	item, ok := m.list.Row(i)
	text := ""
	if ok {
		text = item.Label()
	}
	text = fit(text, m.width-4)

	switch {
	case ok && i == m.list.Cursor():
		text = cursorStyle.Render(text)
	case fade:
		text = faded.Render(text)
	}

	return drawerStyle.Render("│ ") + text + drawerStyle.Render(" │")
}

// overlaySheet paints the detail sheet over lines
func (m model) overlaySheet(lines []string) {
	if !m.sheet.Presented() {
		return
	}

	item, _ := m.list.Selected()
	body := []string{
		"",
		"Details",
		"Title   " + item.Title,
		"Artist  " + item.Artist,
		"Album   " + item.Album,
		"Genre   " + item.Genre,
		fmt.Sprintf("Year    %d", item.Year),
		"Path    " + item.Path,
	}

	top := panelRow(m.sheet.Drawer())
	for row := max(top, 0); row < len(lines); row++ {
		idx := row - top
		if idx == 0 {
			lines[row] = sheetStyle.Render(panelBorder(m.width))
			continue
		}

		text := ""
		if idx < len(body) {
			text = body[idx]
		}
		lines[row] = sheetStyle.Render(panelRowText(text, m.width))
	}
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	text := fmt.Sprintf("%s  •  ↑/↓ move  •  / search  •  tab params  •  q quit", m.drawer.Position())
	if m.host.statusMsg != "" && m.now().Sub(m.host.statusMsgAge) < statusMessageDuration {
		text = m.host.statusMsg
	}

	if m.drawer.Concealed() {
		text = "[concealed] " + text
	}

	return statusStyle.Render(fit(text, max(m.width-2, 0)))
}
