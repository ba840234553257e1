// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function, mouse drags and key handlers

package tui

import (
	"fmt"
	"math"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"drawerview/config"
	"drawerview/drawer"
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
		m.handleResize(msg)
		cmd := m.ensureFrames()
		return m, cmd

	case frameMsg:
		return m.handleFrame(msg)

	case configChangedMsg:
		m.reloadConfig()
		cmd := m.ensureFrames()
		return m, tea.Batch(waitForConfigChange(m.changes), cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)
		cmd := m.ensureFrames()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// ========== Layout and frames ==========

// handleResize attaches the drawer on the first size and re-lays it out after
func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	geom := m.geometry()
	if m.drawer.Attached() {
		m.drawer.Resize(geom)
	} else {
		m.drawer.Attach(drawer.Container{ID: containerID, Geometry: geom})
	}
	m.sheet.Drawer().Resize(geom)

	m.background.Width = msg.Width
	m.background.Height = max(msg.Height-statusBarHeight, 0)
	m.search.Width = max(msg.Width-8, 10)
	m.layoutList()

	// Snapping invalidates any frame chain in flight
	m.frameScheduled = false
	m.debugf("[TUI] Resized to %dx%d, drawer at %.1f", msg.Width, msg.Height, m.drawer.Offset())
}

// layoutList sizes the list to the rows it shows when the drawer is open
func (m *model) layoutList() {
	if !m.drawer.Attached() {
		return
	}

	openTop := int(math.Round(m.drawer.Table().Offset(drawer.Open)))
	m.list.SetHeight(m.height - statusBarHeight - openTop - drawerChrome)
}

// refit re-lays out the drawer after the list length changed
func (m *model) refit() {
	if m.drawer.Config().OpenHeight.Mode == drawer.OpenFit && m.drawer.Attached() {
		m.drawer.Resize(m.geometry())
	}
	m.layoutList()
}

// animating reports whether any panel needs frames
func (m *model) animating() bool {
	return m.drawer.Animating() || m.sheet.Drawer().Animating()
}

// ensureFrames starts a frame chain when an animation is running and none
// is scheduled
func (m *model) ensureFrames() tea.Cmd {
	if m.frameScheduled || !m.animating() {
		return nil
	}

	m.frameScheduled = true
	m.frameEpoch++
	m.lastFrame = time.Time{}

	return scheduleFrame(m.frameEpoch)
}

// handleFrame advances both panels by the elapsed time
func (m model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.frameEpoch || !m.frameScheduled {
		m.debugf("[TUI] Ignoring stale frame: epoch %d != current %d", msg.epoch, m.frameEpoch)
		return m, nil
	}

	dt := frameInterval
	if !m.lastFrame.IsZero() {
		if elapsed := msg.at.Sub(m.lastFrame); elapsed > 0 {
			dt = min(elapsed, 4*frameInterval)
		}
	}
	m.lastFrame = msg.at

	more := m.drawer.Tick(dt)
	if m.sheet.Drawer().Tick(dt) {
		more = true
	}

	if more || m.animating() {
		return m, scheduleFrame(m.frameEpoch)
	}

	m.frameScheduled = false
	return m, nil
}

// ========== Configuration ==========

// applyConfig pushes localConfig to the shared config and both panels
func (m *model) applyConfig() {
	m.sharedConfig.Update(*m.localConfig)

	cfg, err := m.localConfig.ToDrawer()
	if err != nil {
		m.debugf("[TUI] %v", err)
		m.host.setStatus("Config has errors, see debug log")
	}

	m.drawer.SetConfig(cfg)
	m.sheet.Drawer().SetConfig(sheetConfig(cfg))
	m.layoutList()
}

// reloadConfig re-reads the config file after it changed on disk
func (m *model) reloadConfig() {
	if m.configPath == "" {
		return
	}

	loaded, err := config.LoadConfig(m.configPath)
	if err != nil {
		m.debugf("[TUI] Config reload failed: %v", err)
		m.host.setStatus("Config reload failed")
		return
	}

	*m.localConfig = loaded
	m.applyConfig()
	m.host.setStatus("Config reloaded")
	m.debugf("[TUI] Config reloaded from %s", m.configPath)
}

// ========== Mouse ==========

// panelRow returns the terminal row of a panel's top border
func panelRow(d *drawer.Drawer) int {
	return int(math.Round(d.Offset()))
}

// pointerDrawer returns the panel the current pointer drag drives
func (m *model) pointerDrawer() *drawer.Drawer {
	if m.pointer.target == targetSheet {
		return m.sheet.Drawer()
	}
	return m.drawer
}

// handleMouse routes presses, motion and releases to the panels
func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.handleWheel(msg, -wheelScrollRows)
		case tea.MouseButtonWheelDown:
			m.handleWheel(msg, wheelScrollRows)
		case tea.MouseButtonLeft:
			m.handlePress(msg)
		}

	case tea.MouseActionMotion:
		if m.pointer.active() {
			m.handleDragMotion(msg)
		}

	case tea.MouseActionRelease:
		if m.pointer.active() {
			m.handleRelease(msg)
		}
	}
}

// handleWheel scrolls the list when the wheel turns over it
func (m *model) handleWheel(msg tea.MouseMsg, rows float64) {
	if m.sheet.Presented() || m.drawer.Concealed() {
		return
	}

	if msg.Y >= panelRow(m.drawer)+drawerChrome && msg.Y < m.height-statusBarHeight {
		m.list.ScrollBy(rows)
	}
}

// handlePress starts a drag on a panel or taps the overlay
func (m *model) handlePress(msg tea.MouseMsg) {
	if msg.Y >= m.height-statusBarHeight {
		return
	}

	if m.sheet.Presented() {
		if msg.Y >= panelRow(m.sheet.Drawer()) {
			m.beginPointer(targetSheet, msg, false)
			return
		}
		m.sheet.Dismiss(true, nil)
		return
	}

	top := panelRow(m.drawer)
	if m.drawer.Concealed() || msg.Y < top {
		if m.drawer.TapOverlay() {
			m.debugf("[TUI] Overlay tapped at row %d", msg.Y)
		}
		return
	}

	m.beginPointer(targetDrawer, msg, msg.Y >= top+drawerChrome)
}

// beginPointer starts a drag session on the target panel
func (m *model) beginPointer(target dragTarget, msg tea.MouseMsg, inList bool) {
	now := m.now()

	m.pointer.target = target
	m.pointer.startX, m.pointer.startY = msg.X, msg.Y
	m.pointer.lastY = msg.Y
	m.pointer.inList = inList
	m.pointer.tracker.Reset()
	m.pointer.tracker.Add(now, float64(msg.X), float64(msg.Y))

	d := m.pointerDrawer()
	d.HandleDrag(drawer.DragSample{Phase: drawer.PhaseBegan, Time: now})

	if inList {
		m.list.BeginPan()
		d.BindScrollRegion(m.list)
	}
}

// dragSample builds a sample from the pointer's travel since the press
func (m *model) dragSample(phase drawer.Phase, msg tea.MouseMsg, now time.Time) drawer.DragSample {
	return drawer.DragSample{
		Phase: phase,
		Translation: drawer.Vec2{
			X: float64(msg.X - m.pointer.startX),
			Y: float64(msg.Y - m.pointer.startY),
		},
		Velocity: m.pointer.tracker.Velocity(),
		Time:     now,
	}
}

// handleDragMotion feeds a changed sample and scrolls the list with
// whatever the drawer declines
func (m *model) handleDragMotion(msg tea.MouseMsg) {
	now := m.now()
	m.pointer.tracker.Add(now, float64(msg.X), float64(msg.Y))

	sample := m.dragSample(drawer.PhaseChanged, msg, now)
	if m.pointer.inList {
		m.list.UpdatePan(sample.Translation.X, sample.Translation.Y)
	}

	res := m.pointerDrawer().HandleDrag(sample)
	if !res.PanelOwned && m.pointer.inList {
		m.list.ScrollBy(float64(m.pointer.lastY - msg.Y))
	}

	m.pointer.lastY = msg.Y
}

// handleRelease ends the drag and lets the drawer snap
func (m *model) handleRelease(msg tea.MouseMsg) {
	now := m.now()
	m.pointer.tracker.Add(now, float64(msg.X), float64(msg.Y))

	sample := m.dragSample(drawer.PhaseEnded, msg, now)
	m.pointerDrawer().HandleDrag(sample)

	if m.pointer.inList {
		m.list.EndPan()
	}

	m.debugf("[TUI] Drag ended at row %d, velocity %.1f", msg.Y, sample.Velocity.Y)
	m.pointer = pointerState{tracker: m.pointer.tracker}
}

// ========== Keys ==========

// handleKey dispatches key presses
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m.handleQuitKey()
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	var cmd tea.Cmd

	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Tab):
		m.showParams = !m.showParams

	case key.Matches(msg, keys.Open):
		m.handleUpKey()

	case key.Matches(msg, keys.Close):
		m.handleDownKey()

	case key.Matches(msg, keys.Left):
		m.handleLeftKey()

	case key.Matches(msg, keys.Right):
		m.handleRightKey()

	case key.Matches(msg, keys.Reset):
		m.resetToDefaults()

	case key.Matches(msg, keys.Jump):
		m.jumpTo(msg.String())

	case key.Matches(msg, keys.CursorUp):
		m.list.MoveCursor(-1)

	case key.Matches(msg, keys.CursorDn):
		m.list.MoveCursor(1)

	case key.Matches(msg, keys.PageUp):
		m.list.MoveCursor(-pageJumpSize)

	case key.Matches(msg, keys.PageDown):
		m.list.MoveCursor(pageJumpSize)

	case key.Matches(msg, keys.Conceal):
		m.toggleConceal()

	case key.Matches(msg, keys.Present):
		m.toggleSheet()

	case key.Matches(msg, keys.Search):
		m.searching = true
		cmd = m.search.Focus()

	case key.Matches(msg, keys.Copy):
		m.copySelected()

	case key.Matches(msg, keys.Undo):
		m.undo()

	case key.Matches(msg, keys.Redo):
		m.redo()
	}

	frames := m.ensureFrames()
	return m, tea.Batch(cmd, frames)
}

// handleQuitKey handles the quit key press
func (m model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true
	// Save config on quit
	if m.configPath != "" {
		if err := config.SaveConfig(m.configPath, m.sharedConfig.Get()); err != nil {
			m.debugf("[TUI] Failed to save config on quit: %v", err)
			// Continue anyway - don't block quit on config save failure
		}
	}
	return m, tea.Quit
}

// handleSearchKey edits the filter while the search field has focus
func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.list.Filter("")
		m.refit()
		frames := m.ensureFrames()
		return m, frames

	case key.Matches(msg, keys.Confirm):
		m.searching = false
		m.search.Blur()
		m.host.setStatus(fmt.Sprintf("%d rows match", m.list.Len()))
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.Filter(m.search.Value())
	m.refit()
	frames := m.ensureFrames()

	return m, tea.Batch(cmd, frames)
}

// handleUpKey handles Up/k key press (context-aware navigation)
func (m *model) handleUpKey() {
	if m.showParams {
		m.paramMgr.SelectPrevious()
		return
	}
	m.stepDrawer(1)
}

// handleDownKey handles Down/j key press (context-aware navigation)
func (m *model) handleDownKey() {
	if m.showParams {
		m.paramMgr.SelectNext()
		return
	}
	m.stepDrawer(-1)
}

// handleLeftKey decreases the selected parameter
func (m *model) handleLeftKey() {
	if m.showParams && m.paramMgr.Decrease() {
		m.applyConfig()
	}
}

// handleRightKey increases the selected parameter
func (m *model) handleRightKey() {
	if m.showParams && m.paramMgr.Increase() {
		m.applyConfig()
	}
}

// resetToDefaults restores every tunable parameter
func (m *model) resetToDefaults() {
	if !m.showParams {
		return
	}

	m.paramMgr.ResetToDefaults(config.DefaultConfig())
	m.applyConfig()
	m.host.setStatus("Parameters reset to defaults")
}

// stepDrawer moves the drawer by positions; positive is more open
func (m *model) stepDrawer(by int) {
	if m.sheet.Presented() {
		return
	}

	p, ok := m.drawer.NextPosition(by)
	if !ok {
		if by > 0 {
			m.host.setStatus("Already fully open")
		} else {
			m.host.setStatus("Already fully closed")
		}
		return
	}

	m.drawer.SetPosition(p, true, nil)
}

// jumpTo moves the drawer to the position for a digit key, 1 being Closed
func (m *model) jumpTo(digit string) {
	n, err := strconv.Atoi(digit)
	all := drawer.AllPositions()
	if err != nil || n < 1 || n > len(all) {
		return
	}

	p := all[n-1]
	if p != drawer.Closed && !m.drawer.Table().Contains(p) {
		m.host.setStatus(fmt.Sprintf("%s is not enabled", p))
		return
	}

	m.drawer.SetPosition(p, true, nil)
}

// toggleConceal hides or reveals the drawer
func (m *model) toggleConceal() {
	concealed := !m.drawer.Concealed()
	m.drawer.SetConcealed(concealed, true, nil)

	if concealed {
		m.host.setStatus("Drawer concealed")
	} else {
		m.host.setStatus("Drawer revealed")
	}
}

// toggleSheet presents details for the selected row or dismisses them
func (m *model) toggleSheet() {
	if m.sheet.Presented() {
		m.sheet.Dismiss(true, nil)
		return
	}

	if m.height == 0 {
		return
	}

	if _, ok := m.list.Selected(); !ok {
		m.host.setStatus("Nothing selected")
		return
	}

	m.sheet.Present(drawer.Container{ID: containerID, Geometry: m.geometry()}, true, nil)
}

// copySelected copies the selected row's label to the clipboard
func (m *model) copySelected() {
	item, ok := m.list.Selected()
	if !ok {
		m.host.setStatus("Nothing selected")
		return
	}

	if err := m.copyText(item.Label()); err != nil {
		m.debugf("[TUI] Clipboard write failed: %v", err)
		m.host.setStatus("Copy failed")
		return
	}

	m.host.setStatus(fmt.Sprintf("Copied %q", item.Label()))
}

// undo returns the drawer to the position it last settled from
func (m *model) undo() {
	p, ok := m.host.history.Undo(m.drawer.Position())
	if !ok {
		m.host.setStatus("Nothing to undo")
		return
	}
	m.restore(p)
}

// redo re-applies the last undone move
func (m *model) redo() {
	p, ok := m.host.history.Redo(m.drawer.Position())
	if !ok {
		m.host.setStatus("Nothing to redo")
		return
	}
	m.restore(p)
}

// restore moves to p without recording the move in the history
func (m *model) restore(p drawer.Position) {
	host := m.host
	host.restoring = true
	m.drawer.SetPosition(p, true, func(bool) {
		host.restoring = false
	})
}
