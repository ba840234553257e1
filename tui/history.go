// ABOUTME: Undo/redo stack of settled drawer positions
// ABOUTME: Manages position history with maximum stack size limit

package tui

import "drawerview/drawer"

// PositionHistory manages undo/redo stacks of drawer positions
type PositionHistory struct {
	undoStack []drawer.Position
	redoStack []drawer.Position
	maxSize   int
}

// NewPositionHistory creates a history holding at most maxSize entries per stack
func NewPositionHistory(maxSize int) *PositionHistory {
	return &PositionHistory{maxSize: maxSize}
}

func (h *PositionHistory) push(stack []drawer.Position, p drawer.Position) []drawer.Position {
	stack = append(stack, p)
	if len(stack) > h.maxSize {
		stack = stack[1:]
	}
	return stack
}

// Push records the position the drawer just left.
// Clears the redo stack (you can't redo after a new move)
func (h *PositionHistory) Push(p drawer.Position) {
	if n := len(h.undoStack); n > 0 && h.undoStack[n-1] == p {
		h.redoStack = h.redoStack[:0]
		return
	}

	h.undoStack = h.push(h.undoStack, p)
	h.redoStack = h.redoStack[:0]
}

// Undo pops the previous position and remembers current for redo
func (h *PositionHistory) Undo(current drawer.Position) (drawer.Position, bool) {
	if len(h.undoStack) == 0 {
		return 0, false
	}

	h.redoStack = h.push(h.redoStack, current)

	p := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	return p, true
}

// Redo pops the next position and remembers current for undo
func (h *PositionHistory) Redo(current drawer.Position) (drawer.Position, bool) {
	if len(h.redoStack) == 0 {
		return 0, false
	}

	h.undoStack = h.push(h.undoStack, current)

	p := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	return p, true
}

// UndoSize returns the number of items in the undo stack
func (h *PositionHistory) UndoSize() int {
	return len(h.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (h *PositionHistory) RedoSize() int {
	return len(h.redoStack)
}

// Clear clears both stacks
func (h *PositionHistory) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}
