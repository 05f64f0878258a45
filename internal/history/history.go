// Package history keeps bounded undo and redo stacks of board snapshots.
package history

import "github.com/daap14/tiermaker/internal/board"

// DefaultCapacity is the number of snapshots kept in each direction.
const DefaultCapacity = 30

// History holds the past and future snapshots of a board. Stored snapshots are
// deep copies and are never modified after being pushed.
type History struct {
	capacity int
	past     []board.Board
	future   []board.Board
}

// New creates an empty History. A capacity below 1 falls back to DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Capacity returns the per-direction snapshot limit.
func (h *History) Capacity() int {
	return h.capacity
}

// Record stores prev as the most recent past state and discards the redo timeline.
func (h *History) Record(prev board.Board) {
	h.past = push(h.past, prev.Clone(), h.capacity)
	h.future = nil
}

// Undo pops the latest past snapshot, parking current on the redo stack.
// It returns false when there is nothing to undo.
func (h *History) Undo(current board.Board) (board.Board, bool) {
	if len(h.past) == 0 {
		return board.Board{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = push(h.future, current.Clone(), h.capacity)
	return prev.Clone(), true
}

// Redo pops the snapshot most recently displaced by Undo, parking current on
// the undo stack. It returns false when there is nothing to redo.
func (h *History) Redo(current board.Board) (board.Board, bool) {
	if len(h.future) == 0 {
		return board.Board{}, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = push(h.past, current.Clone(), h.capacity)
	return next.Clone(), true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

// CanUndo reports whether a past snapshot is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a future snapshot is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// PastLen returns the number of undoable snapshots.
func (h *History) PastLen() int { return len(h.past) }

// FutureLen returns the number of redoable snapshots.
func (h *History) FutureLen() int { return len(h.future) }

// push appends s and evicts from the front until len <= limit.
func push(stack []board.Board, s board.Board, limit int) []board.Board {
	stack = append(stack, s)
	if over := len(stack) - limit; over > 0 {
		trimmed := make([]board.Board, limit)
		copy(trimmed, stack[over:])
		stack = trimmed
	}
	return stack
}
