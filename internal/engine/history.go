package engine

// DefaultHistoryDepth is the bound on the undo stack. When a new command
// would exceed it the oldest undo entry is evicted, not an error.
const DefaultHistoryDepth = 100

// Command is a reversible unit of work over a document. Execute applies
// the command; Undo restores the exact prior state from a snapshot the
// command captured at construction time, not by recomputing.
type Command interface {
	Execute() error
	Undo() error
}

// History manages the undo and redo stacks. It has no knowledge of grid
// semantics; it is generic over anything exposing Execute/Undo.
type History struct {
	undo     []Command
	redo     []Command
	maxDepth int
}

// NewHistory creates an empty history bounded to the given depth.
// Depths below 1 fall back to DefaultHistoryDepth.
func NewHistory(maxDepth int) *History {
	if maxDepth < 1 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{maxDepth: maxDepth}
}

// Execute runs the command, pushes it onto the undo stack, and clears the
// redo stack. A failed Execute leaves both stacks untouched.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undo = append(h.undo, cmd)
	h.redo = h.redo[:0]
	if len(h.undo) > h.maxDepth {
		// Evict the oldest entry rather than refusing the command.
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:h.maxDepth]
	}
	return nil
}

// Undo reverses the most recent command and moves it to the redo stack.
// Returns false when there is nothing to undo.
func (h *History) Undo() (bool, error) {
	if len(h.undo) == 0 {
		return false, nil
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	err := cmd.Undo()
	h.redo = append(h.redo, cmd)
	return true, err
}

// Redo re-applies the most recently undone command and moves it back to
// the undo stack. Returns false when there is nothing to redo.
func (h *History) Redo() (bool, error) {
	if len(h.redo) == 0 {
		return false, nil
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	err := cmd.Execute()
	h.undo = append(h.undo, cmd)
	return true, err
}

// CanUndo returns true if there are commands to undo.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if there are commands to redo.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Len returns the undo stack depth.
func (h *History) Len() int {
	return len(h.undo)
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
