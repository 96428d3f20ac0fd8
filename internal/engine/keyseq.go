package engine

import (
	"strings"
	"time"
)

// DefaultSequenceTimeout is how long a pending multi-key sequence survives
// without input before it is discarded.
const DefaultSequenceTimeout = time.Second

// KeyBuffer accumulates pending keys for multi-key commands. The window
// slides: every appended key refreshes the timestamp, so a chain like
// d-i-w stays alive as long as each keystroke lands within the timeout.
type KeyBuffer struct {
	keys      []string
	lastInput time.Time
}

// NewKeyBuffer creates an empty buffer.
func NewKeyBuffer() *KeyBuffer {
	return &KeyBuffer{keys: make([]string, 0, 4)}
}

// Append adds a key and refreshes the input timestamp.
func (b *KeyBuffer) Append(key string, now time.Time) {
	b.keys = append(b.keys, key)
	b.lastInput = now
}

// String returns the buffered keys joined into a sequence string.
func (b *KeyBuffer) String() string {
	return strings.Join(b.keys, "")
}

// Empty reports whether no keys are pending.
func (b *KeyBuffer) Empty() bool {
	return len(b.keys) == 0
}

// Expired reports whether the pending keys have outlived the timeout.
func (b *KeyBuffer) Expired(now time.Time, timeout time.Duration) bool {
	if len(b.keys) == 0 {
		return false
	}
	return now.Sub(b.lastInput) > timeout
}

// Clear discards all pending keys.
func (b *KeyBuffer) Clear() {
	b.keys = b.keys[:0]
}

// sequenceFunc executes a resolved multi-key sequence with the count
// prefix that was in effect when the sequence started.
type sequenceFunc func(e *Engine, count int)

// SequenceRegistry maps complete key sequences (e.g. "gg", "diw") to
// their handlers and answers prefix queries so the dispatcher knows
// whether to keep buffering.
type SequenceRegistry struct {
	seqs map[string]sequenceFunc
}

// NewSequenceRegistry creates an empty registry.
func NewSequenceRegistry() *SequenceRegistry {
	return &SequenceRegistry{seqs: make(map[string]sequenceFunc)}
}

// Register adds a handler for a complete sequence.
func (r *SequenceRegistry) Register(seq string, fn sequenceFunc) {
	r.seqs[seq] = fn
}

// Get retrieves the handler for an exact sequence match.
func (r *SequenceRegistry) Get(seq string) (sequenceFunc, bool) {
	fn, ok := r.seqs[seq]
	return fn, ok
}

// HasPrefix reports whether any registered sequence extends the prefix.
// Longest-match-wins falls out of the dispatch order: exact matches are
// tried before prefix continuation.
func (r *SequenceRegistry) HasPrefix(prefix string) bool {
	for seq := range r.seqs {
		if len(seq) > len(prefix) && strings.HasPrefix(seq, prefix) {
			return true
		}
	}
	return false
}

// Starts reports whether the key can begin a registered sequence.
func (r *SequenceRegistry) Starts(key string) bool {
	for seq := range r.seqs {
		if strings.HasPrefix(seq, key) && len(seq) > len(key) {
			return true
		}
	}
	return false
}
