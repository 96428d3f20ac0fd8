package engine

import (
	"regexp"

	"github.com/zjrosen/cellvim/internal/grid"
)

// searchState tracks the incremental search: the live pattern, the full
// match list for n/N navigation, and whether a committed search is active.
type searchState struct {
	pattern string
	matches []grid.Position
	active  bool
}

// runSearch re-runs the search for the given pattern and moves the cursor
// to the first match. Called on every Command-mode keystroke while in the
// Search submode. A pattern that fails to compile degrades to literal
// matching; the document port only ever sees patterns it can trust.
func (e *Engine) runSearch(pattern string) {
	e.search.pattern = pattern
	e.search.active = false
	if pattern == "" {
		e.search.matches = nil
	} else {
		_, err := regexp.Compile(pattern)
		e.search.matches = e.doc.FindMatches(pattern, err == nil)
	}
	e.emit(Effect{Kind: EffectSearchPatternChanged, Text: pattern})
	if len(e.search.matches) > 0 {
		e.setCursor(e.search.matches[0])
	}
}

// commitSearch marks the current pattern active for n/N navigation.
func (e *Engine) commitSearch() {
	e.search.active = e.search.pattern != ""
	if e.search.active {
		e.emit(Effect{Kind: EffectSearchActivated, Text: e.search.pattern})
	}
}

// clearSearch drops the pattern and match list.
func (e *Engine) clearSearch() {
	e.search = searchState{}
	e.emit(Effect{Kind: EffectSearchPatternChanged, Text: ""})
}

// nextMatch moves to the closest match strictly after (forward) or before
// (backward) the cursor in row-major order, wrapping around. No-op when
// no search is active.
func (e *Engine) nextMatch(forward bool) {
	if len(e.search.matches) == 0 {
		return
	}
	if forward {
		for _, m := range e.search.matches {
			if positionAfter(m, e.cursor) {
				e.setCursor(m)
				return
			}
		}
		e.setCursor(e.search.matches[0])
		return
	}
	for i := len(e.search.matches) - 1; i >= 0; i-- {
		if positionAfter(e.cursor, e.search.matches[i]) {
			e.setCursor(e.search.matches[i])
			return
		}
	}
	e.setCursor(e.search.matches[len(e.search.matches)-1])
}

// positionAfter reports whether a comes after b in row-major order.
func positionAfter(a, b grid.Position) bool {
	if a.Row != b.Row {
		return a.Row > b.Row
	}
	return a.Column > b.Column
}
