// Package gridview hosts the editing engine inside a Bubble Tea program:
// it translates key messages into engine keys, consumes the effects each
// dispatch returns, and renders the grid.
package gridview

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/cellvim/internal/config"
	"github.com/zjrosen/cellvim/internal/engine"
	"github.com/zjrosen/cellvim/internal/grid"
	"github.com/zjrosen/cellvim/internal/log"
	"github.com/zjrosen/cellvim/internal/pubsub"
	"github.com/zjrosen/cellvim/internal/tabfile"
	"github.com/zjrosen/cellvim/internal/watcher"
)

// Model is the Bubble Tea model for one open tabular file.
type Model struct {
	engine *engine.Engine
	doc    *grid.MemoryDocument

	filePath string
	cfg      config.Config

	// saved mirrors the on-disk rows; dirty state is a comparison
	// against it, so undoing back to the saved state clears the marker.
	saved [][]string

	input   textinput.Model
	editing bool

	width  int
	height int
	topRow int

	statusMsg string
	quitting  bool

	watcher  *watcher.Watcher
	listener *pubsub.ContinuousListener[string]
	cancel   context.CancelFunc
}

// New loads the file and builds the model. The watcher is started only
// when auto_reload is enabled.
func New(filePath string, cfg config.Config) (*Model, error) {
	doc, err := tabfile.Load(filePath)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Prompt = ""

	m := &Model{
		doc:      doc,
		filePath: filePath,
		cfg:      cfg,
		saved:    doc.Rows(),
		input:    input,
	}
	m.engine = m.buildEngine(doc)

	if cfg.AutoReload {
		w, err := watcher.New(watcher.DefaultConfig(filePath))
		if err != nil {
			log.ErrorErr(log.CatUI, "Failed to create file watcher", err, "path", filePath)
		} else {
			m.watcher = w
			ctx, cancel := context.WithCancel(context.Background())
			m.cancel = cancel
			m.listener = pubsub.NewContinuousListener(ctx, w.Broker())
		}
	}

	return m, nil
}

// buildEngine wires an engine over the document with the configured
// timeout, history depth, and custom keybindings.
func (m *Model) buildEngine(doc grid.Document) *engine.Engine {
	opts := []engine.Option{
		engine.WithActions(DefaultActions()),
		engine.WithKeymap(keymapFromConfig(m.cfg.Keybindings)),
	}
	if m.cfg.SequenceTimeoutMs > 0 {
		opts = append(opts, engine.WithTimeout(time.Duration(m.cfg.SequenceTimeoutMs)*time.Millisecond))
	}
	if m.cfg.HistoryDepth > 0 {
		opts = append(opts, engine.WithHistoryDepth(m.cfg.HistoryDepth))
	}
	return engine.New(doc, opts...)
}

// Init starts the watcher subscription when auto-reload is on.
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(); err != nil {
		log.ErrorErr(log.CatUI, "Failed to start file watcher", err, "path", m.filePath)
		return nil
	}
	return m.listener.Listen()
}

// Update routes messages: window sizing, file-change notifications, and
// key dispatch into the engine.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case pubsub.Event[string]:
		if msg.Type == pubsub.FileChangedEvent {
			m.handleFileChanged()
		}
		return m, m.listener.Listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey feeds one key into the engine, or into the text input while
// an Insert-mode edit is in progress.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditingKey(msg)
	}

	m.statusMsg = ""
	key := keyString(msg)
	_, effects := m.engine.HandleKey(key)
	cmd := m.applyEffects(effects)
	m.ensureCursorVisible()
	return m, cmd
}

// handleEditingKey owns literal typing during Insert mode. Enter commits
// through the engine; Escape cancels the edit.
func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		effects := m.engine.CommitInsert(m.input.Value())
		cmd := m.applyEffects(effects)
		return m, cmd
	case "esc":
		_, effects := m.engine.HandleKey(engine.KeyEscape)
		cmd := m.applyEffects(effects)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEffects consumes the effect batch one dispatch produced.
func (m *Model) applyEffects(effects []engine.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff.Kind {
		case engine.EffectModeChanged:
			m.onModeChanged(eff.Mode)

		case engine.EffectSaveRequested:
			m.save()

		case engine.EffectQuitRequested:
			if !eff.Force && m.isDirty() {
				m.statusMsg = "unsaved changes (use :q! to discard)"
				continue
			}
			m.quitting = true
			cmds = append(cmds, tea.Quit)

		case engine.EffectScrollToCenter:
			m.centerCursor()

		case engine.EffectStatusMessage:
			m.statusMsg = eff.Text

		case engine.EffectPrevTabRequested, engine.EffectNextTabRequested:
			m.statusMsg = "no other tabs open"

		case engine.EffectYankPerformed:
			if content, ok := m.engine.Register().Get(); ok {
				m.statusMsg = fmt.Sprintf("yanked %dx%d (%s)", content.Rows, content.Columns, content.Shape)
			}

		case engine.EffectSearchActivated:
			if n := len(m.engine.SearchMatches()); n == 0 {
				m.statusMsg = "no matches: " + m.engine.SearchPattern()
			} else {
				m.statusMsg = fmt.Sprintf("%d matches", n)
			}

		case engine.EffectCursorMoved, engine.EffectSearchPatternChanged, engine.EffectColumnWidthsChanged:
			// Rendered from engine state each frame.
		}
	}
	return tea.Batch(cmds...)
}

// onModeChanged syncs the text input with Insert-mode transitions.
func (m *Model) onModeChanged(mode engine.Mode) {
	if mode == engine.ModeInsert {
		seed, caret := m.engine.InsertSeed()
		m.input.SetValue(seed)
		if caret == engine.CaretEnd {
			m.input.CursorEnd()
		} else {
			m.input.CursorStart()
		}
		m.input.Focus()
		m.editing = true
		return
	}
	if m.editing {
		m.input.Blur()
		m.input.SetValue("")
		m.editing = false
	}
}

// handleFileChanged reloads the document from disk. Local unsaved edits
// win over external ones.
func (m *Model) handleFileChanged() {
	if m.isDirty() {
		m.statusMsg = "file changed on disk (unsaved local edits kept)"
		return
	}

	doc, err := tabfile.Load(m.filePath)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to reload file", err, "path", m.filePath)
		m.statusMsg = "reload failed: " + err.Error()
		return
	}

	// External reload resets history; the undo stack refers to rows
	// that no longer exist.
	m.doc = doc
	m.saved = doc.Rows()
	m.engine = m.buildEngine(doc)
	m.ensureCursorVisible()
	m.statusMsg = "reloaded from disk"
	log.Info(log.CatUI, "Reloaded file after external change", "path", m.filePath)
}

// save writes the document and refreshes the dirty baseline.
func (m *Model) save() {
	if err := tabfile.Save(m.filePath, m.doc); err != nil {
		m.statusMsg = "save failed: " + err.Error()
		return
	}
	m.saved = m.doc.Rows()
	m.statusMsg = "written " + m.filePath
}

// isDirty compares the document against the last saved rows.
func (m *Model) isDirty() bool {
	rows := m.doc.Rows()
	if len(rows) != len(m.saved) {
		return true
	}
	for i, row := range rows {
		if len(row) != len(m.saved[i]) {
			return true
		}
		for j, cell := range row {
			if cell != m.saved[i][j] {
				return true
			}
		}
	}
	return false
}

// visibleRows returns how many grid rows fit under the chrome.
func (m *Model) visibleRows() int {
	rows := m.height - 2 // status bar + command/edit line
	if m.cfg.UI.ShowStatusBar && rows < 1 {
		rows = 1
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureCursorVisible scrolls the viewport so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	if m.height == 0 {
		return
	}
	cursor := m.engine.Cursor()
	visible := m.visibleRows()
	if cursor.Row < m.topRow {
		m.topRow = cursor.Row
	}
	if cursor.Row >= m.topRow+visible {
		m.topRow = cursor.Row - visible + 1
	}
	if m.topRow < 0 {
		m.topRow = 0
	}
}

// centerCursor positions the cursor row in the middle of the viewport.
func (m *Model) centerCursor() {
	if m.height == 0 {
		return
	}
	m.topRow = m.engine.Cursor().Row - m.visibleRows()/2
	if m.topRow < 0 {
		m.topRow = 0
	}
}

// Close stops the watcher subscription.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
}
