package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/cellvim/internal/grid"
)

// testClock is an injectable time source for sequence-timeout tests.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time           { return c.current }
func (c *testClock) Advance(d time.Duration)  { c.current = c.current.Add(d) }

func newTestEngine(rows [][]string) (*Engine, *grid.MemoryDocument, *testClock) {
	doc := grid.NewMemoryDocument(rows)
	clock := &testClock{current: time.Unix(1000, 0)}
	e := New(doc, WithClock(clock.Now))
	return e, doc, clock
}

// press feeds keys and collects every raised effect.
func press(e *Engine, keys ...string) []Effect {
	var effects []Effect
	for _, k := range keys {
		_, effs := e.HandleKey(k)
		effects = append(effects, effs...)
	}
	return effects
}

func effectsOfKind(effects []Effect, kind EffectKind) []Effect {
	var out []Effect
	for _, eff := range effects {
		if eff.Kind == kind {
			out = append(out, eff)
		}
	}
	return out
}

func TestMovement_ClampsAtEdges(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})

	press(e, "k", "h")
	require.Equal(t, grid.Position{Row: 0, Column: 0}, e.Cursor())

	press(e, "j", "j", "j", "l", "l", "l", "l")
	require.Equal(t, grid.Position{Row: 1, Column: 2}, e.Cursor())
}

func TestMovement_CountPrefix(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"a", "b", "c", "d", "e"}
	}
	e, _, _ := newTestEngine(rows)

	press(e, "5", "j")
	require.Equal(t, 5, e.Cursor().Row)

	press(e, "1", "0", "j")
	require.Equal(t, 15, e.Cursor().Row)

	press(e, "3", "l")
	require.Equal(t, 3, e.Cursor().Column)

	// Bare 0 is line start, not a count.
	press(e, "0")
	require.Equal(t, 0, e.Cursor().Column)
}

func TestMovement_RowCommands(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"", "x", ""},
		{"D", "E", "F"},
	})

	press(e, "$")
	require.Equal(t, grid.Position{Row: 0, Column: 2}, e.Cursor())

	press(e, "L")
	require.Equal(t, grid.Position{Row: 0, Column: 1}, e.Cursor())

	press(e, "H")
	require.Equal(t, grid.Position{Row: 0, Column: 0}, e.Cursor())

	press(e, "G")
	require.Equal(t, 1, e.Cursor().Row)

	press(e, "g", "g")
	require.Equal(t, 0, e.Cursor().Row)
}

func TestKeySequence_Timeout(t *testing.T) {
	e, _, clock := newTestEngine([][]string{
		{"A"}, {"B"}, {"C"},
	})
	press(e, "G")
	require.Equal(t, 2, e.Cursor().Row)

	// g then a stale g must not fire gg; the second g re-buffers fresh.
	press(e, "g")
	clock.Advance(1100 * time.Millisecond)
	press(e, "g")
	require.Equal(t, 2, e.Cursor().Row)
	require.Equal(t, "g", e.PendingKeys())

	// A third g within the window completes the fresh sequence.
	press(e, "g")
	require.Equal(t, 0, e.Cursor().Row)
}

func TestKeySequence_SlidingWindow(t *testing.T) {
	e, doc, clock := newTestEngine([][]string{
		{"A", "B"},
	})
	// Each keystroke of d-i-w refreshes the window, so the chain
	// survives even though the total exceeds one timeout.
	press(e, "d")
	clock.Advance(700 * time.Millisecond)
	press(e, "i")
	clock.Advance(700 * time.Millisecond)
	press(e, "w")

	v, _ := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "", v)
}

func TestDelete_EqualsYankPlusRemove(t *testing.T) {
	rows := [][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	}

	// dd leaves the same register yy would have.
	yanker, _, _ := newTestEngine(rows)
	press(yanker, "y", "y")
	want, ok := yanker.Register().Get()
	require.True(t, ok)

	deleter, _, _ := newTestEngine(rows)
	press(deleter, "d", "d")
	got, ok := deleter.Register().Get()
	require.True(t, ok)
	require.Equal(t, want, got)

	// x and diw leave the same register yiw would have.
	yanker2, _, _ := newTestEngine(rows)
	press(yanker2, "y", "i", "w")
	wantCell, _ := yanker2.Register().Get()

	for _, keys := range [][]string{{"x"}, {"d", "i", "w"}, {"d", "a", "w"}} {
		e, _, _ := newTestEngine(rows)
		press(e, keys...)
		gotCell, ok := e.Register().Get()
		require.True(t, ok)
		require.Equal(t, wantCell, gotCell)
	}
}

func TestDeleteRow_RemovesAndYanks(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	press(e, "d", "d")

	require.Equal(t, 1, doc.RowCount())
	content, ok := e.Register().Get()
	require.True(t, ok)
	require.Equal(t, grid.ShapeLine, content.Shape)
	require.Equal(t, [][]string{{"A", "B", "C"}}, content.Values)

	press(e, "u")
	require.Equal(t, 2, doc.RowCount())
	v, _ := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "A", v)
}

func TestScenario_LineYankPaste(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	press(e, "y", "y", "j", "p")

	require.Equal(t, 3, doc.RowCount())
	require.Equal(t, []string{"A", "B", "C"}, doc.Rows()[2])
	require.Equal(t, 2, e.Cursor().Row)
}

func TestScenario_BlockPasteBefore(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	e.Register().Set(YankedContent{
		Values:  [][]string{{"X"}, {"Y"}},
		Shape:   grid.ShapeBlock,
		Rows:    2,
		Columns: 1,
	})
	press(e, "l", "P")

	require.Equal(t, 4, doc.ColumnCount(0))
	require.Equal(t, []string{"A", "X", "B", "C"}, doc.Rows()[0])
	require.Equal(t, []string{"D", "Y", "E", "F"}, doc.Rows()[1])
	require.Equal(t, grid.Position{Row: 0, Column: 1}, e.Cursor())
}

func TestScenario_PasteTiling(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"1", "2", "x"},
		{"3", "4", "x"},
		{"x", "x", "x"},
	})

	// Yank the 2x2 block with a character visual selection.
	press(e, "v", "j", "l", "y")
	content, _ := e.Register().Get()
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, content.Values)

	// Paste over a 3x3 selection: the register wraps.
	press(e, "g", "g", "H", "v", "2", "j", "2", "l", "p")
	require.Equal(t, []string{"1", "2", "1"}, doc.Rows()[0])
	require.Equal(t, []string{"3", "4", "3"}, doc.Rows()[1])
	require.Equal(t, []string{"1", "2", "1"}, doc.Rows()[2])
}

func TestPaste_CharacterGrowsDocument(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B"},
		{"C", "D"},
	})
	press(e, "v", "j", "l", "y", "j", "l", "p")

	require.Equal(t, 3, doc.RowCount())
	require.Equal(t, 3, doc.ColumnCount(1))
	require.Equal(t, "A", doc.Rows()[1][1])
	require.Equal(t, "D", doc.Rows()[2][2])

	press(e, "u")
	require.Equal(t, 2, doc.RowCount())
	require.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, doc.Rows())
}

func TestPaste_EmptyRegisterIsHandledNoop(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"A"}})
	handled, _ := e.HandleKey("p")

	require.True(t, handled)
	require.Equal(t, [][]string{{"A"}}, doc.Rows())
	require.False(t, e.CanUndo())
}

func TestUndo_EmptyHistoryIsHandledNoop(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"A"}})
	handled, _ := e.HandleKey("u")
	require.True(t, handled)
}

func TestVisual_LineDeleteRemovesRows(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B"},
		{"C", "D"},
		{"E", "F"},
	})
	press(e, "V", "j", "d")

	require.Equal(t, 1, doc.RowCount())
	require.Equal(t, []string{"E", "F"}, doc.Rows()[0])
	require.Equal(t, ModeNormal, e.Mode())

	content, _ := e.Register().Get()
	require.Equal(t, grid.ShapeLine, content.Shape)
	require.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, content.Values)

	press(e, "u")
	require.Equal(t, [][]string{{"A", "B"}, {"C", "D"}, {"E", "F"}}, doc.Rows())
}

func TestVisual_BlockDeleteRemovesColumns(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	press(e, "<ctrl+v>", "l", "d")

	require.Equal(t, [][]string{{"C"}, {"F"}}, doc.Rows())

	content, _ := e.Register().Get()
	require.Equal(t, grid.ShapeBlock, content.Shape)
	require.Equal(t, [][]string{{"A", "B"}, {"D", "E"}}, content.Values)

	press(e, "u")
	require.Equal(t, [][]string{{"A", "B", "C"}, {"D", "E", "F"}}, doc.Rows())
}

func TestVisual_HighlightedRederived(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	press(e, "v", "j", "l")
	require.Len(t, e.Highlighted(), 4)

	// Shrinking the rectangle must not leave stale highlights.
	press(e, "h")
	require.Len(t, e.Highlighted(), 2)

	press(e, "<escape>")
	require.Empty(t, e.Highlighted())
}

func TestVisual_SelectionNormalization(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
		{"G", "H", "I"},
	})
	press(e, "2", "j", "2", "l", "v", "g", "g", "H")

	sel, ok := e.Selection()
	require.True(t, ok)
	require.Equal(t, 0, sel.StartRow())
	require.Equal(t, 2, sel.EndRow())
	require.Equal(t, 0, sel.StartColumn())
	require.Equal(t, 2, sel.EndColumn())
}

func TestSearch_Incremental(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"alpha", "beta"},
		{"gamma", "alphabet"},
	})
	effects := press(e, "/", "a", "l")
	require.Equal(t, ModeCommand, e.Mode())
	require.Equal(t, "/al", e.CommandLine())
	require.Equal(t, grid.Position{Row: 0, Column: 0}, e.Cursor())
	require.NotEmpty(t, effectsOfKind(effects, EffectSearchPatternChanged))

	effects = press(e, "<enter>")
	require.Equal(t, ModeNormal, e.Mode())
	require.Len(t, effectsOfKind(effects, EffectSearchActivated), 1)

	press(e, "n")
	require.Equal(t, grid.Position{Row: 1, Column: 1}, e.Cursor())
	press(e, "n")
	require.Equal(t, grid.Position{Row: 0, Column: 0}, e.Cursor())
	press(e, "N")
	require.Equal(t, grid.Position{Row: 1, Column: 1}, e.Cursor())
}

func TestSearch_InvalidRegexFallsBackToLiteral(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"a[b", "plain"},
	})
	press(e, "/", "a", "[", "b")
	require.Equal(t, []grid.Position{{Row: 0, Column: 0}}, e.SearchMatches())
}

func TestSearch_EscapeClearsState(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"alpha"}})
	press(e, "/", "a", "l", "<escape>")
	require.Equal(t, ModeNormal, e.Mode())
	require.Empty(t, e.SearchPattern())
	require.Empty(t, e.SearchMatches())
}

func TestExCommand_SaveAndQuit(t *testing.T) {
	cases := []struct {
		name  string
		keys  []string
		saves int
		quits int
		force bool
	}{
		{name: "write", keys: []string{":", "w", "<enter>"}, saves: 1},
		{name: "write long", keys: []string{":", "w", "r", "i", "t", "e", "<enter>"}, saves: 1},
		{name: "quit", keys: []string{":", "q", "<enter>"}, quits: 1},
		{name: "force quit", keys: []string{":", "q", "!", "<enter>"}, quits: 1, force: true},
		{name: "save quit", keys: []string{":", "w", "q", "<enter>"}, saves: 1, quits: 1},
		{name: "x", keys: []string{":", "x", "<enter>"}, saves: 1, quits: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _ := newTestEngine([][]string{{"A"}})
			effects := press(e, tc.keys...)

			require.Len(t, effectsOfKind(effects, EffectSaveRequested), tc.saves)
			quits := effectsOfKind(effects, EffectQuitRequested)
			require.Len(t, quits, tc.quits)
			if tc.quits > 0 {
				require.Equal(t, tc.force, quits[0].Force)
			}
			require.Equal(t, ModeNormal, e.Mode())
		})
	}
}

func TestExCommand_UnknownSurfacesMessage(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"A"}})
	effects := press(e, ":", "n", "o", "p", "e", "<enter>")

	msgs := effectsOfKind(effects, EffectStatusMessage)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Text, "nope")
	require.Empty(t, effectsOfKind(effects, EffectSaveRequested))
	require.Empty(t, effectsOfKind(effects, EffectQuitRequested))
}

func TestInsert_CommitEditsCell(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"old", "B"}})
	press(e, "i")
	require.Equal(t, ModeInsert, e.Mode())
	seed, caret := e.InsertSeed()
	require.Equal(t, "old", seed)
	require.Equal(t, CaretStart, caret)

	e.CommitInsert("new")
	require.Equal(t, ModeNormal, e.Mode())
	v, _ := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "new", v)

	press(e, "u")
	v, _ = doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "old", v)
}

func TestInsert_EscapeCancels(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"old"}})
	press(e, "i", "<escape>")
	require.Equal(t, ModeNormal, e.Mode())
	v, _ := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "old", v)
	require.False(t, e.CanUndo())
}

func TestInsert_OpenLineBelow(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B"},
		{"C", "D"},
	})
	press(e, "o")
	require.Equal(t, ModeInsert, e.Mode())
	require.Equal(t, 3, doc.RowCount())
	require.Equal(t, grid.Position{Row: 1, Column: 0}, e.Cursor())

	e.CommitInsert("mid")
	require.Equal(t, "mid", doc.Rows()[1][0])
	require.Equal(t, []string{"C", "D"}, doc.Rows()[2])
}

func TestInsert_ChangeWord(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"old", "B"}})
	press(e, "c", "i", "w")
	require.Equal(t, ModeInsert, e.Mode())

	// Delete = yank + remove holds for ciw too.
	content, _ := e.Register().Get()
	require.Equal(t, [][]string{{"old"}}, content.Values)

	e.CommitInsert("new")
	v, _ := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.Equal(t, "new", v)
}

func TestVisual_BulkEditCommit(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
	press(e, "v", "j", "l", "i")
	require.Equal(t, ModeInsert, e.Mode())

	rng, original, ok := e.PendingBulkEdit()
	require.True(t, ok)
	require.Equal(t, "A", original)
	require.Equal(t, 2, rng.Rows())
	require.Equal(t, 2, rng.Columns())

	e.CommitBulkEdit("Z")
	require.Equal(t, [][]string{{"Z", "Z", "C"}, {"Z", "Z", "F"}}, doc.Rows())

	press(e, "u")
	require.Equal(t, [][]string{{"A", "B", "C"}, {"D", "E", "F"}}, doc.Rows())
}

func TestDotRepeat_DeleteCell(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"A", "B", "C"}})
	press(e, "x", "l", ".")

	require.Equal(t, []string{"", "", "C"}, doc.Rows()[0])
}

func TestDotRepeat_DeleteRows(t *testing.T) {
	rows := [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}
	e, doc, _ := newTestEngine(rows)
	press(e, "2", "d", "d", ".")

	require.Equal(t, [][]string{{"5"}}, doc.Rows())
}

func TestDotRepeat_Paste(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{
		{"A", "B"},
	})
	press(e, "y", "y", "p", ".")

	require.Equal(t, 3, doc.RowCount())
	require.Equal(t, []string{"A", "B"}, doc.Rows()[2])
}

func TestDotRepeat_NothingRecordedIsNoop(t *testing.T) {
	e, doc, _ := newTestEngine([][]string{{"A"}})
	handled, _ := e.HandleKey(".")
	require.True(t, handled)
	require.Equal(t, [][]string{{"A"}}, doc.Rows())
}

func TestEffects_TabAndScroll(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"A"}})

	effects := press(e, "g", "t")
	require.Len(t, effectsOfKind(effects, EffectNextTabRequested), 1)

	effects = press(e, "g", "T")
	require.Len(t, effectsOfKind(effects, EffectPrevTabRequested), 1)

	effects = press(e, "z", "z")
	require.Len(t, effectsOfKind(effects, EffectScrollToCenter), 1)
}

func TestModeChanged_EmittedOncePerSwitch(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"A"}})

	effects := press(e, "v")
	modes := effectsOfKind(effects, EffectModeChanged)
	require.Len(t, modes, 1)
	require.Equal(t, ModeVisual, modes[0].Mode)

	// Same-mode switches are no-ops.
	e.effects = nil
	e.SwitchMode(ModeVisual)
	require.Empty(t, e.takeEffects())
}

func TestCustomKeymap_OverridesBuiltin(t *testing.T) {
	actions := NewActionRegistry()
	fired := 0
	actions.Register(Action{
		Name:        "jump-top",
		DisplayName: "Jump to top",
		Execute: func(ctx ActionContext) bool {
			fired++
			ctx.Engine.setCursor(grid.Position{})
			return true
		},
	})
	keymap := NewKeymap()
	keymap.Bind(ModeNormal, "J", "jump-top")

	doc := grid.NewMemoryDocument([][]string{{"A"}, {"B"}})
	e := New(doc, WithKeymap(keymap), WithActions(actions))
	press(e, "j", "J")

	require.Equal(t, 1, fired)
	require.Equal(t, 0, e.Cursor().Row)
}

func TestCustomKeymap_ActionEffectsReachCaller(t *testing.T) {
	actions := NewActionRegistry()
	actions.Register(Action{
		Name: "align-columns",
		Execute: func(ctx ActionContext) bool {
			ctx.Engine.AlignColumns(nil)
			return true
		},
	})
	keymap := NewKeymap()
	keymap.Bind(ModeNormal, "K", "align-columns")

	doc := grid.NewMemoryDocument([][]string{
		{"a", "bb"},
		{"ccc", "d"},
	})
	e := New(doc, WithKeymap(keymap), WithActions(actions))

	handled, effects := e.HandleKey("K")
	require.True(t, handled)
	widths := effectsOfKind(effects, EffectColumnWidthsChanged)
	require.Len(t, widths, 1)
	require.Equal(t, []int{0, 1}, widths[0].Columns)
}

func TestAlignColumns_DirectCallReturnsEffects(t *testing.T) {
	e, _, _ := newTestEngine([][]string{
		{"a", "bb"},
		{"ccc", "d"},
	})
	effects := e.AlignColumns(nil)
	require.Len(t, effectsOfKind(effects, EffectColumnWidthsChanged), 1)
}

func TestUnhandledKey_ReturnsNotHandled(t *testing.T) {
	e, _, _ := newTestEngine([][]string{{"A"}})
	handled, _ := e.HandleKey("q")
	require.False(t, handled)
}

func TestUndoRedo_Symmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.SliceOfN(
			rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,3}`), 1, 4),
			1, 5,
		).Draw(t, "rows")
		e, doc, _ := newTestEngine(rows)
		original := doc.Rows()

		ops := rapid.SliceOfN(rapid.SampledFrom([][]string{
			{"x"},
			{"d", "d"},
			{"y", "y"},
			{"p"},
			{"d", "i", "w"},
			{"j", "x"},
			{"l", "x"},
		}), 1, 12).Draw(t, "ops")

		executed := 0
		for _, op := range ops {
			before := e.history.Len()
			press(e, op...)
			executed += e.history.Len() - before
		}

		for i := 0; i < executed; i++ {
			press(e, "u")
		}
		require.Equal(t, original, doc.Rows())

		after := doc.Rows()
		for i := 0; i < executed; i++ {
			press(e, "<ctrl+r>")
		}
		_ = after
		for i := 0; i < executed; i++ {
			press(e, "u")
		}
		require.Equal(t, original, doc.Rows())
	})
}
