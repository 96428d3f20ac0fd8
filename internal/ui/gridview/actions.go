package gridview

import (
	"github.com/zjrosen/cellvim/internal/config"
	"github.com/zjrosen/cellvim/internal/engine"
)

// DefaultActions returns the registry of named operations the keybinding
// config can target. Action names are what users write in config.yaml.
func DefaultActions() *engine.ActionRegistry {
	reg := engine.NewActionRegistry()

	reg.Register(engine.Action{
		Name:        "align-columns",
		DisplayName: "Align Columns",
		Execute: func(ctx engine.ActionContext) bool {
			ctx.Engine.AlignColumns(nil)
			return true
		},
	})

	reg.Register(engine.Action{
		Name:        "sort-rows",
		DisplayName: "Sort Rows by Current Column",
		Execute: func(ctx engine.ActionContext) bool {
			ctx.Engine.SortRows(ctx.Engine.Cursor().Column, false)
			return true
		},
	})

	reg.Register(engine.Action{
		Name:        "sort-rows-desc",
		DisplayName: "Sort Rows Descending",
		Execute: func(ctx engine.ActionContext) bool {
			ctx.Engine.SortRows(ctx.Engine.Cursor().Column, true)
			return true
		},
	})

	return reg
}

// keymapFromConfig builds the engine keymap from config entries. Invalid
// modes were rejected by config validation; an empty mode means normal.
func keymapFromConfig(bindings []config.KeybindingConfig) *engine.Keymap {
	km := engine.NewKeymap()
	for _, b := range bindings {
		mode := engine.ModeNormal
		if b.Mode != "" {
			if m, ok := engine.ParseMode(b.Mode); ok {
				mode = m
			}
		}
		km.Bind(mode, b.Key, b.Action)
	}
	return km
}
