package engine

import "github.com/zjrosen/cellvim/internal/grid"

// ActionContext carries everything a custom action needs: the engine,
// the document, and the count prefix in effect when the key fired.
type ActionContext struct {
	Engine   *Engine
	Document grid.Document
	Count    int
}

// Action is a named, rebindable editor operation. Execute returns whether
// the action consumed the key.
type Action struct {
	Name              string
	DisplayName       string
	DefaultKeyBinding string
	Execute           func(ctx ActionContext) bool
}

// ActionRegistry resolves action names for the custom keybinding table.
// It is constructed explicitly and passed by reference, never a process
// global.
type ActionRegistry struct {
	byName map[string]Action
	order  []string
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{byName: make(map[string]Action)}
}

// Register adds or replaces an action.
func (r *ActionRegistry) Register(a Action) {
	if _, exists := r.byName[a.Name]; !exists {
		r.order = append(r.order, a.Name)
	}
	r.byName[a.Name] = a
}

// Get looks up an action by name.
func (r *ActionRegistry) Get(name string) (Action, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns action names in registration order.
func (r *ActionRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Binding maps a key in a mode to an action name. Keys are normalized
// strings with modifiers folded in ("G", "<ctrl+v>").
type Binding struct {
	Mode   Mode
	Key    string
	Action string
}

// Keymap is the host-supplied custom keybinding table. Lookup order is
// insertion order; the first matching binding wins.
type Keymap struct {
	bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(bindings ...Binding) *Keymap {
	return &Keymap{bindings: bindings}
}

// Bind appends a binding.
func (k *Keymap) Bind(mode Mode, key, action string) {
	k.bindings = append(k.bindings, Binding{Mode: mode, Key: key, Action: action})
}

// Lookup returns the action name bound to the key in the mode.
func (k *Keymap) Lookup(mode Mode, key string) (string, bool) {
	if k == nil {
		return "", false
	}
	for _, b := range k.bindings {
		if b.Mode == mode && b.Key == key {
			return b.Action, true
		}
	}
	return "", false
}
