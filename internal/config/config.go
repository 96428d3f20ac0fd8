// Package config provides configuration types and defaults for cellvim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/cellvim/internal/log"
)

// KeybindingConfig rebinds a single key to a named action in one mode.
type KeybindingConfig struct {
	Mode   string `mapstructure:"mode"`   // "normal", "insert", "visual", or "command"
	Key    string `mapstructure:"key"`    // normalized key string e.g. "K", "<ctrl+d>"
	Action string `mapstructure:"action"` // registered action name e.g. "align-columns"
}

// Config holds all configuration options for cellvim.
type Config struct {
	AutoReload        bool               `mapstructure:"auto_reload"`
	SequenceTimeoutMs int                `mapstructure:"sequence_timeout_ms"`
	HistoryDepth      int                `mapstructure:"history_depth"`
	UI                UIConfig           `mapstructure:"ui"`
	Theme             ThemeConfig        `mapstructure:"theme"`
	Keybindings       []KeybindingConfig `mapstructure:"keybindings"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar   bool   `mapstructure:"show_status_bar"`
	ShowRowNumbers  bool   `mapstructure:"show_row_numbers"`
	ColumnSeparator string `mapstructure:"column_separator"` // drawn between cells, default "│"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     grid:
	//       header: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "grid.header": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ValidateKeybindings checks keybinding configuration for errors.
// Returns nil if bindings are valid or empty.
func ValidateKeybindings(bindings []KeybindingConfig) error {
	for i, kb := range bindings {
		switch kb.Mode {
		case "", "normal", "insert", "visual", "command":
			// Valid; empty mode defaults to normal
		default:
			return fmt.Errorf("keybinding %d: invalid mode %q (must be \"normal\", \"insert\", \"visual\", or \"command\")", i, kb.Mode)
		}
		if kb.Key == "" {
			return fmt.Errorf("keybinding %d: key is required", i)
		}
		if kb.Action == "" {
			return fmt.Errorf("keybinding %d (%s): action is required", i, kb.Key)
		}
	}
	return nil
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if c.SequenceTimeoutMs < 0 {
		return fmt.Errorf("sequence_timeout_ms must not be negative, got %d", c.SequenceTimeoutMs)
	}
	if c.HistoryDepth < 0 {
		return fmt.Errorf("history_depth must not be negative, got %d", c.HistoryDepth)
	}
	if c.Theme.Mode != "" && c.Theme.Mode != "light" && c.Theme.Mode != "dark" {
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or empty, got %q", c.Theme.Mode)
	}
	return ValidateKeybindings(c.Keybindings)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload:        true,
		SequenceTimeoutMs: 1000,
		HistoryDepth:      100,
		UI: UIConfig{
			ShowStatusBar:   true,
			ShowRowNumbers:  true,
			ColumnSeparator: "│",
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Cellvim Configuration

# Reload the grid when the open file changes on disk
auto_reload: true

# Multi-key sequence timeout in milliseconds (e.g. the gap allowed
# between the two g presses of "gg")
sequence_timeout_ms: 1000

# Maximum number of undo steps kept in memory
history_depth: 100

# UI settings
ui:
  show_status_bar: true    # Show mode/cursor status bar at bottom
  show_row_numbers: true   # Show row numbers in the left gutter
  column_separator: "│"    # Drawn between cells

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default cellvim theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   grid.cursor.bg: "#1A5276"
  #   mode.normal: "#54A0FF"
  #   status.error: "#FF0000"

# Custom keybindings - each entry rebinds a key to a named action.
# Custom bindings win over built-in ones, but only when no multi-key
# sequence is in progress.
# keybindings:
#   - mode: normal
#     key: "K"
#     action: sort-rows
#   - mode: normal
#     key: "<ctrl+a>"
#     action: align-columns
#
# Keybinding options:
#   mode: normal, insert, visual, or command (default: normal)
#   key: normalized key string, modifiers folded in ("G", "<ctrl+v>")
#   action: registered action name
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
