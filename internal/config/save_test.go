package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// loadBindings reads the keybindings section back for assertions.
func loadBindings(t *testing.T, path string) []KeybindingConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		Keybindings []KeybindingConfig `yaml:"keybindings"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	return parsed.Keybindings
}

func TestSaveKeybindings_NewFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	bindings := []KeybindingConfig{
		{Mode: "normal", Key: "K", Action: "sort-rows"},
		{Mode: "visual", Key: "<ctrl+a>", Action: "align-columns"},
	}

	require.NoError(t, SaveKeybindings(configPath, bindings))
	assert.Equal(t, bindings, loadBindings(t, configPath))
}

func TestSaveKeybindings_PreservesComments(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	initial := `# My cellvim config
auto_reload: true # reload on external change

# timing
sequence_timeout_ms: 1500

keybindings:
  - mode: normal
    key: "K"
    action: sort-rows
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	err := SaveKeybindings(configPath, []KeybindingConfig{
		{Mode: "normal", Key: "J", Action: "align-columns"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	// Comments outside the replaced section survive
	assert.Contains(t, content, "# My cellvim config")
	assert.Contains(t, content, "# reload on external change")
	assert.Contains(t, content, "# timing")
	assert.Contains(t, content, "sequence_timeout_ms: 1500")

	bindings := loadBindings(t, configPath)
	require.Len(t, bindings, 1)
	assert.Equal(t, "align-columns", bindings[0].Action)
}

func TestSaveKeybindings_AppendsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	initial := "auto_reload: false\n"
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	err := SaveKeybindings(configPath, []KeybindingConfig{
		{Key: "x", Action: "delete-cell"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auto_reload: false")

	bindings := loadBindings(t, configPath)
	require.Len(t, bindings, 1)
	assert.Equal(t, "x", bindings[0].Key)
}

func TestSaveKeybindings_EmptyList(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveKeybindings(configPath, nil))
	assert.Empty(t, loadBindings(t, configPath))
}

func TestAddKeybinding(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	existing := []KeybindingConfig{{Mode: "normal", Key: "K", Action: "sort-rows"}}
	require.NoError(t, SaveKeybindings(configPath, existing))

	err := AddKeybinding(configPath, KeybindingConfig{Mode: "normal", Key: "J", Action: "align-columns"}, existing)
	require.NoError(t, err)

	bindings := loadBindings(t, configPath)
	require.Len(t, bindings, 2)
	assert.Equal(t, "align-columns", bindings[1].Action)
}

func TestUpdateKeybinding(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	existing := []KeybindingConfig{
		{Mode: "normal", Key: "K", Action: "sort-rows"},
		{Mode: "normal", Key: "J", Action: "align-columns"},
	}

	err := UpdateKeybinding(configPath, 1, KeybindingConfig{Mode: "visual", Key: "J", Action: "sort-rows"}, existing)
	require.NoError(t, err)

	bindings := loadBindings(t, configPath)
	require.Len(t, bindings, 2)
	assert.Equal(t, "visual", bindings[1].Mode)
}

func TestUpdateKeybinding_OutOfRange(t *testing.T) {
	err := UpdateKeybinding("/tmp/unused.yaml", 5, KeybindingConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDeleteKeybinding(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	existing := []KeybindingConfig{
		{Mode: "normal", Key: "K", Action: "sort-rows"},
		{Mode: "normal", Key: "J", Action: "align-columns"},
	}

	require.NoError(t, DeleteKeybinding(configPath, 0, existing))

	bindings := loadBindings(t, configPath)
	require.Len(t, bindings, 1)
	assert.Equal(t, "J", bindings[0].Key)
}

func TestDeleteKeybinding_OutOfRange(t *testing.T) {
	err := DeleteKeybinding("/tmp/unused.yaml", -1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
