// Package config provides configuration types, defaults, and persistence for cellvim.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveKeybindings updates the keybindings section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveKeybindings(configPath string, bindings []KeybindingConfig) error {
	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	bindingsNode := buildKeybindingsNode(bindings)

	// Update or create the keybindings section
	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "keybindings"},
						bindingsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace keybindings key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "keybindings" {
					root.Content[i+1] = bindingsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "keybindings"},
					bindingsNode,
				)
			}
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the target directory, then renames
// it into place so readers never observe a half-written config.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".cellvim.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildKeybindingsNode creates a yaml.Node representing the keybindings array.
func buildKeybindingsNode(bindings []KeybindingConfig) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(bindings)),
	}

	for _, kb := range bindings {
		kbNode := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, 6),
		}

		if kb.Mode != "" {
			kbNode.Content = append(kbNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "mode"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: kb.Mode},
			)
		}

		kbNode.Content = append(kbNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "key"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: kb.Key, Style: yaml.DoubleQuotedStyle},
			&yaml.Node{Kind: yaml.ScalarNode, Value: "action"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: kb.Action},
		)

		node.Content = append(node.Content, kbNode)
	}

	return node
}

// UpdateKeybinding replaces a single keybinding and saves.
func UpdateKeybinding(configPath string, index int, newBinding KeybindingConfig, all []KeybindingConfig) error {
	if index < 0 || index >= len(all) {
		return fmt.Errorf("keybinding index %d out of range (have %d bindings)", index, len(all))
	}

	updated := make([]KeybindingConfig, len(all))
	copy(updated, all)
	updated[index] = newBinding

	return SaveKeybindings(configPath, updated)
}

// DeleteKeybinding removes a keybinding at the given index and saves.
func DeleteKeybinding(configPath string, index int, all []KeybindingConfig) error {
	if index < 0 || index >= len(all) {
		return fmt.Errorf("keybinding index %d out of range (have %d bindings)", index, len(all))
	}

	updated := make([]KeybindingConfig, 0, len(all)-1)
	for i, kb := range all {
		if i != index {
			updated = append(updated, kb)
		}
	}

	return SaveKeybindings(configPath, updated)
}

// AddKeybinding appends a new keybinding and saves.
func AddKeybinding(configPath string, newBinding KeybindingConfig, existing []KeybindingConfig) error {
	bindings := append(existing, newBinding)
	return SaveKeybindings(configPath, bindings)
}
