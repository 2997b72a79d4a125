// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// LoadThemes reads a theme file and merges it over the built-in palettes.
func LoadThemes(path string) (*Themes, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme definitions file: %w", err)
	}

	var themeDefs []ThemeDefinition
	if err := json.Unmarshal(file, &themeDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal theme definitions: %w", err)
	}

	all := make([]ThemeDefinition, 0, len(BuiltinThemes)+len(themeDefs))
	all = append(all, BuiltinThemes...)
	all = append(all, themeDefs...)
	themes, err := NewThemes(all)
	if err != nil {
		return nil, fmt.Errorf("failed to build theme catalog: %w", err)
	}

	log.Printf("Loaded %d theme definitions", len(themeDefs))
	return themes, nil
}
