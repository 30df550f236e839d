// Package litefile reads cfnlite input documents: a YAML file with a
// template name and a flat map of resource declarations.
package litefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is one parsed cfnlite file.
type Document struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description"`
	Resources   map[string]map[string]any `yaml:"resources"`
}

// Parse decodes a cfnlite document. The name field is required; it prefixes
// every logical ID in the output template.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cfnlite document: %w", err)
	}

	if doc.Name == "" {
		return nil, fmt.Errorf("a cfnlite file must have a name field")
	}

	return &doc, nil
}

// Load reads and parses a cfnlite file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}
