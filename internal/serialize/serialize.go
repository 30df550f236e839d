// Package serialize renders compiled templates to their output formats.
package serialize

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cfnlite/cfnlite"
)

// ToJSON serializes the template to indented JSON. Map keys come out sorted,
// so output is deterministic and diffable.
func ToJSON(t *cfnlite.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML. The intrinsic node types only
// implement JSON marshaling, so the template round-trips through JSON before
// the YAML encoder sees it.
func ToYAML(t *cfnlite.Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("serializing template: %w", err)
	}

	var plain map[string]any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("serializing template: %w", err)
	}

	return yaml.Marshal(plain)
}
