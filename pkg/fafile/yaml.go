package fafile

import (
	"gopkg.in/yaml.v2"
)

// ParseYAML parses a definition from YAML. The keys are those of the JSON
// form.
func ParseYAML(data []byte) (*Definition, error) {
	var w wireDefinition
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return w.definition()
}

// ToYAML encodes a definition as YAML.
func ToYAML(def *Definition) ([]byte, error) {
	return yaml.Marshal(wire(def))
}
