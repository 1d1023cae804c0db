package schema

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON document into a Graph and validates it. The returned
// graph round-trips: Marshal produces a document equivalent to the input for
// any document that passed validation.
func Parse(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	if err := Validate(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseYAML decodes a YAML document into a Graph and validates it.
func ParseYAML(data []byte) (*Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	if err := Validate(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// FromMap decodes a graph arriving as a generic map (the shape document
// stores hand back) and validates it. Unknown keys are rejected so typos in
// operator documents surface instead of being dropped silently.
func FromMap(doc map[string]any) (*Graph, error) {
	var g Graph
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &g,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph document: %w", err)
	}
	if err := Validate(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Marshal serializes the graph back to its JSON document shape.
func (g *Graph) Marshal() ([]byte, error) {
	return json.Marshal(g)
}

// MarshalYAML serializes the graph to YAML, for file-based stores and tooling.
func (g *Graph) MarshalYAMLDocument() ([]byte, error) {
	return yaml.Marshal(g)
}
