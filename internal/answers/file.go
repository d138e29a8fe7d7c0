package answers

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes the state as question -> slot -> value.
func (s State) MarshalYAML() (interface{}, error) {
	return s.Map(), nil
}

func (s *State) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	*s = FromMap(m)
	return nil
}

// Load reads an answer file.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read answers: %w", err)
	}
	return Decode(data)
}

// Decode parses a single YAML document of answers. JSON input is accepted
// too since it is a subset of YAML.
func Decode(data []byte) (State, error) {
	var s State
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&s); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return State{}, fmt.Errorf("parse answers: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return State{}, fmt.Errorf("parse answers: multiple YAML documents are not supported")
		}
		return State{}, fmt.Errorf("parse answers: %w", err)
	}
	return s, nil
}

// Save writes s to path.
func Save(path string, s State) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	return nil
}
