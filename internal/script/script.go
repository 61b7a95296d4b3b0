// Package script provides a YAML-based batch execution engine: a list of
// natural-language commands run in order against one workbook.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script represents a complete batch definition.
type Script struct {
	Name     string `yaml:"name" json:"name"`
	Workbook string `yaml:"workbook" json:"workbook"`
	Steps    []Step `yaml:"steps" json:"steps"`
}

// Step is a single natural-language command in a script.
type Step struct {
	ID        string `yaml:"id" json:"id"`
	Command   string `yaml:"command" json:"command"`
	Sheet     string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	OnFailure string `yaml:"on_failure,omitempty" json:"onFailure,omitempty"`
}

// StepResult holds the outcome of one completed step.
type StepResult struct {
	StepID   string `json:"stepId"`
	Response string `json:"response"`
	Error    error  `json:"error,omitempty"`
}

// Load reads and parses a script YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("script file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read script file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a script from YAML bytes.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid script YAML: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

func validate(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("script is missing a 'name' field")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("script %q has no steps defined", s.Name)
	}

	seen := make(map[string]bool)
	for i, step := range s.Steps {
		if step.ID == "" {
			return fmt.Errorf("step %d is missing an 'id' field", i+1)
		}
		if seen[step.ID] {
			return fmt.Errorf("duplicate step ID %q — each step must have a unique ID", step.ID)
		}
		seen[step.ID] = true

		if step.Command == "" {
			return fmt.Errorf("step %q is missing a 'command' field", step.ID)
		}
	}

	return nil
}
