package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one declarative decision test.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Domain selects the codec and decision registry.
	Domain string `yaml:"domain" json:"domain"`

	// Given is the history, oldest first.
	Given []Event `yaml:"given,omitempty" json:"given,omitempty"`

	When Step   `yaml:"when" json:"when"`
	Then Expect `yaml:"then" json:"then"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-" json:"-"`
}

// Event is a serialized domain event.
type Event struct {
	Type string         `yaml:"type" json:"type"`
	Data map[string]any `yaml:"data,omitempty" json:"data,omitempty"`
}

// Step names the decision under test and its arguments.
type Step struct {
	Decision string         `yaml:"decision" json:"decision"`
	Args     map[string]any `yaml:"args,omitempty" json:"args,omitempty"`
}

// Expect is the expected outcome. Error set means failure is expected;
// otherwise the decision must produce exactly Events.
type Expect struct {
	Events []Event `yaml:"events,omitempty" json:"events,omitempty"`
	Error  string  `yaml:"error,omitempty" json:"error,omitempty"`
}

// ExpectsError reports whether the scenario expects the decision to fail.
func (e Expect) ExpectsError() bool {
	return e.Error != ""
}

// Load reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &s, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
// It stops at the first file that fails to load.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
