package catalog

import (
	"fmt"
	"log/slog"

	"github.com/gmkumar2005/disintegrate/internal/scenario"
)

// Outcome is the result of one scenario file.
type Outcome struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`

	// Result is nil when the file could not be loaded or run.
	Result *scenario.Result `json:"-"`
}

// SuiteResult summarizes a batch of scenario runs.
type SuiteResult struct {
	Scenarios []Outcome `json:"scenarios"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
}

// RunFiles loads and runs each scenario file, routing it to its domain.
// Load and execution errors count as failures; RunFiles itself never fails.
func (c *Catalog) RunFiles(paths []string, logger *slog.Logger) *SuiteResult {
	suite := &SuiteResult{Scenarios: make([]Outcome, 0, len(paths))}
	for _, path := range paths {
		suite.Scenarios = append(suite.Scenarios, c.runFile(path, logger))
	}
	suite.Recount()
	return suite
}

func (c *Catalog) runFile(path string, logger *slog.Logger) Outcome {
	s, err := scenario.Load(path)
	if err != nil {
		return Outcome{
			Name:   path,
			Path:   path,
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result, err := c.Run(s, logger)
	if err != nil {
		return Outcome{
			Name:   s.Name,
			Path:   path,
			Errors: []string{fmt.Sprintf("scenario execution failed: %v", err)},
		}
	}

	return Outcome{
		Name:   s.Name,
		Path:   path,
		Pass:   result.Pass,
		Errors: result.Errors,
		Result: result,
	}
}

// Run routes a scenario to the domain it names.
func (c *Catalog) Run(s *scenario.Scenario, logger *slog.Logger) (*scenario.Result, error) {
	d, err := c.Lookup(s.Domain)
	if err != nil {
		return nil, err
	}
	return d.RunScenario(s, logger)
}

// Recount recomputes the totals after outcomes were amended.
func (r *SuiteResult) Recount() {
	r.Passed, r.Failed = 0, 0
	r.Total = len(r.Scenarios)
	for _, o := range r.Scenarios {
		if o.Pass {
			r.Passed++
		} else {
			r.Failed++
		}
	}
}
