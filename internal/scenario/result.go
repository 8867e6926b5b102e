package scenario

import "encoding/json"

// TraceEvent is one numbered event in a trace.
type TraceEvent struct {
	Seq  int64           `json:"seq"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Trace records what a scenario run did: the numbered history, the decision
// and its outcome. Produced events are numbered after the history, as if
// they had been appended to it.
type Trace struct {
	Scenario string       `json:"scenario"`
	Given    []TraceEvent `json:"given"`
	Decision string       `json:"decision"`
	Produced []TraceEvent `json:"produced,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Path is the scenario file, if it was loaded from one.
	Path string `json:"path,omitempty"`

	// Pass is true if the outcome matched the scenario's expectation.
	Pass bool `json:"pass"`

	// Errors describes every mismatch. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Trace Trace `json:"trace"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
		Trace:  Trace{Scenario: name, Given: []TraceEvent{}},
	}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
