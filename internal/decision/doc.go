// Package decision defines the unit under test: a pure piece of business
// logic that declares the state it needs and turns that state into new
// events or a domain error.
//
// Evaluate is the single fold-then-process step shared by the test harness
// and the scenario runner. Execute runs the same step against an event log
// and appends what the decision produced.
//
// Registry maps decision names to factories that build a decision from
// JSON arguments; scenarios and the CLI use it to look decisions up by name.
package decision
