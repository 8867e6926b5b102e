package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/event"
)

// Run executes s against a domain's codec and decision registry.
//
// A returned error means the scenario could not run at all: an unknown
// event type, an unknown decision or malformed arguments. Outcome
// mismatches are reported in the Result.
func Run[E event.Event](s *Scenario, codec *event.Codec[E], registry *decision.Registry[E], logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("scenario", s.Name)

	history, err := decodeAll(codec, s.Given)
	if err != nil {
		return nil, fmt.Errorf("given: %w", err)
	}

	args, err := json.Marshal(s.When.Args)
	if err != nil {
		return nil, fmt.Errorf("when: encode args: %w", err)
	}
	runner, err := registry.Build(s.When.Decision, args)
	if err != nil {
		return nil, fmt.Errorf("when: %w", err)
	}

	result := NewResult(s.Name)
	result.Path = s.Path
	result.Trace.Decision = s.When.Decision
	result.Trace.Given, err = traceEvents(codec, event.Number(history), 0)
	if err != nil {
		return nil, err
	}

	produced, runErr := runner.Run(history)
	logger.Debug("decision evaluated",
		"decision", s.When.Decision,
		"history", len(history),
		"produced", len(produced),
		"error", runErr,
	)

	if runErr != nil {
		result.Trace.Error = runErr.Error()
	} else {
		result.Trace.Produced, err = traceEvents(codec, event.Number(produced), int64(len(history)))
		if err != nil {
			return nil, err
		}
	}

	if s.Then.ExpectsError() {
		checkError(result, s.Then.Error, runErr, len(produced))
		return result, nil
	}

	if runErr != nil {
		result.AddError(fmt.Sprintf("expected %d event(s), but the decision failed: %v", len(s.Then.Events), runErr))
		return result, nil
	}

	expected, err := decodeAll(codec, s.Then.Events)
	if err != nil {
		return nil, fmt.Errorf("then: %w", err)
	}
	if err := checkEvents(result, codec, expected, produced); err != nil {
		return nil, err
	}
	return result, nil
}

func checkError(result *Result, expected string, got error, produced int) {
	if got == nil {
		result.AddError(fmt.Sprintf("expected error %q, but the decision produced %d event(s)", expected, produced))
		return
	}
	if got.Error() != expected {
		result.AddError(fmt.Sprintf("error mismatch: expected %q, got %q", expected, got.Error()))
	}
}

// checkEvents compares events by type and canonical payload.
func checkEvents[E event.Event](result *Result, codec *event.Codec[E], expected, produced []E) error {
	if len(expected) != len(produced) {
		result.AddError(fmt.Sprintf("expected %d event(s), got %d", len(expected), len(produced)))
	}

	n := min(len(expected), len(produced))
	for i := 0; i < n; i++ {
		want, err := canonicalEnvelope(codec, expected[i])
		if err != nil {
			return fmt.Errorf("then.events[%d]: %w", i, err)
		}
		got, err := canonicalEnvelope(codec, produced[i])
		if err != nil {
			return fmt.Errorf("produced[%d]: %w", i, err)
		}
		if !bytes.Equal(want, got) {
			result.AddError(fmt.Sprintf("event[%d] mismatch: expected %s, got %s", i, want, got))
		}
	}
	return nil
}

func canonicalEnvelope[E event.Event](codec *event.Codec[E], e E) ([]byte, error) {
	env, err := codec.Encode(e)
	if err != nil {
		return nil, err
	}
	return event.MarshalCanonical(env)
}

func decodeAll[E event.Event](codec *event.Codec[E], events []Event) ([]E, error) {
	out := make([]E, 0, len(events))
	for i, ev := range events {
		e, err := codec.DecodeValue(ev.Type, ev.Data)
		if err != nil {
			return nil, fmt.Errorf("event[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func traceEvents[E event.Event](codec *event.Codec[E], events []event.Persisted[E], offset int64) ([]TraceEvent, error) {
	out := make([]TraceEvent, 0, len(events))
	for _, pe := range events {
		env, err := codec.Encode(pe.Event())
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		out = append(out, TraceEvent{Seq: offset + pe.Seq(), Type: env.Type, Data: env.Data})
	}
	return out, nil
}
