package scenario

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError is one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in a scenario.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// loadSchema compiles the schema in a new context. A cue.Context is not
// safe for concurrent use, so contexts are never shared between calls.
func loadSchema() (*cue.Context, cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return nil, cue.Value{}, fmt.Errorf("compile scenario schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return nil, cue.Value{}, fmt.Errorf("lookup #Scenario: %w", err)
	}
	return ctx, def, nil
}

// Validate checks a scenario against the CUE schema and the rules the
// schema cannot express. It returns ValidationErrors listing every problem.
func Validate(s *Scenario) error {
	errs := validateSchema(s)
	errs = append(errs, validateScenario(s)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSchema(s *Scenario) ValidationErrors {
	ctx, schema, err := loadSchema()
	if err != nil {
		return ValidationErrors{{Message: err.Error()}}
	}

	doc, err := json.Marshal(s)
	if err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("encode scenario: %v", err)}}
	}

	v := ctx.CompileBytes(doc, cue.Filename("scenario.json"))
	if err := v.Err(); err != nil {
		return fromCUE(err)
	}

	if err := schema.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err)
	}
	return nil
}

// fromCUE flattens a CUE error list into field-addressed violations.
func fromCUE(err error) ValidationErrors {
	var out ValidationErrors
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Message: err.Error()})
	}
	return out
}

// fieldPath joins a CUE path, dropping definition selectors such as
// #Scenario so fields read as they appear in the YAML file.
func fieldPath(path []string) string {
	kept := make([]string, 0, len(path))
	for _, sel := range path {
		if strings.HasPrefix(sel, "#") {
			continue
		}
		kept = append(kept, sel)
	}
	return strings.Join(kept, ".")
}

// validateScenario checks rules that span fields.
func validateScenario(s *Scenario) ValidationErrors {
	var errs ValidationErrors
	if s.Then.Error != "" && len(s.Then.Events) > 0 {
		errs = append(errs, ValidationError{
			Field:   "then",
			Message: "events and error are mutually exclusive",
		})
	}
	return errs
}
