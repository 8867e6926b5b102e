package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/gmkumar2005/disintegrate/internal/event"
)

// AssertGolden compares a result's trace against
// testdata/golden/<scenario name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/scenario -update
func AssertGolden(t *testing.T, result *Result) error {
	t.Helper()

	data, err := GoldenBytes(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, result.Name, data)
	return nil
}

// GoldenBytes returns the canonical JSON of a result's trace, the content of
// its golden file.
func GoldenBytes(result *Result) ([]byte, error) {
	return event.MarshalCanonical(result.Trace)
}
