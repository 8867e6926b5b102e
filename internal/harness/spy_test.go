package harness

import (
	"fmt"
	"testing"
)

// errAborted is the panic value spyT uses to stop a test function the way
// runtime.Goexit stops a real one.
var errAborted = fmt.Errorf("spy: test aborted")

// spyT records failures instead of failing the enclosing test.
type spyT struct {
	testing.TB
	failed  bool
	aborted bool
	logs    []string
}

func (s *spyT) Helper()      {}
func (s *spyT) Name() string { return "spy" }
func (s *spyT) Failed() bool { return s.failed }
func (s *spyT) Fail()        { s.failed = true }

func (s *spyT) Errorf(format string, args ...any) {
	s.failed = true
	s.logs = append(s.logs, fmt.Sprintf(format, args...))
}

func (s *spyT) Fatalf(format string, args ...any) {
	s.Errorf(format, args...)
	s.FailNow()
}

func (s *spyT) FailNow() {
	s.failed = true
	s.aborted = true
	panic(errAborted)
}

// runSpy runs fn against a fresh spyT and returns it once fn returns or aborts.
func runSpy(fn func(t testing.TB)) (spy *spyT) {
	spy = &spyT{}
	defer func() {
		if r := recover(); r != nil && r != errAborted {
			panic(r)
		}
	}()
	fn(spy)
	return spy
}
