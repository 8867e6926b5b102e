// Package harness tests decisions with a Given / When / Then protocol.
//
//	harness.Given[cart.Contents](t,
//		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
//	).
//		When(cart.AddItem{ItemID: "p2", CartID: "c1"}).
//		Then(cart.ItemAdded{ItemID: "p2", CartID: "c1"})
//
// Given records a history. When folds it into the decision's state, numbering
// events 1..N in the order supplied, and calls Process exactly once. Exactly
// one terminal assertion then checks the outcome:
//
//   - Then: the decision succeeded with exactly these events
//   - ThenErr: the decision failed with an error equal to this one
//   - ThenErrorIs: the decision failed with an error matching errors.Is
//   - ThenAssert: the decision succeeded; a callback inspects the events
//   - ThenGolden: the outcome matches testdata/golden/<name>.golden
//
// # Stage order
//
// Terminal assertions exist only on WhenStep, and a WhenStep is only produced
// by GivenStep.When, so calling them out of order does not compile. The
// decision's state and event types must match the GivenStep's.
//
// Steps are single use. Calling When twice on one GivenStep, or two terminal
// assertions on one WhenStep, fails the test.
//
// # Failures
//
// Failures go through testify's require package and abort the test. Every
// step calls t.Helper, so failures are reported at the caller's line.
package harness
