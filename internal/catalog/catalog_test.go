package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/demo/bank"
	"github.com/gmkumar2005/disintegrate/internal/scenario"
	"github.com/gmkumar2005/disintegrate/internal/store"
	"github.com/gmkumar2005/disintegrate/internal/testutil"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "events.db"),
		store.WithIDGenerator(testutil.NewSequentialIDs("evt")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func execute(t *testing.T, d Domain, st *store.Store, name, args string) []Entry {
	t.Helper()
	entries, err := d.Execute(context.Background(), st, name, json.RawMessage(args), nil)
	require.NoError(t, err)
	return entries
}

func TestBuiltin(t *testing.T) {
	c := Builtin()
	assert.Equal(t, []string{"bank", "cart"}, c.Names())

	d, err := c.Lookup("bank")
	require.NoError(t, err)
	assert.Equal(t, []string{"CloseAccount", "Deposit", "OpenAccount", "Withdraw"}, d.Decisions())
	assert.Equal(t, []string{"AccountClosed", "AccountOpened", "AmountDeposited", "AmountWithdrawn"}, d.EventTypes())
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Builtin().Lookup("shop")

	var unknown *UnknownDomainError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"bank", "cart"}, unknown.Known)
}

func TestNew_DuplicatePanics(t *testing.T) {
	d := Bind("bank", bank.Codec(), bank.Registry(), bank.Summary())
	assert.Panics(t, func() { New(d, d) })
}

func TestExecute_AppendsToStore(t *testing.T) {
	st := openStore(t)
	d, err := Builtin().Lookup("bank")
	require.NoError(t, err)

	opened := execute(t, d, st, "OpenAccount", `{"account_id":1}`)
	require.Len(t, opened, 1)
	assert.Equal(t, int64(1), opened[0].Seq)
	assert.Equal(t, "AccountOpened", opened[0].Type)

	deposited := execute(t, d, st, "Deposit", `{"account_id":1,"amount":50}`)
	require.Len(t, deposited, 1)
	assert.Equal(t, int64(2), deposited[0].Seq)
	assert.JSONEq(t, `{"account_id":1,"amount":50}`, string(deposited[0].Data))

	log, err := d.Log(context.Background(), st)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}

func TestExecute_DomainError(t *testing.T) {
	st := openStore(t)
	d, err := Builtin().Lookup("bank")
	require.NoError(t, err)

	_, err = d.Execute(context.Background(), st, "Withdraw", json.RawMessage(`{"account_id":1,"amount":10}`), nil)
	assert.ErrorIs(t, err, bank.ErrInsufficientFunds)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Withdraw", rejected.Decision)

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecute_UnknownDecision(t *testing.T) {
	d, err := Builtin().Lookup("cart")
	require.NoError(t, err)

	_, err = d.Execute(context.Background(), openStore(t), "Checkout", nil, nil)

	var notFound *decision.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestReplay_Deterministic(t *testing.T) {
	st := openStore(t)
	c := Builtin()
	bankDomain, _ := c.Lookup("bank")
	cartDomain, _ := c.Lookup("cart")

	execute(t, bankDomain, st, "OpenAccount", `{"account_id":1}`)
	execute(t, cartDomain, st, "AddItem", `{"item_id":"p1","cart_id":"c1"}`)
	execute(t, bankDomain, st, "Deposit", `{"account_id":1,"amount":20}`)

	report, err := bankDomain.Replay(context.Background(), st)
	require.NoError(t, err)

	assert.True(t, report.Deterministic)
	assert.Equal(t, 2, report.Events)
	assert.Equal(t, int64(3), report.LastSeq)
	assert.Len(t, report.Digest, 64)
	assert.Equal(t, map[int64]int64{1: 20}, report.State["balances"])

	again, err := bankDomain.Replay(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, report.Digest, again.Digest)
}

func TestReplay_EmptyLog(t *testing.T) {
	d, _ := Builtin().Lookup("cart")

	report, err := d.Replay(context.Background(), openStore(t))
	require.NoError(t, err)
	assert.True(t, report.Deterministic)
	assert.Zero(t, report.Events)
	assert.Zero(t, report.LastSeq)
}

func TestRunScenario_WrongDomain(t *testing.T) {
	d, _ := Builtin().Lookup("cart")

	_, err := d.RunScenario(&scenario.Scenario{Name: "x", Domain: "bank"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `targets domain "bank"`)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	pass := writeFile(t, dir, "pass.yaml", `
name: pass
description: "withdraw from empty account"
domain: bank
when:
  decision: Withdraw
  args: { account_id: 1, amount: 10 }
then:
  error: insufficient funds
`)
	fail := writeFile(t, dir, "fail.yaml", `
name: fail
description: "wrong expectation"
domain: bank
when:
  decision: OpenAccount
  args: { account_id: 1 }
then:
  error: account already opened
`)
	broken := writeFile(t, dir, "broken.yaml", `name: broken`)
	unknown := writeFile(t, dir, "unknown.yaml", `
name: unknown
description: "unknown domain"
domain: shop
when:
  decision: Buy
`)

	suite := Builtin().RunFiles([]string{pass, fail, broken, unknown}, nil)

	assert.Equal(t, 4, suite.Total)
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 3, suite.Failed)
	require.Len(t, suite.Scenarios, 4)

	assert.True(t, suite.Scenarios[0].Pass)
	assert.NotNil(t, suite.Scenarios[0].Result)
	assert.Equal(t, pass, suite.Scenarios[0].Result.Path)

	assert.Equal(t, "fail", suite.Scenarios[1].Name)
	assert.False(t, suite.Scenarios[1].Pass)
	assert.NotNil(t, suite.Scenarios[1].Result)

	assert.Nil(t, suite.Scenarios[2].Result)
	assert.Contains(t, suite.Scenarios[2].Errors[0], "failed to load scenario")

	assert.Nil(t, suite.Scenarios[3].Result)
	assert.Contains(t, suite.Scenarios[3].Errors[0], "unknown domain")
}

func TestRecount(t *testing.T) {
	suite := &SuiteResult{Scenarios: []Outcome{{Pass: true}, {Pass: true}}}
	suite.Recount()
	assert.Equal(t, 2, suite.Passed)

	suite.Scenarios[1].Pass = false
	suite.Recount()
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 1, suite.Failed)
	assert.Equal(t, 2, suite.Total)
}
