package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const cartAddItem = `name: cart_add_item
description: "cart add item"
domain: cart
given:
  - type: ItemAdded
    data: { item_id: p1, cart_id: c1 }
when:
  decision: AddItem
  args: { item_id: p2, cart_id: c1 }
then:
  events:
    - type: ItemAdded
      data: { item_id: p2, cart_id: c1 }
`

const bankWithdrawEmpty = `name: bank_withdraw_empty
description: "bank withdraw empty"
domain: bank
when:
  decision: Withdraw
  args: { account_id: 1, amount: 10 }
then:
  error: insufficient funds
`

// cartAddItemWrong expects the wrong item.
const cartAddItemWrong = `name: cart_add_item_wrong
description: "cart add item wrong"
domain: cart
when:
  decision: AddItem
  args: { item_id: p2, cart_id: c1 }
then:
  events:
    - type: ItemAdded
      data: { item_id: p3, cart_id: c1 }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runRoot executes the root command with args and returns stdout and the
// command error.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "events.db")
}
