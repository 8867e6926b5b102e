package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "disintegrate", cmd.Use)
	assert.Contains(t, cmd.Long, "scenarios")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"test", "validate", "exec", "log", "replay", "domains"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestExecCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	execCmd, _, err := cmd.Find([]string{"exec"})
	require.NoError(t, err)

	for _, name := range []string{"db", "domain", "decision", "args"} {
		assert.NotNil(t, execCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "{}", execCmd.Flags().Lookup("args").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runRoot(t, "--format", "xml", "domains")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestDomainsCommand(t *testing.T) {
	out, err := runRoot(t, "domains")
	require.NoError(t, err)
	assert.Contains(t, out, "bank\n")
	assert.Contains(t, out, "decisions: CloseAccount, Deposit, OpenAccount, Withdraw")
	assert.Contains(t, out, "events:    CouponApplied, CouponEmitted, ItemAdded, ItemRemoved")
}

func TestDomainsCommandJSON(t *testing.T) {
	out, err := runRoot(t, "--format", "json", "domains")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"name": "cart"`)
	assert.Contains(t, out, `"ApplyCoupon"`)
}
