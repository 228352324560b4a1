package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/engine"
)

// testCLI runs commands against one temporary database with predictable
// game ids.
type testCLI struct {
	t   *testing.T
	db  string
	ids *engine.FixedGenerator
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	return &testCLI{
		t:   t,
		db:  filepath.Join(t.TempDir(), "azul.db"),
		ids: engine.NewFixedGenerator("game-1", "game-2", "game-3"),
	}
}

// run executes args and returns stdout.
func (c *testCLI) run(args ...string) (string, error) {
	c.t.Helper()
	opts := &RootOptions{
		Env: config.Env{Database: c.db, LogLevel: "error"},
		IDs: c.ids,
	}
	cmd := newRootCommand(opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// view runs a JSON command expected to succeed and decodes its GameView.
func (c *testCLI) view(args ...string) GameView {
	c.t.Helper()
	out, err := c.run(append(args, "--format", "json")...)
	require.NoError(c.t, err, out)

	var resp struct {
		Status string   `json:"status"`
		Data   GameView `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(c.t, "ok", resp.Status)
	return resp.Data
}

// refused runs a JSON command expected to be refused and returns the code.
func (c *testCLI) refused(args ...string) string {
	c.t.Helper()
	out, err := c.run(append(args, "--format", "json")...)
	require.Error(c.t, err)
	assert.Equal(c.t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(c.t, json.Unmarshal([]byte(out), &resp), out)
	require.NotNil(c.t, resp.Error)
	return resp.Error.Code
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "azul", cmd.Use)
	assert.Contains(t, cmd.Long, "journaled")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"new", "take", "round", "discard", "show", "list", "trace", "replay", "test"}

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
	cmd := newRootCommand(&RootOptions{Env: config.Env{Database: "from-env.db"}})

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "from-env.db", dbFlag.DefValue)
}

func TestGameFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"take", "round", "discard", "show", "trace", "replay"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		flag := sub.Flags().Lookup("game")
		require.NotNil(t, flag, name)
		assert.Equal(t, "g", flag.Shorthand)
	}
}

func TestInvalidFormat(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run("list", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvalidEnvironment(t *testing.T) {
	opts := &RootOptions{envErr: errors.New("parse env: bad AZUL_DB")}
	cmd := newRootCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidLogLevel(t *testing.T) {
	opts := &RootOptions{Env: config.Env{Database: filepath.Join(t.TempDir(), "x.db"), LogLevel: "loud"}}
	cmd := newRootCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "AZUL_LOG_LEVEL")
}
