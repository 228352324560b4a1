package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/azul/internal/event"
)

func TestTrace_Text(t *testing.T) {
	c := newTestCLI(t)
	c.view("new", "--seed", "5")
	c.view("take", "0", "0")
	c.view("discard", "W")

	out, err := c.run("trace")
	require.NoError(t, err)
	assert.Contains(t, out, "Game: game-1")
	assert.Contains(t, out, "#1 start_round")
	assert.Contains(t, out, "#2 take source=0 index=0 -> [")
	assert.Contains(t, out, "#3 discard [W]")
	assert.Contains(t, out, "Stats: 3 events, 1 rounds, 1 takes, 1 discards")
	assert.NotContains(t, out, "Factory0(")

	out, err = c.run("trace", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "    Factory0(")
}

func TestTrace_JSONWithKindFilter(t *testing.T) {
	c := newTestCLI(t)
	c.view("new", "--seed", "5")
	c.view("take", "0", "0")

	out, err := c.run("trace", "--kind", "take", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Events, 1)
	assert.Equal(t, event.KindTake, resp.Data.Events[0].Kind)
	assert.NoError(t, resp.Data.Events[0].Verify())
	assert.Equal(t, 2, resp.Data.Stats.TotalEvents)
}

func TestTrace_InvalidKind(t *testing.T) {
	c := newTestCLI(t)
	c.view("new", "--seed", "5")

	_, err := c.run("trace", "--kind", "shuffle")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTrace_UnknownGame(t *testing.T) {
	c := newTestCLI(t)
	c.view("new", "--seed", "5")

	_, err := c.run("trace", "--game", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
