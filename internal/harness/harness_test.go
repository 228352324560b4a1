package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Scenarios(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors:\n%s", strings.Join(result.Errors, "\n"))
			assert.Len(t, result.Trace, len(s.Steps))
		})
	}
}

func TestRun_ReportsExpectMismatch(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: mismatch
description: "wrong expectations are reported, not fatal"
setup:
  factories: ["R,B"]
steps:
  - action: take
    source: 0
    index: 0
    expect:
      taken: "B"
      describe: "Factory0()|Center()|Bag()|UsedTiles()"
      round_end: true
      tiles: 5
  - action: take
    source: 1
    index: 0
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "taken = [R], want [B]")
	assert.Contains(t, result.Errors[1], "describe")
	assert.Contains(t, result.Errors[2], "round_end = false, want true")
	assert.Contains(t, result.Errors[3], "tiles = 1, want 5")
	assert.Equal(t, "Factory0()|Center()|Bag()|UsedTiles()", result.Final)
}

func TestRun_UnexpectedError(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: refused
description: "a refused step without an expected error fails the scenario"
setup:
  factories: ["R"]
steps:
  - action: start_round
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `error = "ROUND_IN_PROGRESS", want ""`)
	assert.Equal(t, "ROUND_IN_PROGRESS", result.Trace[0].Error)
}

func TestRun_MissingExpectedError(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: accepted
description: "an accepted step that should have been refused fails the scenario"
setup:
  factories: ["R"]
steps:
  - action: take
    source: 0
    index: 0
    expect:
      error: INVALID_TAKE
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], `error = "", want "INVALID_TAKE"`)
}

func TestRun_AssertionFailures(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: failing_assertions
description: "every assertion type reports its failure"
setup:
  factories: ["R,B"]
  bag: "Y"
steps:
  - action: take
    source: 0
    index: 0
assertions:
  - type: describe
    expect: "Factory0(R,B)|Center()|Bag(Y)|UsedTiles()"
  - type: round_end
    value: true
  - type: tile_count
    tile: B
    count: 3
  - type: bag_size
    count: 0
  - type: used_size
    count: 1
  - type: journal
    count: 2
  - type: replay
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6, "replay of a faithful journal passes")
	assert.Contains(t, result.Errors[0], "Assertion failed: describe")
	assert.Contains(t, result.Errors[1], "round_end = true")
	assert.Contains(t, result.Errors[2], "3 Blue tiles")
	assert.Contains(t, result.Errors[3], "bag_size")
	assert.Contains(t, result.Errors[4], "used_size")
	assert.Contains(t, result.Errors[5], "2 journal events")
}

func TestEvaluateAssertions_NoGame(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertRoundEnd}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a game")
}

func TestTraceEvent_String(t *testing.T) {
	ok := TraceEvent{Step: 2, Action: ActionTake, Source: 1, Index: 0, Seq: 3, Describe: "Center()"}
	assert.Equal(t, "step 2: take source=1 index=0 seq=3\n  Center()", ok.String())

	refused := TraceEvent{Step: 4, Action: ActionStartRound, Error: "ROUND_IN_PROGRESS"}
	assert.Equal(t, "step 4: start_round error=ROUND_IN_PROGRESS", refused.String())
}
