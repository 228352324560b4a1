package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/engine"
	"github.com/roach88/azul/internal/store"
	"github.com/roach88/azul/internal/table"
	"github.com/roach88/azul/internal/testutil"
	"github.com/roach88/azul/internal/tile"
)

// scenarioGameID is the fixed game id used for every scenario so journal
// ids are reproducible.
const scenarioGameID = "scenario"

// Harness runs one scenario against a real game backed by an in-memory store.
type Harness struct {
	scenario *Scenario
	store    *store.Store
	game     *engine.Game
	cfg      config.Game
	initial  map[tile.Tile]int
	held     map[tile.Tile]int
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. The game
// records every accepted event there, so journal and replay assertions see
// exactly what a persistent game would store.
//
// Execution flow:
// 1. Create fresh in-memory database and game record
// 2. Build the game from the setup (or a full bag) and random script
// 3. Execute steps, checking expect clauses and conservation
// 4. Evaluate assertions and return the result
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunContext is Run with a context and a logger for step progress.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cfg := scenario.GameConfig()
	if err := st.WriteGame(ctx, store.Game{
		ID:     scenarioGameID,
		Label:  scenario.Name,
		Seed:   scenario.Seed,
		Config: cfg,
	}); err != nil {
		return nil, fmt.Errorf("failed to write game: %w", err)
	}

	opts, err := scenario.options()
	if err != nil {
		return nil, err
	}
	game := engine.New(scenarioGameID, cfg, scenario.Seed, append(opts, engine.WithRecorder(st))...)

	h := &Harness{
		scenario: scenario,
		store:    st,
		game:     game,
		cfg:      cfg,
		initial:  countColors(game.Snapshot()),
		held:     make(map[tile.Tile]int),
		logger:   logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}
	result.Final = game.Snapshot().Describe()

	actx := &AssertionContext{
		Ctx:    ctx,
		Store:  st,
		Game:   game,
		Replay: h.replayOptions,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// options builds the game options for the scenario: the setup area and the
// scripted random source. Each call returns a fresh source so a replay
// sees the same draws.
func (s *Scenario) options() ([]engine.Option, error) {
	var opts []engine.Option
	if s.Setup != nil {
		area, err := s.Setup.Area()
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
		if s.Config != nil && s.Config.FactoryCapacity != 0 {
			area = area.WithFactoryCapacity(s.Config.FactoryCapacity)
		}
		opts = append(opts, engine.WithArea(area))
	}
	if len(s.Random) > 0 {
		opts = append(opts, engine.WithSource(testutil.NewScriptedSource(s.Random...)))
	}
	return opts, nil
}

func (h *Harness) replayOptions() ([]engine.Option, error) {
	return h.scenario.options()
}

// executeSteps runs all steps and validates their expect clauses.
//
// A step failing without an expected error, or succeeding when one is
// expected, is a validation failure, not an execution error.
func (h *Harness) executeSteps(ctx context.Context, result *Result) error {
	for i, step := range h.scenario.Steps {
		ev := TraceEvent{Step: i + 1, Action: step.Action, Source: step.Source, Index: step.Index}

		var err error
		switch step.Action {
		case ActionStartRound:
			_, err = h.game.StartRound(ctx)
		case ActionTake:
			var taken []tile.Tile
			taken, err = h.game.Take(ctx, step.Source, step.Index)
			if err == nil {
				ev.Tiles = taken
				for _, t := range taken {
					h.held[t]++
				}
			}
		case ActionDiscard:
			tiles, perr := tile.ParseList(step.Tiles)
			if perr != nil {
				return fmt.Errorf("step %d: %w", i+1, perr)
			}
			err = h.game.Discard(ctx, tiles)
			if err == nil {
				ev.Tiles = tiles
				for _, t := range tiles {
					h.held[t]--
				}
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}

		if err != nil {
			code, ok := errorCode(err)
			if !ok {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			ev.Error = code
		} else {
			ev.Seq = h.game.Version()
			ev.Describe = h.game.Snapshot().Describe()
		}
		result.AddTrace(ev)

		for _, msg := range h.checkExpect(i+1, step.Expect, ev) {
			result.AddError(msg)
		}
		if h.scenario.Conserve {
			if msg := h.checkConservation(i + 1); msg != "" {
				result.AddError(msg)
			}
		}

		h.logger.Info("step completed",
			"step", i+1,
			"action", step.Action,
			"seq", ev.Seq,
			"error", ev.Error,
		)
	}
	return nil
}

// checkExpect compares a step outcome with its expect clause.
func (h *Harness) checkExpect(step int, expect *ExpectClause, ev TraceEvent) []string {
	var errs []string
	want := ""
	if expect != nil {
		want = expect.Error
	}
	if ev.Error != want {
		errs = append(errs, fmt.Sprintf("step %d: error = %q, want %q", step, ev.Error, want))
		return errs
	}
	if expect == nil {
		return nil
	}

	area := h.game.Snapshot()
	if expect.Taken != nil {
		want, _ := tile.ParseList(*expect.Taken)
		if tile.Join(ev.Tiles) != tile.Join(want) {
			errs = append(errs, fmt.Sprintf("step %d: taken = [%s], want [%s]", step, tile.Join(ev.Tiles), tile.Join(want)))
		}
	}
	if expect.Describe != "" && area.Describe() != expect.Describe {
		errs = append(errs, fmt.Sprintf("step %d: describe =\n  %s\nwant\n  %s", step, area.Describe(), expect.Describe))
	}
	if expect.RoundEnd != nil && area.IsRoundEnd() != *expect.RoundEnd {
		errs = append(errs, fmt.Sprintf("step %d: round_end = %t, want %t", step, area.IsRoundEnd(), *expect.RoundEnd))
	}
	if expect.Tiles != nil && area.TotalTiles() != *expect.Tiles {
		errs = append(errs, fmt.Sprintf("step %d: tiles = %d, want %d", step, area.TotalTiles(), *expect.Tiles))
	}
	return errs
}

// checkConservation verifies that, colour by colour, tiles on the table
// plus tiles held by players equal the starting count.
func (h *Harness) checkConservation(step int) string {
	now := countColors(h.game.Snapshot())
	for _, c := range tile.Colors() {
		if now[c]+h.held[c] != h.initial[c] {
			return fmt.Sprintf("step %d: %s not conserved: table %d + held %d != %d",
				step, c.Name(), now[c], h.held[c], h.initial[c])
		}
	}
	return ""
}

func countColors(a table.Area) map[tile.Tile]int {
	out := make(map[tile.Tile]int, len(tile.Colors()))
	for _, c := range tile.Colors() {
		out[c] = a.Count(c)
	}
	return out
}

// errorCode extracts the code of a refused operation. Errors that are not
// game or contract errors are execution failures.
func errorCode(err error) (string, bool) {
	var gerr *engine.GameError
	if errors.As(err, &gerr) {
		return string(gerr.Code), true
	}
	var cerr *table.ContractError
	if errors.As(err, &cerr) {
		return string(cerr.Code), true
	}
	return "", false
}
