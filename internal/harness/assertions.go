package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/azul/internal/engine"
	"github.com/roach88/azul/internal/store"
	"github.com/roach88/azul/internal/tile"
)

// AssertionContext provides what assertions need beyond the trace.
type AssertionContext struct {
	Ctx   context.Context
	Store *store.Store
	Game  *engine.Game

	// Replay returns fresh game options equivalent to the ones the game
	// was built with.
	Replay func() ([]engine.Option, error)
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  %s\n", strings.ReplaceAll(event.String(), "\n", "\n  "))
		}
	}

	return buf.String()
}

func assertDescribe(result *Result, game *engine.Game, a Assertion) error {
	got := game.Snapshot().Describe()
	if got != a.Expect {
		return &AssertionError{Type: a.Type, Expected: a.Expect, Actual: got, Trace: result.Trace}
	}
	return nil
}

func assertRoundEnd(game *engine.Game, a Assertion) error {
	if got := game.Snapshot().IsRoundEnd(); got != a.Value {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("round_end = %t", a.Value),
			Actual:   fmt.Sprintf("round_end = %t (%s)", got, game.Snapshot().Describe()),
		}
	}
	return nil
}

func assertCount(game *engine.Game, a Assertion) error {
	area := game.Snapshot()
	var got int
	what := a.Type
	switch a.Type {
	case AssertTileCount:
		t, err := tile.Parse(a.Tile)
		if err != nil {
			return err
		}
		got = area.Count(t)
		what = t.Name() + " tiles"
	case AssertBagSize:
		got = area.Bag().Len()
	case AssertUsedSize:
		got = area.Used().Len()
	}
	if got != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d %s", a.Count, what),
			Actual:   fmt.Sprintf("%d (%s)", got, area.Describe()),
		}
	}
	return nil
}

// assertJournal checks how many events the store recorded.
func assertJournal(actx *AssertionContext, a Assertion) error {
	events, err := actx.Store.ReadEvents(actx.Ctx, actx.Game.ID())
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	if len(events) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d journal events", a.Count),
			Actual:   fmt.Sprintf("%d journal events", len(events)),
		}
	}
	return nil
}

// assertReplay replays the stored journal onto a fresh game and checks it
// ends where the live game did.
func assertReplay(actx *AssertionContext, a Assertion) error {
	events, err := actx.Store.ReadEvents(actx.Ctx, actx.Game.ID())
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	opts, err := actx.Replay()
	if err != nil {
		return err
	}
	g := actx.Game
	replayed, err := engine.Replay(actx.Ctx, g.ID(), g.Config(), g.Seed(), events, opts...)
	if err != nil {
		return &AssertionError{Type: a.Type, Expected: "journal replays cleanly", Actual: err.Error()}
	}
	want, got := g.Snapshot().Describe(), replayed.Snapshot().Describe()
	if want != got {
		return &AssertionError{Type: a.Type, Expected: want, Actual: got}
	}
	return nil
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		if actx == nil || actx.Game == nil {
			errors = append(errors, fmt.Sprintf("assertion[%d]: %s requires a game", i, assertion.Type))
			continue
		}

		switch assertion.Type {
		case AssertDescribe:
			err = assertDescribe(result, actx.Game, assertion)
		case AssertRoundEnd:
			err = assertRoundEnd(actx.Game, assertion)
		case AssertTileCount, AssertBagSize, AssertUsedSize:
			err = assertCount(actx.Game, assertion)
		case AssertJournal, AssertReplay:
			if actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: %s requires database context", i, assertion.Type)
			} else if assertion.Type == AssertJournal {
				err = assertJournal(actx, assertion)
			} else {
				err = assertReplay(actx, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
