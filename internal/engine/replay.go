package engine

import (
	"context"
	"fmt"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/event"
)

// Replay rebuilds a game by re-applying events to a fresh game created with
// the same id, configuration, and seed.
//
// Every event must carry the next seq and must reproduce the recorded
// snapshot hash; the first divergence stops the replay with a
// REPLAY_MISMATCH error. A recorder passed through opts is attached only
// after the replay, so replayed events are not written twice.
func Replay(ctx context.Context, id string, cfg config.Game, seed uint64, events []event.Event, opts ...Option) (*Game, error) {
	g := New(id, cfg, seed, opts...)
	recorder := g.recorder
	g.recorder = nil

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if want := g.Version() + 1; ev.Seq != want {
			return nil, &GameError{
				Code:    ErrCodeReplayMismatch,
				Message: fmt.Sprintf("journal gap: expected seq %d", want),
				GameID:  id,
				Seq:     ev.Seq,
			}
		}
		if err := apply(ctx, g, ev); err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", ev.Seq, err)
		}
		if g.Version() != ev.Seq {
			return nil, &GameError{
				Code:    ErrCodeReplayMismatch,
				Message: "event produced no change",
				GameID:  id,
				Seq:     ev.Seq,
			}
		}
		got := g.events[len(g.events)-1]
		if got.SnapshotHash != ev.SnapshotHash {
			return nil, NewReplayMismatch(id, ev.Seq, ev.Snapshot, got.Snapshot)
		}
	}

	g.recorder = recorder
	return g, nil
}

func apply(ctx context.Context, g *Game, ev event.Event) error {
	switch ev.Kind {
	case event.KindStartRound:
		_, err := g.StartRound(ctx)
		return err
	case event.KindTake:
		_, err := g.Take(ctx, ev.Source, ev.Index)
		return err
	case event.KindDiscard:
		return g.Discard(ctx, ev.Tiles)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
