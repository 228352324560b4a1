package engine

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/event"
	"github.com/roach88/azul/internal/rng"
	"github.com/roach88/azul/internal/table"
	"github.com/roach88/azul/internal/tile"
)

// Recorder persists journal events as they are accepted.
// Implemented by *store.Store.
type Recorder interface {
	AppendEvent(ctx context.Context, gameID string, e event.Event) error
}

// Game is the single-writer owner of one table.
type Game struct {
	mu sync.Mutex

	id     string
	cfg    config.Game
	seed   uint64
	src    rng.Source
	area   table.Area
	clock  *Clock
	rounds int
	events []event.Event

	recorder Recorder
}

// Option configures a Game.
type Option func(*Game)

// WithSource replaces the seeded random source. Games built this way are
// not reproducible from their seed; use it for scripted tests.
func WithSource(src rng.Source) Option {
	return func(g *Game) {
		g.src = src
	}
}

// WithRecorder sets the recorder that receives every accepted event.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// WithArea replaces the initial area built from the configuration.
func WithArea(a table.Area) Option {
	return func(g *Game) {
		g.area = a
	}
}

// New creates a game with empty factories and a full bag of
// cfg.TilesPerColor tiles of each colour. The first StartRound fills it.
func New(id string, cfg config.Game, seed uint64, opts ...Option) *Game {
	g := &Game{
		id:    id,
		cfg:   cfg,
		seed:  seed,
		src:   rng.NewSeeded(seed),
		clock: NewClock(),
		area: table.NewArea(
			cfg.Table(),
			table.NewBag(tile.NewSet(cfg.TilesPerColor)),
			table.NewUsedTiles(nil),
		),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Seed returns the seed of the game's random source.
func (g *Game) Seed() uint64 { return g.seed }

// Config returns the game configuration.
func (g *Game) Config() config.Game { return g.cfg }

// Snapshot returns the current area. The value is immutable; callers may
// keep it while the game moves on.
func (g *Game) Snapshot() table.Area {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.area
}

// Version returns the seq of the last accepted event (0 for a new game).
func (g *Game) Version() int64 {
	return g.clock.Now()
}

// Rounds returns how many rounds have been started.
func (g *Game) Rounds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rounds
}

// Events returns a copy of the events accepted so far.
func (g *Game) Events() []event.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]event.Event, len(g.events))
	copy(out, g.events)
	return out
}

// StartRound refills the factories. It is refused with ROUND_IN_PROGRESS
// while any factory or the center still holds tiles.
func (g *Game) StartRound(ctx context.Context) (table.Area, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.area.IsRoundEnd() {
		return g.area, &GameError{
			Code:    ErrCodeRoundInProgress,
			Message: "tiles remain on the table",
			GameID:  g.id,
		}
	}

	replenish := g.area.NeedsReplenish()
	next := g.area.StartNewRound(g.src)

	short := 0
	for _, f := range next.Factories() {
		if f.Len() < next.FactoryCapacity() {
			short++
		}
	}

	ev := event.Event{Kind: event.KindStartRound}
	if err := g.commit(ctx, next, ev); err != nil {
		return g.area, err
	}
	g.rounds++

	slog.Debug("round started",
		"game", g.id,
		"round", g.rounds,
		"replenished", replenish,
		"bag", next.Bag().Len(),
		"short_factories", short,
	)
	if short > 0 {
		slog.Warn("factories under-filled", "game", g.id, "round", g.rounds, "count", short)
	}
	return next, nil
}

// Take takes every tile matching the one at index from source. Source
// FactoryCount() addresses the center. An invalid selection is returned as
// an INVALID_TAKE error wrapping the table's *ContractError.
func (g *Game) Take(ctx context.Context, source, index int) ([]tile.Tile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.area.CheckTake(source, index); err != nil {
		return nil, &GameError{
			Code:    ErrCodeInvalidTake,
			Message: "selection does not exist",
			GameID:  g.id,
			Details: map[string]string{
				"source": strconv.Itoa(source),
				"index":  strconv.Itoa(index),
			},
			Err: err,
		}
	}

	next, taken := g.area.TakeTiles(source, index)
	ev := event.Event{
		Kind:   event.KindTake,
		Source: source,
		Index:  index,
		Tiles:  taken,
	}
	if err := g.commit(ctx, next, ev); err != nil {
		return nil, err
	}

	slog.Debug("tiles taken", "game", g.id, "source", source, "index", index, "tiles", tile.Join(taken))
	return taken, nil
}

// Discard puts colour tiles on the used pile. This is how tiles leaving the
// players' boards come back into circulation. An empty discard is a no-op.
func (g *Game) Discard(ctx context.Context, tiles []tile.Tile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(tiles) == 0 {
		return nil
	}
	for _, t := range tiles {
		if !t.IsColor() {
			return &GameError{
				Code:    ErrCodeInvalidTiles,
				Message: "only colour tiles can be discarded, got " + t.String(),
				GameID:  g.id,
			}
		}
	}

	next := g.area.GiveUsed(tiles)
	ev := event.Event{Kind: event.KindDiscard, Tiles: append([]tile.Tile(nil), tiles...)}
	if err := g.commit(ctx, next, ev); err != nil {
		return err
	}

	slog.Debug("tiles discarded", "game", g.id, "tiles", tile.Join(tiles))
	return nil
}

// commit stamps ev with the next seq and the snapshot of next, records it,
// and makes next current. Must be called with g.mu held.
func (g *Game) commit(ctx context.Context, next table.Area, ev event.Event) error {
	ev.Seq = g.clock.Peek()
	ev.Snapshot = next.Describe()
	ev.SnapshotHash = event.SnapshotHash(ev.Snapshot)

	if g.recorder != nil {
		if err := g.recorder.AppendEvent(ctx, g.id, ev); err != nil {
			return &GameError{
				Code:    ErrCodeRecordFailed,
				Message: "could not record " + string(ev.Kind),
				GameID:  g.id,
				Seq:     ev.Seq,
				Err:     err,
			}
		}
	}

	g.clock.Tick()
	g.area = next
	g.events = append(g.events, ev)
	return nil
}
