package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/engine"
	"github.com/roach88/azul/internal/store"
	"github.com/roach88/azul/internal/table"
	"github.com/roach88/azul/internal/tile"
)

// GameView is the output form of a game's table.
type GameView struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	Seed      uint64        `json:"seed"`
	Seq       int64         `json:"seq"`
	Rounds    int           `json:"rounds"`
	RoundEnd  bool          `json:"round_end"`
	Factories [][]tile.Tile `json:"factories"`
	Center    []tile.Tile   `json:"center"`
	Bag       int           `json:"bag"`
	Used      int           `json:"used"`
	Describe  string        `json:"describe"`

	// Taken is set by take.
	Taken []tile.Tile `json:"taken,omitempty"`
}

func newGameView(g *engine.Game, label string) GameView {
	area := g.Snapshot()
	v := GameView{
		ID:        g.ID(),
		Label:     label,
		Seed:      g.Seed(),
		Seq:       g.Version(),
		Rounds:    g.Rounds(),
		RoundEnd:  area.IsRoundEnd(),
		Factories: make([][]tile.Tile, area.FactoryCount()),
		Center:    nonNil(area.Center().Tiles()),
		Bag:       area.Bag().Len(),
		Used:      area.Used().Len(),
		Describe:  area.Describe(),
	}
	for i, f := range area.Factories() {
		v.Factories[i] = nonNil(f.Tiles())
	}
	return v
}

// String renders the table for text output, one source per line with the
// number to pass to take.
func (v GameView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s", v.ID)
	if v.Label != "" {
		fmt.Fprintf(&b, " (%s)", v.Label)
	}
	fmt.Fprintf(&b, "  round %d  seq %d\n", v.Rounds, v.Seq)
	if len(v.Taken) > 0 {
		fmt.Fprintf(&b, "Taken: %s\n", tile.Join(v.Taken))
	}
	for i, f := range v.Factories {
		fmt.Fprintf(&b, "  [%d] Factory%d  %s\n", i, i, pile(f))
	}
	fmt.Fprintf(&b, "  [%d] Center    %s\n", len(v.Factories), pile(v.Center))
	fmt.Fprintf(&b, "  Bag %d  Used %d", v.Bag, v.Used)
	if v.RoundEnd {
		b.WriteString("\nRound over: run \"azul round\" to refill the factories.")
	}
	return b.String()
}

func pile(tiles []tile.Tile) string {
	if len(tiles) == 0 {
		return "-"
	}
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func nonNil(tiles []tile.Tile) []tile.Tile {
	if tiles == nil {
		return []tile.Tile{}
	}
	return tiles
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens the database named by --db.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolveGameID returns id, or the most recently created game when id is
// empty.
func resolveGameID(ctx context.Context, st *store.Store, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	games, err := st.ListGames(ctx)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to list games", err)
	}
	if len(games) == 0 {
		return "", NewExitError(ExitCommandError, "no games in database: run \"azul new\" first")
	}
	return games[len(games)-1].ID, nil
}

// loadGame rebuilds a game from its journal. The returned game records
// further operations to st.
func loadGame(ctx context.Context, st *store.Store, id string) (*engine.Game, store.Game, error) {
	id, err := resolveGameID(ctx, st, id)
	if err != nil {
		return nil, store.Game{}, err
	}

	rec, err := st.ReadGame(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.Game{}, WrapExitError(ExitCommandError, "unknown game", err)
	}
	if err != nil {
		return nil, store.Game{}, WrapExitError(ExitCommandError, "failed to read game", err)
	}

	events, err := st.ReadEvents(ctx, id)
	if err != nil {
		return nil, store.Game{}, WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	g, err := engine.Replay(ctx, rec.ID, rec.Config, rec.Seed, events, engine.WithRecorder(st))
	if err != nil {
		return nil, store.Game{}, WrapExitError(ExitFailure, "journal does not replay", err)
	}
	return g, rec, nil
}

// gameFlag registers the --game flag shared by game commands.
func gameFlag(cmd *cobra.Command, id *string) {
	cmd.Flags().StringVarP(id, "game", "g", "", "game id (default: most recent game)")
}

// sourceLabel names a take source for messages.
func sourceLabel(area table.Area, source int) string {
	if source == area.CenterSource() {
		return "center"
	}
	return fmt.Sprintf("factory %d", source)
}
