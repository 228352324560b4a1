package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/event"
	"github.com/roach88/azul/internal/tile"
)

// Game is a stored game header: everything needed, together with its
// events, to rebuild the game.
type Game struct {
	ID     string      `json:"id"`
	Label  string      `json:"label,omitempty"`
	Seed   uint64      `json:"seed"`
	Config config.Game `json:"config"`
}

// GameSummary is a game header plus journal statistics.
type GameSummary struct {
	Game
	Events int   `json:"events"`
	Rounds int   `json:"rounds"`
	Seq    int64 `json:"seq"`
}

// ReadGame returns the game header for id, or ErrNotFound.
func (s *Store) ReadGame(ctx context.Context, id string) (Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, seed, factories, factory_capacity, tiles_per_color
		FROM games
		WHERE id = ?
	`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Game{}, fmt.Errorf("read game: %w", err)
	}
	return g, nil
}

// ListGames returns every game with journal statistics, ordered by id.
// UUIDv7 ids make this creation order.
//
// Returns an empty slice (not nil) when there are no games.
func (s *Store) ListGames(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.label, g.seed, g.factories, g.factory_capacity, g.tiles_per_color,
		       COUNT(e.seq),
		       COALESCE(SUM(CASE WHEN e.kind = 'start_round' THEN 1 ELSE 0 END), 0),
		       COALESCE(MAX(e.seq), 0)
		FROM games g
		LEFT JOIN events e ON e.game_id = g.id
		GROUP BY g.id
		ORDER BY g.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []GameSummary{}
	for rows.Next() {
		var sum GameSummary
		var seed string
		if err := rows.Scan(
			&sum.ID, &sum.Label, &seed,
			&sum.Config.Factories, &sum.Config.FactoryCapacity, &sum.Config.TilesPerColor,
			&sum.Events, &sum.Rounds, &sum.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if sum.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("game %s: parse seed: %w", sum.ID, err)
		}
		games = append(games, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

// ReadEvents returns the journal of a game in seq order.
//
// Returns an empty slice (not nil) if the game has no events.
func (s *Store) ReadEvents(ctx context.Context, gameID string) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, source, tile_index, tiles, snapshot, snapshot_hash
		FROM events
		WHERE game_id = ?
		ORDER BY seq ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		var e event.Event
		var kind, tiles string
		if err := rows.Scan(&e.Seq, &kind, &e.Source, &e.Index, &tiles, &e.Snapshot, &e.SnapshotHash); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = event.Kind(kind)
		if e.Tiles, err = tile.ParseList(tiles); err != nil {
			return nil, fmt.Errorf("event %d: parse tiles: %w", e.Seq, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (Game, error) {
	var g Game
	var seed string
	if err := row.Scan(&g.ID, &g.Label, &seed, &g.Config.Factories, &g.Config.FactoryCapacity, &g.Config.TilesPerColor); err != nil {
		return Game{}, err
	}
	s, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return Game{}, fmt.Errorf("parse seed: %w", err)
	}
	g.Seed = s
	return g, nil
}
