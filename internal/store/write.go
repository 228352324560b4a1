package store

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/azul/internal/event"
	"github.com/roach88/azul/internal/tile"
)

// WriteGame inserts a game record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - rewriting the same game
// is silently ignored. The label is NFC-normalized so visually identical
// labels compare equal.
func (s *Store) WriteGame(ctx context.Context, g Game) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games
		(id, label, seed, factories, factory_capacity, tiles_per_color)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		g.ID,
		norm.NFC.String(g.Label),
		strconv.FormatUint(g.Seed, 10),
		g.Config.Factories,
		g.Config.FactoryCapacity,
		g.Config.TilesPerColor,
	)
	if err != nil {
		return fmt.Errorf("write game: %w", err)
	}
	return nil
}

// AppendEvent appends a journal event for a game.
//
// Appending the exact event already stored at (gameID, e.Seq) is a no-op.
// Appending a different event at an occupied seq returns ErrConflict.
//
// Note: The game referenced by gameID must exist (foreign key constraint).
func (s *Store) AppendEvent(ctx context.Context, gameID string, e event.Event) error {
	id := event.ID(gameID, e)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append event: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO events
		(game_id, seq, id, kind, source, tile_index, tiles, snapshot, snapshot_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, seq) DO NOTHING
	`,
		gameID,
		e.Seq,
		id,
		string(e.Kind),
		e.Source,
		e.Index,
		tile.Join(e.Tiles),
		e.Snapshot,
		e.SnapshotHash,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append event: rows affected: %w", err)
	}
	if n == 0 {
		var existing string
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM events WHERE game_id = ? AND seq = ?`, gameID, e.Seq,
		).Scan(&existing); err != nil {
			return fmt.Errorf("append event: read existing: %w", err)
		}
		if existing != id {
			return fmt.Errorf("append event seq %d for game %s: %w", e.Seq, gameID, ErrConflict)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append event: commit: %w", err)
	}
	return nil
}
