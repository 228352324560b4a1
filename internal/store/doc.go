// Package store provides SQLite-backed durable storage for game journals.
//
// The store keeps an append-only log per game:
//   - games: one row per game with its seed and table configuration
//   - events: the ordered operations applied to the game, each with the
//     diagnostic snapshot it produced and that snapshot's content hash
//
// The store never holds game state. A game is recovered by replaying its
// events against a fresh game built from the stored seed and configuration
// (see engine.Replay), and the stored hashes prove the replay is faithful.
//
// # Ordering
//
// All ordering uses the seq INTEGER logical clock, NEVER timestamps. Every
// event query is ORDER BY seq ASC.
//
// # Idempotency
//
// (game_id, seq) is the primary key of events. Re-appending an identical
// event is a no-op; appending a different event at an existing seq fails
// with ErrConflict.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
