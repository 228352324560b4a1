// Package event defines the journal records produced by a game.
//
// A game is fully determined by its configuration, its seed, and the ordered
// list of events applied to it. Each event carries the diagnostic snapshot of
// the area after it was applied plus a content hash of that snapshot, so a
// replay can prove it reached the same states without trusting the stored
// text.
//
// Events are ordered by Seq, a logical clock. Wall-clock time is never used
// for ordering.
package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/roach88/azul/internal/tile"
)

// Kind identifies what an event did to the area.
type Kind string

const (
	// KindStartRound refilled the factories from the bag.
	KindStartRound Kind = "start_round"

	// KindTake took matching tiles from a factory or the center.
	KindTake Kind = "take"

	// KindDiscard put tiles on the used pile from outside the table.
	KindDiscard Kind = "discard"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindStartRound, KindTake, KindDiscard:
		return true
	}
	return false
}

// Event is one applied operation.
type Event struct {
	// Seq is the game's logical clock value for this event, starting at 1.
	Seq int64 `json:"seq"`

	Kind Kind `json:"kind"`

	// Source and Index address the take (KindTake only).
	Source int `json:"source"`
	Index  int `json:"index"`

	// Tiles holds the tiles taken (KindTake) or discarded (KindDiscard).
	Tiles []tile.Tile `json:"tiles,omitempty"`

	// Snapshot is the area's Describe() output after the event.
	Snapshot string `json:"snapshot"`

	// SnapshotHash is SnapshotHash(Snapshot).
	SnapshotHash string `json:"snapshot_hash"`
}

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainSnapshot = "azul/snapshot/v1"
	DomainEvent    = "azul/event/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SnapshotHash returns the content hash of a diagnostic snapshot.
func SnapshotHash(snapshot string) string {
	return hashWithDomain(DomainSnapshot, []byte(snapshot))
}

// ID returns a stable identifier for the event within a game.
// The snapshot hash is part of the identity, so a replay that diverges
// produces different IDs.
func ID(gameID string, e Event) string {
	data := gameID + "\x00" + strconv.FormatInt(e.Seq, 10) + "\x00" + string(e.Kind) +
		"\x00" + strconv.Itoa(e.Source) + "\x00" + strconv.Itoa(e.Index) +
		"\x00" + tile.Join(e.Tiles) + "\x00" + e.SnapshotHash
	return hashWithDomain(DomainEvent, []byte(data))
}

// Verify checks that the stored hash matches the stored snapshot.
func (e Event) Verify() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("event %d: unknown kind %q", e.Seq, e.Kind)
	}
	if got := SnapshotHash(e.Snapshot); got != e.SnapshotHash {
		return fmt.Errorf("event %d: snapshot hash %s does not match content (%s)", e.Seq, e.SnapshotHash, got)
	}
	return nil
}

// String renders the event on one line for traces.
func (e Event) String() string {
	switch e.Kind {
	case KindTake:
		return fmt.Sprintf("#%d take source=%d index=%d -> [%s]", e.Seq, e.Source, e.Index, tile.Join(e.Tiles))
	case KindDiscard:
		return fmt.Sprintf("#%d discard [%s]", e.Seq, tile.Join(e.Tiles))
	default:
		return fmt.Sprintf("#%d %s", e.Seq, e.Kind)
	}
}
