// Package engine runs a single game as a single-writer state cell.
//
// The table package is pure: every operation returns a new Area. Game is
// the place where one of those snapshots is chosen as "current". It owns the
// current Area, the random source, and a logical clock, and it appends a
// journal event for every accepted operation.
//
// ARCHITECTURE:
//
// Single Writer:
// All Game methods serialize on one mutex. An operation computes the next
// snapshot from the current one, records the event, and only then commits
// the snapshot. If recording fails the game stays where it was.
//
// Determinism:
// A game is reproducible from its configuration, its seed, and its event
// list. Replay re-applies the events to a fresh game built from the same
// seed and checks every snapshot hash on the way.
//
// Logical Clock:
// Events are stamped from Clock, which advances only when an event is
// committed. Wall-clock time is never used for ordering.
//
// Round discipline:
// StartRound is refused while tiles remain on factories or in the center.
// Together with the conservation property of the table package this keeps
// the tile total of every reachable game constant apart from explicit
// takes and discards.
package engine
