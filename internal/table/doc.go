// Package table implements the shared tile distribution engine: the bag,
// the used-tiles pile, the factories, the table center, and the Area that
// ties them together into the per-round draw/take/refill protocol.
//
// VALUE SEMANTICS:
//
// Every type in this package is an immutable snapshot. Operations return a
// new value and never mutate their receiver or alias a caller's slice, so a
// caller holding an older Area can keep using it after newer snapshots have
// been derived from it. Accessors return copies.
//
// INVARIANTS:
//
//   - Conservation: Area.TakeTiles and Area.StartNewRound neither create nor
//     destroy tiles. Area.TotalTiles is identical before and after.
//   - Take-all-or-nothing: Bag.Take with fewer tiles than requested draws
//     nothing and returns the bag unchanged.
//   - Match partition: Factory.Take and Center.Take return every tile equal
//     to the selected one and keep every tile that differs.
//   - Round end is derived: Area.IsRoundEnd is recomputed from state.
//
// FAILURE CLASSES:
//
// Selecting a position that does not exist is a caller bug and panics with a
// *ContractError. Use Area.CheckTake to validate untrusted input first.
// Insufficient bag supply is not an error; callers compare the length of the
// drawn slice with the requested count.
package table
