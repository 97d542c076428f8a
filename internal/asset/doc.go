// Package asset defines the conservador (refrigeration unit) model shared by
// every layer of polar.
//
// # Overview
//
// An Asset is the only entity with lifecycle logic. It is created with a
// caller-supplied id, mutated by partial field merges (Patch) and removed by
// id. A Collection is an ordered slice of assets; order is display order and
// is preserved through the mirror.
//
// # Wire Shapes
//
// Two encodings exist:
//
//   - Asset: camelCase JSON, used by the local mirror. Older mirrors that lack
//     newer keys decode with zero values and are fixed up by Normalize.
//   - RawRow: snake_case, nullable columns as stored by the hosted database.
//     FromRow is total: every upstream field has a defined default.
//
// # Identifiers
//
// IDGenerator issues CON-NNN identifiers from a counter that always stays
// above every numeric id it has seen or issued, so a generated id can never
// collide with an existing one.
package asset
