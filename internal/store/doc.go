// Package store provides keyed text persistence for rollcall collections.
//
// The directory and the ledger each own one key and rewrite their full
// collection after every mutation:
//   - teachers: the teacher list
//   - attendance: the attendance record list
//   - session: the single-teacher check-in scratch state
//
// Collections are serialized as indented JSON arrays, which keeps the stored
// text human-readable and order-preserving.
//
// # Backends
//
//   - SQLite: durable storage in a single blobs table (WAL mode)
//   - Memory: map-backed store for tests and throwaway sessions
//
// Saves are idempotent: writing the same value twice leaves the stored
// revision unchanged.
package store
