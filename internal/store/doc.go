// Package store provides SQLite-backed durable keyed storage for folio.
//
// The store is a flat key-value surface split into named partitions:
//   - documents: one record per document, keyed by document id
//   - settings: a single record under a fixed id
//
// Records are opaque JSON bodies; the store never interprets them.
// Each Put/Delete is independently atomic (whole-record replacement) and
// there are no cross-partition or multi-record transactions.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// GetAll results are ordered by id so readers observe a deterministic
// listing regardless of insertion order.
package store
