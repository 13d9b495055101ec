// Package store provides a SQLite-backed tally ledger.
//
// The ledger is append-only. Each entry records an int32 value, a logical
// sequence number, the saturated running total after the value and an
// identifier from package ident ("timestamp <time> id <uuid>").
//
// # Ordering
//
//   - seq is assigned as MAX(seq)+1 inside the append transaction
//   - total is the previous row's total saturated-added with the new value
//   - all reads use ORDER BY seq ASC
//   - wall-clock time is informational only and never used for ordering
//
// # Time
//
// recorded_at holds the append instant as unix seconds and is the source of
// Entry.RecordedAt. stamp is display text in the writer's local zone; it is
// returned as-is and never parsed back on read.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - _txlock=immediate: BEGIN takes the write lock, so handles on the same
//     file serialize appends
//   - single open connection per handle
package store
