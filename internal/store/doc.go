// Package store keeps the history of suite runs in SQLite.
//
// Two tables:
//   - runs: one row per suite run, keyed by run id, with pass/fail tallies
//   - events: the reporter events of each run, keyed by (run_id, seq)
//
// # Ordering
//
// Runs are ordered by a store-assigned seq, events by the seq the suite's
// clock stamped on them. Queries never order by wall-clock time, so a
// history read back is identical no matter how fast the runs were.
//
// # Idempotency
//
// WriteRun is keyed on the run id. Writing the same run twice leaves the
// first copy untouched.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
