// Package journal provides SQLite-backed audit storage for dispatched
// bot commands.
//
// Every dispatched request becomes an invocation row; its reply becomes
// an outcome row. The journal is an audit trail, not a dependency of the
// answer: write failures are logged by the dispatcher and the reply is
// sent regardless.
//
// Conventions:
//   - All ordering uses seq INTEGER (the dispatcher's logical clock),
//     with id as the tie-breaker, so reads are deterministic.
//   - Writes use ON CONFLICT DO NOTHING; re-recording an invocation is a
//     no-op, not an error.
//   - Each invocation has at most one outcome (UNIQUE on invocation_id).
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: outcomes must reference a recorded invocation
package journal
