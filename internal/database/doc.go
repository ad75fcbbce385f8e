// Package database provides SQLite-based storage for detected haikus.
//
// The cache serves two purposes:
//   - Scans are idempotent: candidates are keyed by content signature, so
//     re-scanning the same corpus never creates duplicates.
//   - The post command needs "not yet posted" bookkeeping that survives
//     across daily cron runs.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. A unique index on the signature column gives dedup for free
//  4. WAL mode keeps concurrent scan/post invocations safe
package database
