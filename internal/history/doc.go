// Package history persists a local SQLite ledger of past runs and their
// per-job outcomes.
//
// The ledger is observability only: it feeds the history CLI command and is
// never consulted for idempotency, which rests solely on output existence
// in the asset store.
package history
