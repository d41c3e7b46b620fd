// Package recency persists the per-language ledger of recently used image
// and music names so consecutive runs avoid reusing the same assets.
//
// The ledger is best-effort variety, not a correctness lock: a missing or
// corrupt document loads as empty, concurrent runs may lose updates, and
// nothing in the pipeline depends on it for idempotency.
package recency
