// Package runner drives one batch invocation: it resolves the asset store
// layout, normalizes the work-order document, classifies every order against
// the publish window and the idempotency check, and renders each eligible
// job through the synthesis and transcode pipeline. Jobs end in exactly one
// of three states: rendered, skipped, or failed; a failure never stops the
// batch. Anti-repetition state is saved once after the loop and the run is
// recorded to the local history ledger.
package runner
