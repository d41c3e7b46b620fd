// Package assets resolves the concrete image set and music track for a job,
// preferring items absent from the anti-repetition ledger.
//
// Selection never fails for a non-empty pool: when too few fresh items
// remain, recently used ones backfill the request. Music is optional by
// design; a job with no available track still renders with narration-only
// audio.
package assets
