// Package orders normalizes the raw work-order document, filters orders by
// the publish window, derives the stable job identity used for idempotency,
// and classifies each order as eligible or skipped.
//
// The document on the asset store may be a JSON list, an object with an
// "orders" key, or a JSON-encoded string of either; field names vary across
// producer versions (idioma/lang/language), so normalization maps every
// recognized alias onto one canonical WorkOrder type. Malformed entries are
// dropped, never fatal to the batch.
package orders
