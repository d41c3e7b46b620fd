// Package script parses the tab-separated script files produced by the
// content generator and extracts the narration text plus music directives.
//
// Two legacy row shapes are accepted (run/order/type/text and
// order/type/text); rows with fewer columns or a non-numeric order are
// dropped, a header row is skipped, and rows are re-sorted by order because
// source order inside the file is not trusted. Narration extraction pads
// short scripts by repeating the text verbatim until it clears a word-count
// ceiling so synthesized audio never undershoots the target video length.
package script
