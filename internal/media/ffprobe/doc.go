// Package ffprobe wraps ffprobe invocations for media inspection.
//
// The pipeline uses it to measure synthesized narration audio before the
// slideshow duration is derived. Output is decoded from ffprobe's JSON
// printer into typed stream and format structures.
package ffprobe
