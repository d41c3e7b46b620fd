// Package ffmpeg drives the external transcoder with explicit filter-graph
// commands.
//
// The Engine builds one argument slice per pipeline stage (audio concat,
// slideshow assembly, music mix, final mux, thumbnail composition) and runs
// it through an injectable Executor, so tests assert on the exact command
// without invoking the binary. Durations, dimensions, frame rate, and gain
// all arrive as explicit parameters; the engine holds no hidden state.
package ffmpeg
