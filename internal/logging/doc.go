// Package logging builds the slog loggers used across Vesper.
//
// It selects console or JSON output from configuration, mirrors log lines
// into the configured log directory, and exposes typed attribute helpers so
// call sites stay terse. Standardized field keys (component, job_id, stage,
// run_id) keep per-job log lines greppable across a run.
package logging
