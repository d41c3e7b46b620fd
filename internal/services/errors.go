package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks errors that must abort the run before any job starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrMalformedInput marks unparseable documents or rows; the offending unit is dropped.
	ErrMalformedInput = errors.New("malformed input")
	// ErrAssetUnavailable marks jobs with no usable script or image pool; the job is skipped.
	ErrAssetUnavailable = errors.New("asset unavailable")
	// ErrPipelineStage marks synthesis, transcode, or mux failures; the job is failed.
	ErrPipelineStage = errors.New("pipeline stage error")
	// ErrPersistence marks state or log upload failures after rendering.
	ErrPersistence = errors.New("persistence error")
	// ErrExternalTool marks unexpected failures of external binaries or APIs.
	ErrExternalTool = errors.New("external tool error")
	// ErrNotFound marks missing folders or documents on the asset store.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrPipelineStage
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome is the terminal classification the runner records for a job error.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSkipped
)

// ClassifyOutcome maps a job error to the terminal state the runner should
// record. Missing assets skip the job; everything else fails it.
func ClassifyOutcome(err error) Outcome {
	switch {
	case errors.Is(err, ErrAssetUnavailable), errors.Is(err, ErrNotFound):
		return OutcomeSkipped
	default:
		return OutcomeFailed
	}
}

// Reason produces the human-readable reason string stored with a terminal
// job state, with the marker prefix stripped.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, marker := range []error{
		ErrConfiguration, ErrMalformedInput, ErrAssetUnavailable,
		ErrPipelineStage, ErrPersistence, ErrExternalTool, ErrNotFound,
	} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(text, prefix) {
			return strings.TrimPrefix(text, prefix)
		}
	}
	return text
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
