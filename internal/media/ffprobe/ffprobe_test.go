package ffprobe

import (
	"encoding/json"
	"testing"
)

func TestResultDurationSeconds(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"audio","channels":1,"sample_rate":"24000"}],"format":{"duration":"432.51","format_name":"wav"}}`
	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := result.DurationSeconds(); got != 432.51 {
		t.Fatalf("unexpected duration %v", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("unexpected audio stream count %d", got)
	}
}

func TestResultDurationMissing(t *testing.T) {
	var result Result
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("expected 0 for missing duration, got %v", got)
	}
	result.Format.Duration = "not-a-number"
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("expected 0 for garbage duration, got %v", got)
	}
}
