package services_test

import (
	"errors"
	"testing"

	"vesper/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("exit status 1")
	err := services.Wrap(services.ErrPipelineStage, "mux", "ffmpeg", "final assembly", underlying)

	if !errors.Is(err, services.ErrPipelineStage) {
		t.Fatalf("expected pipeline stage marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected underlying error in chain, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "synthesis", "", "", nil)
	if !errors.Is(err, services.ErrPipelineStage) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want services.Outcome
	}{
		{"asset unavailable skips", services.Wrap(services.ErrAssetUnavailable, "images", "", "no assets", nil), services.OutcomeSkipped},
		{"not found skips", services.Wrap(services.ErrNotFound, "script", "", "missing", nil), services.OutcomeSkipped},
		{"stage failure fails", services.Wrap(services.ErrPipelineStage, "mix", "", "boom", nil), services.OutcomeFailed},
		{"plain error fails", errors.New("unclassified"), services.OutcomeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.ClassifyOutcome(tc.err); got != tc.want {
				t.Fatalf("ClassifyOutcome = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReasonStripsMarkerPrefix(t *testing.T) {
	err := services.Wrap(services.ErrAssetUnavailable, "images", "select", "no assets", nil)
	if got := services.Reason(err); got != "images: select: no assets" {
		t.Fatalf("unexpected reason %q", got)
	}
	if services.Reason(nil) != "" {
		t.Fatal("expected empty reason for nil error")
	}
}
