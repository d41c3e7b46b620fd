package orders_test

import (
	"strings"
	"testing"
	"time"

	"vesper/internal/language"
	"vesper/internal/orders"
)

func TestJobIDIsDeterministic(t *testing.T) {
	publish := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	order := orders.WorkOrder{
		Language:  language.Portuguese,
		Slot:      "maria_v2",
		PublishAt: &publish,
		Index:     0,
	}
	first := orders.JobID(order)
	second := orders.JobID(order)
	if first != second {
		t.Fatalf("JobID not deterministic: %q vs %q", first, second)
	}
	if first != "maria_v2_pt_1735689600_0" {
		t.Fatalf("unexpected id %q", first)
	}
}

func TestJobIDExplicitWins(t *testing.T) {
	order := orders.WorkOrder{Slot: "maria_v2", Language: language.English, ExplicitJobID: "My Job #42!"}
	if got := orders.JobID(order); got != "My_Job_42" {
		t.Fatalf("unexpected sanitized explicit id %q", got)
	}
}

func TestJobIDSanitization(t *testing.T) {
	order := orders.WorkOrder{Slot: "terço///das   mães", Language: language.Portuguese, Index: 3}
	id := orders.JobID(order)
	for _, r := range id {
		valid := r == '_' || r == '.' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !valid {
			t.Fatalf("invalid rune %q in id %q", r, id)
		}
	}
	if strings.Contains(id, "__") {
		t.Fatalf("expected collapsed separators in %q", id)
	}
}

func TestJobIDTruncatesAndDefaults(t *testing.T) {
	order := orders.WorkOrder{ExplicitJobID: strings.Repeat("a", 200)}
	if got := orders.JobID(order); len(got) != 64 {
		t.Fatalf("expected bounded id, got %d runes", len(got))
	}
	order = orders.WorkOrder{ExplicitJobID: "§§§"}
	if got := orders.JobID(order); got != "job" {
		t.Fatalf("expected placeholder id, got %q", got)
	}
}
