package script_test

import (
	"strings"
	"testing"

	"vesper/internal/orders"
	"vesper/internal/script"
)

func words(n int, word string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = word
	}
	return strings.Join(parts, " ")
}

func TestExtractNarrationCollectsSpokenText(t *testing.T) {
	steps := []script.Step{
		{Order: 1, Type: "fala", Text: words(400, "ave")},
		{Order: 2, Type: "nota", Text: "ignored annotation"},
		{Order: 3, Type: "oracao", Text: words(400, "maria")},
	}
	narration := script.ExtractNarration(steps, orders.MusicUnspecified)
	if strings.Contains(narration.Text, "ignored") {
		t.Fatal("annotation text leaked into narration")
	}
	if got := len(strings.Fields(narration.Text)); got != 800 {
		t.Fatalf("expected 800 words untouched above floor, got %d", got)
	}
}

func TestExtractNarrationDirectives(t *testing.T) {
	steps := []script.Step{
		{Order: 1, Type: "musica", Text: "AVE_MARIA"},
		{Order: 2, Type: "faixa", Text: "schubert.mp3"},
		{Order: 3, Type: "fala", Text: "Oremos."},
	}
	narration := script.ExtractNarration(steps, orders.MusicBGRandom)
	if narration.MusicPolicy != orders.MusicAveMaria {
		t.Fatalf("expected directive to override policy, got %q", narration.MusicPolicy)
	}
	if narration.ExplicitTrack != "schubert.mp3" {
		t.Fatalf("unexpected track %q", narration.ExplicitTrack)
	}
	if strings.Contains(narration.Text, "schubert") || strings.Contains(narration.Text, "AVE_MARIA") {
		t.Fatal("directive text leaked into narration")
	}
}

func TestExtractNarrationFallsBackToAllText(t *testing.T) {
	steps := []script.Step{
		{Order: 1, Type: "nota", Text: "Texto avulso."},
	}
	narration := script.ExtractNarration(steps, orders.MusicUnspecified)
	if !strings.Contains(narration.Text, "Texto avulso.") {
		t.Fatalf("expected fallback to all text, got %q", narration.Text)
	}
}

func TestExtractNarrationDefaultPhrase(t *testing.T) {
	narration := script.ExtractNarration(nil, orders.MusicUnspecified)
	if narration.Text == "" {
		t.Fatal("narration must never be empty")
	}
	if !strings.Contains(narration.Text, script.DefaultPhrase) {
		t.Fatalf("expected default phrase, got %q", narration.Text)
	}
}

func TestExtractNarrationPadsShortText(t *testing.T) {
	steps := []script.Step{{Order: 1, Type: "fala", Text: words(50, "ora")}}
	narration := script.ExtractNarration(steps, orders.MusicUnspecified)
	if got := len(strings.Fields(narration.Text)); got <= 900 {
		t.Fatalf("expected padding past the ceiling, got %d words", got)
	}
}

func TestExtractNarrationLeavesLongTextAlone(t *testing.T) {
	long := words(1500, "salve")
	steps := []script.Step{{Order: 1, Type: "fala", Text: long}}
	narration := script.ExtractNarration(steps, orders.MusicUnspecified)
	if narration.Text != long {
		t.Fatal("expected long narration to pass through unchanged")
	}
}
