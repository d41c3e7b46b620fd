package tts_test

import (
	"strings"
	"testing"

	"vesper/internal/tts"
)

func TestSplitRespectsLimit(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("palavra ", 1000))
	chunks := tts.Split(text, 100)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if len(chunk) > 100 {
			t.Fatalf("chunk %d exceeds limit: %d bytes", i, len(chunk))
		}
	}
	if got := strings.Join(chunks, " "); got != text {
		t.Fatal("chunks do not reassemble into the original text")
	}
}

func TestSplitBoundsMultiByteTextInBytes(t *testing.T) {
	// 2-byte runes throughout; a rune-counted split would build chunks
	// nearly twice the byte limit.
	text := strings.TrimSpace(strings.Repeat("oração àçãé ", 400))
	chunks := tts.Split(text, 100)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if len(chunk) > 100 {
			t.Fatalf("chunk %d is %d bytes, over the 100 byte limit", i, len(chunk))
		}
	}
	if got := strings.Join(chunks, " "); got != text {
		t.Fatal("chunks do not reassemble into the original text")
	}
}

func TestSplitEmpty(t *testing.T) {
	if chunks := tts.Split("   ", 100); chunks != nil {
		t.Fatalf("expected nil for blank text, got %v", chunks)
	}
}

func TestSplitOversizedWord(t *testing.T) {
	word := strings.Repeat("a", 150)
	chunks := tts.Split("antes "+word+" depois", 100)
	if len(chunks) != 3 {
		t.Fatalf("expected the oversized word isolated, got %v", chunks)
	}
	if chunks[1] != word {
		t.Fatalf("expected oversized word preserved, got %q", chunks[1])
	}
}
