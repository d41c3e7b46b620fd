package tts

import (
	"context"
	"strings"

	"vesper/internal/language"
)

// SampleRate is the fixed output sample rate in Hz.
const SampleRate = 24000

// RequestLimit bounds the bytes sent per synthesis request, with headroom
// under the API's 5000-byte input ceiling.
const RequestLimit = 4000

// Synthesizer converts one text chunk into mono LINEAR16 audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang language.Code) ([]byte, error)
}

// Split breaks text into chunks of at most limit bytes, splitting on
// whitespace. The limit is measured in bytes because the synthesis API
// bounds request input in bytes, and accented text carries multi-byte
// runes. A single word longer than the limit is emitted as its own chunk
// rather than dropped.
func Split(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	current := strings.Builder{}
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()
	return chunks
}
