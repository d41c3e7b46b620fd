package script

import (
	"strings"

	"vesper/internal/orders"
)

// Step types with special meaning. Everything else is treated as an
// annotation and ignored by narration extraction.
const (
	// TagMusicPolicy rows set the effective music policy for the job.
	TagMusicPolicy = "musica"
	// TagExplicitTrack rows name a specific track in the Marian pool.
	TagExplicitTrack = "faixa"
)

// spokenTags are the step types whose text is narrated.
var spokenTags = map[string]struct{}{
	"fala":   {},
	"texto":  {},
	"oracao": {},
	"verso":  {},
}

// DefaultPhrase is narrated when a script yields no text at all. Rendering
// must never receive empty narration.
const DefaultPhrase = "Ave Maria, cheia de graça, o Senhor é convosco."

// Word-count bounds tuned against the 480-second target at a nominal
// speaking rate. Text below the floor is repeated verbatim until it exceeds
// the ceiling; the repetition is deliberately not sentence-aware.
const (
	wordFloor   = 700
	wordCeiling = 900
)

// Narration is the spoken text plus effective music directives for a job.
type Narration struct {
	Text          string
	MusicPolicy   orders.MusicPolicy
	ExplicitTrack string
}

// ExtractNarration walks the ordered steps, applying directive rows and
// collecting spoken text. Fallback chain: spoken-tag text, then all
// non-empty step text, then DefaultPhrase.
func ExtractNarration(steps []Step, defaultPolicy orders.MusicPolicy) Narration {
	result := Narration{MusicPolicy: defaultPolicy}
	var spoken []string
	var all []string
	for _, step := range steps {
		switch step.Type {
		case TagMusicPolicy:
			if policy := orders.ParseMusicPolicy(step.Text); policy != orders.MusicUnspecified {
				result.MusicPolicy = policy
			}
			continue
		case TagExplicitTrack:
			if step.Text != "" {
				result.ExplicitTrack = step.Text
			}
			continue
		}
		if step.Text == "" {
			continue
		}
		all = append(all, step.Text)
		if _, ok := spokenTags[step.Type]; ok {
			spoken = append(spoken, step.Text)
		}
	}

	text := strings.Join(spoken, " ")
	if text == "" {
		text = strings.Join(all, " ")
	}
	if text == "" {
		text = DefaultPhrase
	}
	result.Text = padToWordCeiling(text)
	return result
}

// padToWordCeiling repeats text end-to-end until it exceeds the word
// ceiling, but only when it starts below the floor.
func padToWordCeiling(text string) string {
	base := strings.TrimSpace(text)
	if countWords(base) >= wordFloor {
		return base
	}
	padded := base
	for countWords(padded) <= wordCeiling {
		padded = padded + " " + base
	}
	return padded
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
