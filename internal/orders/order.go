package orders

import (
	"time"

	"vesper/internal/language"
)

// MusicPolicy selects how background music is resolved for a job.
type MusicPolicy string

const (
	// MusicBGRandom picks a random track from the background pool.
	MusicBGRandom MusicPolicy = "bg_random"
	// MusicAveMaria picks from the dedicated Marian pool, honouring an
	// explicit track override when present.
	MusicAveMaria MusicPolicy = "ave_maria"
	// MusicUnspecified leaves the choice to the script or the default.
	MusicUnspecified MusicPolicy = ""
)

// ParseMusicPolicy maps a raw value onto a known policy. Unknown values are
// treated as unspecified rather than rejected.
func ParseMusicPolicy(raw string) MusicPolicy {
	switch MusicPolicy(normalizeKeyword(raw)) {
	case MusicBGRandom:
		return MusicBGRandom
	case MusicAveMaria:
		return MusicAveMaria
	default:
		return MusicUnspecified
	}
}

// WorkOrder is one requested video. Orders are rebuilt from the latest
// document every run and never mutated in place.
type WorkOrder struct {
	Language      language.Code
	Slot          string
	Title         string
	PublishAt     *time.Time
	MusicPolicy   MusicPolicy
	ExplicitTrack string
	ExplicitJobID string
	// Index is the order's position in the source document, used both for
	// identity derivation and to preserve processing order.
	Index int
}
