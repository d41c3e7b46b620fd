package assets

import (
	"math/rand/v2"
	"strings"

	"vesper/internal/drive"
	"vesper/internal/orders"
	"vesper/internal/services"
)

// backfillFloor is the minimum number of fresh (non-avoided) items required
// before recently used items are mixed back in.
const backfillFloor = 5

// Selector picks media assets with injectable randomness for tests.
type Selector struct {
	rng *rand.Rand
}

// New returns a Selector. A nil source uses the global generator.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

func (s *Selector) shuffle(files []drive.File) {
	swap := func(i, j int) { files[i], files[j] = files[j], files[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(files), swap)
		return
	}
	rand.Shuffle(len(files), swap)
}

// SelectImages picks count images from pool, preferring names not in avoid.
// When fewer than min(count, 5) fresh items exist, avoided items backfill
// until count is reached or the pool is exhausted. An empty pool is an
// asset-unavailable error.
func (s *Selector) SelectImages(pool []drive.File, count int, avoid map[string]struct{}) ([]drive.File, error) {
	if count <= 0 {
		return nil, nil
	}
	if len(pool) == 0 {
		return nil, services.Wrap(services.ErrAssetUnavailable, "images", "select", "no assets", nil)
	}

	shuffled := append([]drive.File(nil), pool...)
	s.shuffle(shuffled)

	fresh := make([]drive.File, 0, len(shuffled))
	used := make([]drive.File, 0, len(shuffled))
	for _, f := range shuffled {
		if _, ok := avoid[strings.ToLower(f.Name)]; ok {
			used = append(used, f)
		} else {
			fresh = append(fresh, f)
		}
	}

	selected := fresh
	if len(fresh) < min(count, backfillFloor) {
		selected = append(selected, used...)
	}
	if len(selected) > count {
		selected = selected[:count]
	}
	return selected, nil
}

// SelectMusic resolves the track for a job. The Marian policy looks up the
// explicit track by exact name in the dedicated pool first, then falls back
// to a random non-avoided pick from that pool; every other policy picks
// from the background pool. A nil result without error means narration-only
// audio.
func (s *Selector) SelectMusic(policy orders.MusicPolicy, explicitTrack string, bgPool, mariaPool []drive.File, avoid map[string]struct{}) *drive.File {
	if policy == orders.MusicAveMaria {
		if explicitTrack != "" {
			for i := range mariaPool {
				if mariaPool[i].Name == explicitTrack {
					return &mariaPool[i]
				}
			}
		}
		return s.randomPick(mariaPool, avoid)
	}
	return s.randomPick(bgPool, avoid)
}

func (s *Selector) randomPick(pool []drive.File, avoid map[string]struct{}) *drive.File {
	if len(pool) == 0 {
		return nil
	}
	shuffled := append([]drive.File(nil), pool...)
	s.shuffle(shuffled)
	for i := range shuffled {
		if _, ok := avoid[strings.ToLower(shuffled[i].Name)]; !ok {
			return &shuffled[i]
		}
	}
	// Everything was recently used; repetition beats silence.
	return &shuffled[0]
}
