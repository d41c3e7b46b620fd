package assets_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"vesper/internal/assets"
	"vesper/internal/drive"
	"vesper/internal/orders"
	"vesper/internal/recency"
	"vesper/internal/services"
)

func seededSelector() *assets.Selector {
	return assets.New(rand.New(rand.NewPCG(7, 11)))
}

func pool(prefix string, n int) []drive.File {
	out := make([]drive.File, n)
	for i := range out {
		out[i] = drive.File{ID: fmt.Sprintf("%s-%d", prefix, i), Name: fmt.Sprintf("%s_%d.jpg", prefix, i)}
	}
	return out
}

func TestSelectImagesPrefersFresh(t *testing.T) {
	images := pool("img", 10)
	avoid := recency.Avoid([]string{"img_0.jpg", "img_1.jpg"})

	got, err := seededSelector().SelectImages(images, 8, avoid)
	if err != nil {
		t.Fatalf("SelectImages failed: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 images, got %d", len(got))
	}
	for _, f := range got {
		if f.Name == "img_0.jpg" || f.Name == "img_1.jpg" {
			t.Fatalf("avoided image %s selected while fresh items sufficed", f.Name)
		}
	}
}

func TestSelectImagesBackfillsWhenFreshScarce(t *testing.T) {
	images := pool("img", 6)
	avoid := recency.Avoid([]string{"img_0.jpg", "img_1.jpg", "img_2.jpg", "img_3.jpg"})

	got, err := seededSelector().SelectImages(images, 6, avoid)
	if err != nil {
		t.Fatalf("SelectImages failed: %v", err)
	}
	// Only 2 fresh items remain, below min(count,5), so avoided items backfill.
	if len(got) != 6 {
		t.Fatalf("expected backfill to 6, got %d", len(got))
	}
}

func TestSelectImagesEmptyPool(t *testing.T) {
	_, err := seededSelector().SelectImages(nil, 4, nil)
	if !errors.Is(err, services.ErrAssetUnavailable) {
		t.Fatalf("expected asset unavailable, got %v", err)
	}
}

func TestSelectImagesDeterministicWithSeed(t *testing.T) {
	images := pool("img", 20)
	first, err := assets.New(rand.New(rand.NewPCG(1, 2))).SelectImages(images, 5, nil)
	if err != nil {
		t.Fatalf("SelectImages failed: %v", err)
	}
	second, err := assets.New(rand.New(rand.NewPCG(1, 2))).SelectImages(images, 5, nil)
	if err != nil {
		t.Fatalf("SelectImages failed: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("expected deterministic selection with fixed seed: %v vs %v", first, second)
		}
	}
}

func TestSelectMusicMarianExplicitTrack(t *testing.T) {
	maria := []drive.File{{ID: "m1", Name: "schubert.mp3"}, {ID: "m2", Name: "gounod.mp3"}}
	got := seededSelector().SelectMusic(orders.MusicAveMaria, "gounod.mp3", nil, maria, nil)
	if got == nil || got.ID != "m2" {
		t.Fatalf("expected exact-name lookup, got %+v", got)
	}
}

func TestSelectMusicMarianFallbackToRandom(t *testing.T) {
	maria := []drive.File{{ID: "m1", Name: "schubert.mp3"}}
	got := seededSelector().SelectMusic(orders.MusicAveMaria, "missing.mp3", nil, maria, nil)
	if got == nil || got.ID != "m1" {
		t.Fatalf("expected fallback pick from marian pool, got %+v", got)
	}
}

func TestSelectMusicBackgroundAvoidsRecent(t *testing.T) {
	bg := []drive.File{{ID: "b1", Name: "calm.mp3"}, {ID: "b2", Name: "soft.mp3"}}
	avoid := recency.Avoid([]string{"calm.mp3"})
	got := seededSelector().SelectMusic(orders.MusicBGRandom, "", bg, nil, avoid)
	if got == nil || got.Name != "soft.mp3" {
		t.Fatalf("expected non-avoided track, got %+v", got)
	}
}

func TestSelectMusicEmptyPoolIsAbsent(t *testing.T) {
	if got := seededSelector().SelectMusic(orders.MusicBGRandom, "", nil, nil, nil); got != nil {
		t.Fatalf("expected absent music, got %+v", got)
	}
}

func TestSelectMusicAllAvoidedStillPicks(t *testing.T) {
	bg := []drive.File{{ID: "b1", Name: "calm.mp3"}}
	avoid := recency.Avoid([]string{"calm.mp3"})
	if got := seededSelector().SelectMusic(orders.MusicUnspecified, "", bg, nil, avoid); got == nil {
		t.Fatal("expected repetition over silence when everything is recent")
	}
}
