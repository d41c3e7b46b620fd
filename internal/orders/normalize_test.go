package orders_test

import (
	"testing"
	"time"

	"vesper/internal/language"
	"vesper/internal/orders"
)

func TestNormalizeAcceptsListShape(t *testing.T) {
	raw := []byte(`[{"slot":"maria_v2","idioma":"pt","publishAt":"2025-01-01T00:00:00Z","titulo":"Santo Terço"}]`)
	got := orders.Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 order, got %d", len(got))
	}
	order := got[0]
	if order.Language != language.Portuguese || order.Slot != "maria_v2" {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Title != "Santo Terço" {
		t.Fatalf("expected titulo alias to be read, got %q", order.Title)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if order.PublishAt == nil || !order.PublishAt.Equal(want) {
		t.Fatalf("unexpected publish time %v", order.PublishAt)
	}
}

func TestNormalizeAcceptsOrdersKeyShape(t *testing.T) {
	raw := []byte(`{"orders":[{"slot":"maria_v2","lang":"en"},{"slot":"rosario","language":"es"}]}`)
	got := orders.Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Fatalf("expected document order preserved, got %+v", got)
	}
}

func TestNormalizeAcceptsEncodedString(t *testing.T) {
	raw := []byte(`"[{\"slot\":\"maria_v2\",\"lang\":\"pl\"}]"`)
	got := orders.Normalize(raw)
	if len(got) != 1 || got[0].Language != language.Polish {
		t.Fatalf("expected decoded string shape, got %+v", got)
	}
}

func TestNormalizeDropsMalformedEntries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"garbage", `{{{`, 0},
		{"wrong shape", `{"jobs": []}`, 0},
		{"number list", `[1, 2, 3]`, 0},
		{"missing slot", `[{"idioma":"pt"}]`, 0},
		{"unknown language", `[{"slot":"x","idioma":"fr"}]`, 0},
		{"mixed", `[{"slot":"maria_v2","idioma":"pt"}, 42, {"bad": true}]`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := orders.Normalize([]byte(tc.raw)); len(got) != tc.want {
				t.Fatalf("expected %d orders, got %+v", tc.want, got)
			}
		})
	}
}

func TestNormalizeReadsPolicyAndTrackAliases(t *testing.T) {
	raw := []byte(`[{"slot":"maria_v2","idioma":"pt","music_policy":"AVE_MARIA","faixa":"ave_maria_schubert.mp3","job_id":"explicit-1"}]`)
	got := orders.Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 order, got %d", len(got))
	}
	if got[0].MusicPolicy != orders.MusicAveMaria {
		t.Fatalf("unexpected policy %q", got[0].MusicPolicy)
	}
	if got[0].ExplicitTrack != "ave_maria_schubert.mp3" {
		t.Fatalf("unexpected track %q", got[0].ExplicitTrack)
	}
	if got[0].ExplicitJobID != "explicit-1" {
		t.Fatalf("unexpected job id %q", got[0].ExplicitJobID)
	}
}

func TestParseMusicPolicyUnknownIsUnspecified(t *testing.T) {
	if got := orders.ParseMusicPolicy("heavy_metal"); got != orders.MusicUnspecified {
		t.Fatalf("unexpected policy %q", got)
	}
	if got := orders.ParseMusicPolicy(" bg_random "); got != orders.MusicBGRandom {
		t.Fatalf("unexpected policy %q", got)
	}
}
