package language_test

import (
	"testing"

	"vesper/internal/language"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want language.Code
		ok   bool
	}{
		{"pt", language.Portuguese, true},
		{"PT", language.Portuguese, true},
		{" en ", language.English, true},
		{"spanish", language.Spanish, true},
		{"polski", language.Polish, true},
		{"fr", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := language.Parse(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Parse(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestVoice(t *testing.T) {
	if voice := language.Portuguese.Voice(); voice != "pt-BR" {
		t.Fatalf("unexpected voice %q", voice)
	}
	if voice := language.Code("xx").Voice(); voice != "" {
		t.Fatalf("expected empty voice for unknown code, got %q", voice)
	}
}

func TestAllOrder(t *testing.T) {
	all := language.All()
	if len(all) != 4 || all[0] != language.Portuguese || all[3] != language.Polish {
		t.Fatalf("unexpected language order: %v", all)
	}
}
