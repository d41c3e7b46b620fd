package drive

import "testing"

func TestQueryBuildsPredicate(t *testing.T) {
	q := NewQuery().InParent("abc123").NotTrashed().NameEquals("state.json").IsFolder()
	want := "'abc123' in parents and trashed=false and name='state.json' and mimeType='application/vnd.google-apps.folder'"
	if got := q.String(); got != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", got, want)
	}
}

func TestQueryEscapesNames(t *testing.T) {
	q := NewQuery().NameEquals(`O'Brien\music.mp3`)
	want := `name='O\'Brien\\music.mp3'`
	if got := q.String(); got != want {
		t.Fatalf("unexpected escaping: got %s want %s", got, want)
	}
}
