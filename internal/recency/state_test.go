package recency_test

import (
	"context"
	"encoding/json"
	"testing"

	"vesper/internal/drive"
	"vesper/internal/language"
	"vesper/internal/recency"
)

func TestPushRecentDedupesAndCaps(t *testing.T) {
	list := []string{"b.jpg", "c.jpg"}
	list = recency.PushRecent(list, "B.JPG", 3)
	if len(list) != 2 || list[0] != "B.JPG" || list[1] != "c.jpg" {
		t.Fatalf("expected case-insensitive de-dupe, got %v", list)
	}
	list = recency.PushRecent(list, "a.jpg", 3)
	list = recency.PushRecent(list, "d.jpg", 3)
	if len(list) != 3 {
		t.Fatalf("expected cap at 3, got %v", list)
	}
	if list[0] != "d.jpg" {
		t.Fatalf("expected newest first, got %v", list)
	}
}

func TestPushRecentIgnoresEmpty(t *testing.T) {
	list := recency.PushRecent([]string{"a"}, "  ", 5)
	if len(list) != 1 {
		t.Fatalf("expected empty item to be ignored, got %v", list)
	}
}

func TestLoadDefaultsOnAbsence(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)

	state := recency.Load(context.Background(), fake, folder)
	if state == nil || state.RecentImages == nil || state.RecentMusic == nil {
		t.Fatalf("expected initialized empty state, got %+v", state)
	}
}

func TestLoadDefaultsOnCorruption(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)
	fake.AddFile(folder, drive.StateName, []byte("{{not json"), drive.MimeJSON)

	state := recency.Load(context.Background(), fake, folder)
	if len(state.Images(language.Portuguese)) != 0 {
		t.Fatalf("expected empty state on corrupt document, got %+v", state)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)

	state := recency.NewState()
	state.RecordImages(language.Portuguese, []string{"img1.jpg", "img2.jpg"}, 20)
	state.RecordMusic(language.Portuguese, "hymn.mp3", 8)
	if err := recency.Save(context.Background(), fake, folder, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := recency.Load(context.Background(), fake, folder)
	images := loaded.Images(language.Portuguese)
	if len(images) != 2 || images[0] != "img2.jpg" {
		t.Fatalf("unexpected images after round trip: %v", images)
	}
	music := loaded.Music(language.Portuguese)
	if len(music) != 1 || music[0] != "hymn.mp3" {
		t.Fatalf("unexpected music after round trip: %v", music)
	}
}

func TestSaveReplacesDocumentAcrossRuns(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)

	first := recency.NewState()
	first.RecordImages(language.Portuguese, []string{"a.jpg"}, 20)
	if err := recency.Save(context.Background(), fake, folder, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := recency.Load(context.Background(), fake, folder)
	second.RecordImages(language.Portuguese, []string{"b.jpg"}, 20)
	if err := recency.Save(context.Background(), fake, folder, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	count := 0
	for _, name := range fake.Names(folder) {
		if name == drive.StateName {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single state document, found %d", count)
	}

	third := recency.Load(context.Background(), fake, folder)
	images := third.Images(language.Portuguese)
	if len(images) != 2 || images[0] != "b.jpg" || images[1] != "a.jpg" {
		t.Fatalf("expected latest ledger [b.jpg a.jpg], got %v", images)
	}
}

func TestSavedDocumentShape(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)
	state := recency.NewState()
	state.RecordMusic(language.English, "track.mp3", 8)
	if err := recency.Save(context.Background(), fake, folder, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	file, err := drive.FindFile(context.Background(), fake, folder, drive.StateName)
	if err != nil {
		t.Fatalf("state document not uploaded: %v", err)
	}
	data, _ := fake.Content(file.ID)
	var doc map[string]map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("state document is not valid JSON: %v", err)
	}
	if got := doc["recent_music"]["en"]; len(got) != 1 || got[0] != "track.mp3" {
		t.Fatalf("unexpected document content: %v", doc)
	}
}

func TestAvoidIsCaseInsensitive(t *testing.T) {
	avoid := recency.Avoid([]string{"Track.MP3"})
	if _, ok := avoid["track.mp3"]; !ok {
		t.Fatalf("expected lowered keys, got %v", avoid)
	}
}
