package drive_test

import (
	"context"
	"errors"
	"testing"

	"vesper/internal/drive"
	"vesper/internal/language"
)

func seedAssetFolders(fake *drive.Fake) (configID, assetsID string) {
	configID = fake.AddFolder("root", drive.FolderConfig)
	assetsID = fake.AddFolder("root", drive.FolderAssets)
	fake.AddFolder(assetsID, drive.FolderImages)
	fake.AddFolder("root", drive.FolderScripts)
	return configID, assetsID
}

func TestResolveLayoutCreatesOutputFolders(t *testing.T) {
	fake := drive.NewFake()
	seedAssetFolders(fake)

	layout, err := drive.ResolveLayout(context.Background(), fake, "root")
	if err != nil {
		t.Fatalf("ResolveLayout failed: %v", err)
	}

	for _, lang := range language.All() {
		if layout.Videos[lang] == "" {
			t.Fatalf("missing video folder for %s", lang)
		}
		if layout.Thumbs[lang] == "" {
			t.Fatalf("missing thumbnail folder for %s", lang)
		}
	}
	if layout.Logs == "" || layout.MusicBG == "" || layout.MusicMaria == "" {
		t.Fatalf("missing ensured folders: %+v", layout)
	}

	names := fake.Names("root")
	found := false
	for _, name := range names {
		if name == drive.FolderVideoPrefix+"pt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected pt video folder to be created, names: %v", names)
	}
}

func TestResolveLayoutRequiresConfigFolder(t *testing.T) {
	fake := drive.NewFake()
	// No folders seeded at all.
	_, err := drive.ResolveLayout(context.Background(), fake, "root")
	if !errors.Is(err, drive.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindFile(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", "stuff")
	fake.AddFile(folder, "a.txt", []byte("a"), drive.MimeText)

	file, err := drive.FindFile(context.Background(), fake, folder, "a.txt")
	if err != nil {
		t.Fatalf("FindFile failed: %v", err)
	}
	if file.Name != "a.txt" {
		t.Fatalf("unexpected file %+v", file)
	}
	if _, err := drive.FindFile(context.Background(), fake, folder, "missing.txt"); !errors.Is(err, drive.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
