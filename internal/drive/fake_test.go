package drive_test

import (
	"bytes"
	"context"
	"testing"

	"vesper/internal/drive"
)

func TestFakeUploadReplacesSameName(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderConfig)

	firstID, err := fake.Upload(context.Background(), folder, drive.StateName, []byte("v1"), drive.MimeJSON)
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	secondID, err := fake.Upload(context.Background(), folder, drive.StateName, []byte("v2"), drive.MimeJSON)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if firstID != secondID {
		t.Fatalf("replacement changed the file ID: %s then %s", firstID, secondID)
	}

	if names := fake.Names(folder); len(names) != 1 {
		t.Fatalf("expected one file after replacement, got %v", names)
	}
	data, err := fake.Download(context.Background(), secondID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(data, []byte("v2")) {
		t.Fatalf("expected replaced content v2, got %q", data)
	}
}

func TestFakeUploadKeepsDistinctNames(t *testing.T) {
	fake := drive.NewFake()
	folder := fake.AddFolder("root", drive.FolderLogs)

	if _, err := fake.Upload(context.Background(), folder, "log_a.txt", []byte("a"), drive.MimeText); err != nil {
		t.Fatalf("upload a: %v", err)
	}
	if _, err := fake.Upload(context.Background(), folder, "log_b.txt", []byte("b"), drive.MimeText); err != nil {
		t.Fatalf("upload b: %v", err)
	}
	if names := fake.Names(folder); len(names) != 2 {
		t.Fatalf("expected both files kept, got %v", names)
	}
}
