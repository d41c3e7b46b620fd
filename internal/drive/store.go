package drive

import (
	"context"
	"errors"
)

// Well-known MIME types on the asset store.
const (
	MimeFolder = "application/vnd.google-apps.folder"
	MimeText   = "text/plain"
	MimeJSON   = "application/json"
	MimeMP4    = "video/mp4"
	MimeJPEG   = "image/jpeg"
)

// ErrNotFound reports a missing file or folder.
var ErrNotFound = errors.New("drive: not found")

// File describes a single entry on the asset store.
type File struct {
	ID       string
	Name     string
	MimeType string
}

// IsFolder reports whether the entry is a folder.
func (f File) IsFolder() bool { return f.MimeType == MimeFolder }

// Store is the asset store client boundary. All folder identities are
// resolved once per run (see Layout) and passed down.
type Store interface {
	// ListFolder returns the non-trashed children of a folder.
	ListFolder(ctx context.Context, folderID string) ([]File, error)
	// Download fetches a file's content.
	Download(ctx context.Context, fileID string) ([]byte, error)
	// Upload writes a file inside a folder and returns its ID, replacing
	// any existing file with the same name.
	Upload(ctx context.Context, folderID, name string, data []byte, mimeType string) (string, error)
	// FindFolder locates a child folder by exact name, or ErrNotFound.
	FindFolder(ctx context.Context, parentID, name string) (string, error)
	// EnsureFolder locates a child folder by exact name, creating it if absent.
	EnsureFolder(ctx context.Context, parentID, name string) (string, error)
}

// FindFile returns the first child with the given exact name.
func FindFile(ctx context.Context, store Store, folderID, name string) (File, error) {
	files, err := store.ListFolder(ctx, folderID)
	if err != nil {
		return File{}, err
	}
	for _, f := range files {
		if f.Name == name {
			return f, nil
		}
	}
	return File{}, ErrNotFound
}
