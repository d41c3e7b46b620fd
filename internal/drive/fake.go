package drive

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Fake is an in-memory Store for tests. Folder and file IDs are synthetic
// and deterministic per insertion order.
type Fake struct {
	mu      sync.Mutex
	nextID  int
	entries map[string]*fakeEntry // id -> entry
}

type fakeEntry struct {
	file     File
	parentID string
	data     []byte
}

// NewFake returns an empty in-memory store with a root folder named "root".
func NewFake() *Fake {
	f := &Fake{entries: map[string]*fakeEntry{}}
	f.entries["root"] = &fakeEntry{file: File{ID: "root", Name: "root", MimeType: MimeFolder}}
	return f
}

func (f *Fake) allocID() string {
	f.nextID++
	return fmt.Sprintf("id-%03d", f.nextID)
}

// AddFolder inserts a folder and returns its ID.
func (f *Fake) AddFolder(parentID, name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.allocID()
	f.entries[id] = &fakeEntry{
		file:     File{ID: id, Name: name, MimeType: MimeFolder},
		parentID: parentID,
	}
	return id
}

// AddFile inserts a file with content and returns its ID.
func (f *Fake) AddFile(parentID, name string, data []byte, mimeType string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.allocID()
	f.entries[id] = &fakeEntry{
		file:     File{ID: id, Name: name, MimeType: mimeType},
		parentID: parentID,
		data:     append([]byte(nil), data...),
	}
	return id
}

// Content returns the stored bytes for a file ID.
func (f *Fake) Content(fileID string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[fileID]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), entry.data...), true
}

// Names returns the child names of a folder, sorted.
func (f *Fake) Names(folderID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, entry := range f.entries {
		if entry.parentID == folderID {
			names = append(names, entry.file.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (f *Fake) ListFolder(_ context.Context, folderID string) ([]File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[folderID]; !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	var out []File
	for _, entry := range f.entries {
		if entry.parentID == folderID {
			out = append(out, entry.file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) Download(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", fileID, ErrNotFound)
	}
	return append([]byte(nil), entry.data...), nil
}

func (f *Fake) Upload(_ context.Context, folderID, name string, data []byte, mimeType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[folderID]; !ok {
		return "", fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
	}
	for id, entry := range f.entries {
		if entry.parentID == folderID && entry.file.Name == name && !entry.file.IsFolder() {
			entry.file.MimeType = mimeType
			entry.data = append([]byte(nil), data...)
			return id, nil
		}
	}
	id := f.allocID()
	f.entries[id] = &fakeEntry{
		file:     File{ID: id, Name: name, MimeType: mimeType},
		parentID: folderID,
		data:     append([]byte(nil), data...),
	}
	return id, nil
}

func (f *Fake) FindFolder(_ context.Context, parentID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, entry := range f.entries {
		if entry.parentID == parentID && entry.file.Name == name && entry.file.IsFolder() {
			return id, nil
		}
	}
	return "", fmt.Errorf("folder %s under %s: %w", name, parentID, ErrNotFound)
}

func (f *Fake) EnsureFolder(ctx context.Context, parentID, name string) (string, error) {
	if id, err := f.FindFolder(ctx, parentID, name); err == nil {
		return id, nil
	}
	return f.AddFolder(parentID, name), nil
}
