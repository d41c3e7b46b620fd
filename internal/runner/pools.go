package runner

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"vesper/internal/drive"
)

// poolCache memoizes folder listings for one run. A run sees a single
// consistent view of every pool even when the store changes underneath it.
type poolCache struct {
	store  drive.Store
	layout *drive.Layout

	listings   map[string][]drive.File
	slotImages map[string][]drive.File
}

func newPoolCache(store drive.Store, layout *drive.Layout) *poolCache {
	return &poolCache{
		store:      store,
		layout:     layout,
		listings:   map[string][]drive.File{},
		slotImages: map[string][]drive.File{},
	}
}

func (p *poolCache) list(ctx context.Context, folderID string) ([]drive.File, error) {
	if cached, ok := p.listings[folderID]; ok {
		return cached, nil
	}
	files, err := p.store.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	p.listings[folderID] = files
	return files, nil
}

// images returns the image pool for a slot: the slot's own folder when it
// exists and is non-empty, otherwise the shared pool.
func (p *poolCache) images(ctx context.Context, layout *drive.Layout, slot string) ([]drive.File, error) {
	if cached, ok := p.slotImages[slot]; ok {
		return cached, nil
	}
	pool, err := p.imagesIn(ctx, layout.ImagesRoot, slot)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		pool, err = p.imagesIn(ctx, layout.ImagesRoot, drive.FolderImagesCommon)
		if err != nil {
			return nil, err
		}
	}
	p.slotImages[slot] = pool
	return pool, nil
}

func (p *poolCache) imagesIn(ctx context.Context, imagesRootID, name string) ([]drive.File, error) {
	folderID, err := p.store.FindFolder(ctx, imagesRootID, name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	files, err := p.list(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return filterFiles(files, isImage), nil
}

// music returns the audio files in a music pool folder.
func (p *poolCache) music(ctx context.Context, folderID string) ([]drive.File, error) {
	files, err := p.list(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return filterFiles(files, isAudio), nil
}

func filterFiles(files []drive.File, keep func(drive.File) bool) []drive.File {
	out := make([]drive.File, 0, len(files))
	for _, f := range files {
		if !f.IsFolder() && keep(f) {
			out = append(out, f)
		}
	}
	return out
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {},
}

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".m4a": {}, ".aac": {}, ".wav": {}, ".ogg": {}, ".flac": {},
}

func isImage(f drive.File) bool {
	if strings.HasPrefix(f.MimeType, "image/") {
		return true
	}
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(f.Name))]
	return ok
}

func isAudio(f drive.File) bool {
	if strings.HasPrefix(f.MimeType, "audio/") {
		return true
	}
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(f.Name))]
	return ok
}

func isNotFound(err error) bool {
	return errors.Is(err, drive.ErrNotFound)
}
