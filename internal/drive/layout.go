package drive

import (
	"context"
	"fmt"

	"vesper/internal/language"
)

// Folder names fixed by the channel's Drive structure.
const (
	FolderConfig      = "00_config"
	FolderAssets      = "01_assets"
	FolderScripts     = "02_scripts_autogerados"
	FolderVideoPrefix = "03_outputs_videos_"
	FolderThumbPrefix = "04_outputs_thumbnails_"
	FolderLogs        = "05_logs"

	FolderImages       = "images"
	FolderImagesCommon = "common"
	FolderMusicBG      = "music_bg"
	FolderMusicMaria   = "music_ave_maria"
)

// Documents stored in the config folder.
const (
	WorkOrdersName = "work_orders.json"
	StateName      = "state.json"
)

// Layout holds every folder ID a run needs, resolved once at run start.
type Layout struct {
	Root       string
	Config     string
	Scripts    string
	ImagesRoot string
	MusicBG    string
	MusicMaria string
	Logs       string
	Videos     map[language.Code]string
	Thumbs     map[language.Code]string
}

// ResolveLayout walks the fixed folder structure under the root, creating
// missing output and log folders. Asset and config folders must already
// exist; their absence is an error because there is nothing to render
// without them.
func ResolveLayout(ctx context.Context, store Store, rootID string) (*Layout, error) {
	layout := &Layout{
		Root:   rootID,
		Videos: make(map[language.Code]string, 4),
		Thumbs: make(map[language.Code]string, 4),
	}

	var err error
	if layout.Config, err = store.FindFolder(ctx, rootID, FolderConfig); err != nil {
		return nil, fmt.Errorf("resolve %s: %w", FolderConfig, err)
	}
	if layout.Scripts, err = store.FindFolder(ctx, rootID, FolderScripts); err != nil {
		return nil, fmt.Errorf("resolve %s: %w", FolderScripts, err)
	}

	assets, err := store.FindFolder(ctx, rootID, FolderAssets)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", FolderAssets, err)
	}
	if layout.ImagesRoot, err = store.FindFolder(ctx, assets, FolderImages); err != nil {
		return nil, fmt.Errorf("resolve %s/%s: %w", FolderAssets, FolderImages, err)
	}
	if layout.MusicBG, err = store.EnsureFolder(ctx, assets, FolderMusicBG); err != nil {
		return nil, fmt.Errorf("resolve %s/%s: %w", FolderAssets, FolderMusicBG, err)
	}
	if layout.MusicMaria, err = store.EnsureFolder(ctx, assets, FolderMusicMaria); err != nil {
		return nil, fmt.Errorf("resolve %s/%s: %w", FolderAssets, FolderMusicMaria, err)
	}

	for _, lang := range language.All() {
		videoID, err := store.EnsureFolder(ctx, rootID, FolderVideoPrefix+lang.String())
		if err != nil {
			return nil, fmt.Errorf("resolve video folder for %s: %w", lang, err)
		}
		layout.Videos[lang] = videoID
		thumbID, err := store.EnsureFolder(ctx, rootID, FolderThumbPrefix+lang.String())
		if err != nil {
			return nil, fmt.Errorf("resolve thumbnail folder for %s: %w", lang, err)
		}
		layout.Thumbs[lang] = thumbID
	}

	if layout.Logs, err = store.EnsureFolder(ctx, rootID, FolderLogs); err != nil {
		return nil, fmt.Errorf("resolve %s: %w", FolderLogs, err)
	}
	return layout, nil
}
