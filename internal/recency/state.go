package recency

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vesper/internal/drive"
	"vesper/internal/language"
)

// State is the persisted anti-repetition ledger. Lists are newest-first,
// de-duplicated case-insensitively, and capped.
type State struct {
	RecentImages map[string][]string `json:"recent_images"`
	RecentMusic  map[string][]string `json:"recent_music"`
}

// NewState returns an empty ledger.
func NewState() *State {
	return &State{
		RecentImages: map[string][]string{},
		RecentMusic:  map[string][]string{},
	}
}

// Load reads the state document from the config folder. Absence or a parse
// failure yields an empty state, never an error that fails the run.
func Load(ctx context.Context, store drive.Store, configFolderID string) *State {
	file, err := drive.FindFile(ctx, store, configFolderID, drive.StateName)
	if err != nil {
		return NewState()
	}
	data, err := store.Download(ctx, file.ID)
	if err != nil {
		return NewState()
	}
	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return NewState()
	}
	if state.RecentImages == nil {
		state.RecentImages = map[string][]string{}
	}
	if state.RecentMusic == nil {
		state.RecentMusic = map[string][]string{}
	}
	return state
}

// Save persists the full ledger to the config folder.
func Save(ctx context.Context, store drive.Store, configFolderID string, state *State) error {
	if state == nil {
		return errors.New("nil state")
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	_, err = store.Upload(ctx, configFolderID, drive.StateName, data, drive.MimeJSON)
	return err
}

// Images returns the recent image names for a language.
func (s *State) Images(lang language.Code) []string {
	return s.RecentImages[lang.String()]
}

// Music returns the recent music names for a language.
func (s *State) Music(lang language.Code) []string {
	return s.RecentMusic[lang.String()]
}

// RecordImages pushes used image names, newest first, onto the ledger.
func (s *State) RecordImages(lang language.Code, names []string, max int) {
	list := s.RecentImages[lang.String()]
	for _, name := range names {
		list = PushRecent(list, name, max)
	}
	s.RecentImages[lang.String()] = list
}

// RecordMusic pushes a used music name onto the ledger.
func (s *State) RecordMusic(lang language.Code, name string, max int) {
	if strings.TrimSpace(name) == "" {
		return
	}
	s.RecentMusic[lang.String()] = PushRecent(s.RecentMusic[lang.String()], name, max)
}

// PushRecent removes any case-insensitive duplicate of item, prepends it,
// and truncates to maxLen.
func PushRecent(list []string, item string, maxLen int) []string {
	item = strings.TrimSpace(item)
	if item == "" || maxLen <= 0 {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	for _, existing := range list {
		if strings.EqualFold(existing, item) {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

// Avoid builds a case-insensitive lookup set from a recent list.
func Avoid(list []string) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, item := range list {
		out[strings.ToLower(item)] = struct{}{}
	}
	return out
}
