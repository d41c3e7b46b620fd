package orders

import (
	"encoding/json"
	"strings"
	"time"

	"vesper/internal/language"
)

// Recognized key aliases per field, in priority order.
var (
	languageKeys  = []string{"language", "idioma", "lang"}
	slotKeys      = []string{"slot", "template"}
	titleKeys     = []string{"title", "titulo"}
	publishKeys   = []string{"publishAt", "publish_at", "publish_at_utc"}
	policyKeys    = []string{"musicPolicy", "music_policy", "musica"}
	trackKeys     = []string{"explicitTrack", "track", "faixa"}
	jobIDKeys     = []string{"jobId", "job_id"}
	publishLayout = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
)

// Normalize turns the raw work-order document into canonical WorkOrders.
// Accepted shapes: a JSON list of objects, an object with an "orders" key
// holding a list, or a JSON-encoded string of either. Any other shape, and
// any non-object list entry, is dropped.
func Normalize(raw []byte) []WorkOrder {
	entries := decodeEntries(raw, 0)
	out := make([]WorkOrder, 0, len(entries))
	for _, entry := range entries {
		order, ok := buildOrder(entry, len(out))
		if !ok {
			continue
		}
		out = append(out, order)
	}
	return out
}

// decodeEntries unwraps the accepted document shapes. depth guards against
// pathological nested string encoding.
func decodeEntries(raw []byte, depth int) []map[string]any {
	if depth > 3 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	switch v := value.(type) {
	case []any:
		return objectEntries(v)
	case map[string]any:
		list, ok := v["orders"].([]any)
		if !ok {
			return nil
		}
		return objectEntries(list)
	case string:
		return decodeEntries([]byte(v), depth+1)
	default:
		return nil
	}
}

func objectEntries(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func buildOrder(entry map[string]any, index int) (WorkOrder, bool) {
	lang, ok := language.Parse(stringField(entry, languageKeys))
	if !ok {
		return WorkOrder{}, false
	}
	slot := strings.TrimSpace(stringField(entry, slotKeys))
	if slot == "" {
		return WorkOrder{}, false
	}
	order := WorkOrder{
		Language:      lang,
		Slot:          slot,
		Title:         strings.TrimSpace(stringField(entry, titleKeys)),
		MusicPolicy:   ParseMusicPolicy(stringField(entry, policyKeys)),
		ExplicitTrack: strings.TrimSpace(stringField(entry, trackKeys)),
		ExplicitJobID: strings.TrimSpace(stringField(entry, jobIDKeys)),
		Index:         index,
	}
	if published := parsePublishAt(stringField(entry, publishKeys)); published != nil {
		order.PublishAt = published
	}
	return order, true
}

func stringField(entry map[string]any, keys []string) string {
	for _, key := range keys {
		if value, ok := entry[key].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parsePublishAt(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range publishLayout {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

func normalizeKeyword(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
