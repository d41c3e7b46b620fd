package orders

import (
	"fmt"
	"strings"
)

const (
	jobIDMaxLen      = 64
	jobIDPlaceholder = "job"
)

// JobID derives the stable identity for a work order. An explicit id wins;
// otherwise the id is synthesized from slot, language, publish timestamp,
// and document index, then sanitized. The same order always yields the same
// id, within one run and across runs.
func JobID(order WorkOrder) string {
	if order.ExplicitJobID != "" {
		return sanitizeJobID(order.ExplicitJobID)
	}
	publish := int64(0)
	if order.PublishAt != nil {
		publish = order.PublishAt.Unix()
	}
	raw := fmt.Sprintf("%s_%s_%d_%d", order.Slot, order.Language, publish, order.Index)
	return sanitizeJobID(raw)
}

// sanitizeJobID strips characters outside [A-Za-z0-9_.-], collapses runs of
// underscores, and bounds the length. Empty results fall back to a
// placeholder so the id is always usable in file names.
func sanitizeJobID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	lastUnderscore := false
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	id := strings.Trim(b.String(), "_")
	if runes := []rune(id); len(runes) > jobIDMaxLen {
		id = strings.Trim(string(runes[:jobIDMaxLen]), "_")
	}
	if id == "" {
		return jobIDPlaceholder
	}
	return id
}
