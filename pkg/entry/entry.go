// Package entry defines the records written by tracker pages.
package entry

import (
	"sort"

	"tableflip.dev/tend/pkg/page"
)

// Entry is one timestamped record produced by completing a data-collecting
// page. Entries are immutable once created; they are only ever deleted.
type Entry struct {
	ID      string         `json:"id"`
	Created Timestamp      `json:"created"`
	DateKey string         `json:"dateKey"`
	Page    page.ID        `json:"page,omitempty"`
	Title   string         `json:"title,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Field returns the payload value for key rendered as a string.
func (e *Entry) Field(key string) (string, bool) {
	if e == nil || e.Payload == nil {
		return "", false
	}
	v, ok := e.Payload[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

// FieldKeys returns the payload keys in sorted order.
func (e *Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Payload))
	for k := range e.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DailyAggregate is the single per-day state of a checklist, such as which
// medicines were taken. It is replaced, never appended.
type DailyAggregate struct {
	DateKey string    `json:"dateKey"`
	Items   []string  `json:"items"`
	Created Timestamp `json:"created"`
}

// Has reports whether item is checked.
func (d *DailyAggregate) Has(item string) bool {
	for _, it := range d.Items {
		if it == item {
			return true
		}
	}
	return false
}
