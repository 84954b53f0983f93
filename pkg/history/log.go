package history

import (
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/timeutil"
)

// Log is an append-only, most-recent-first list of entries persisted as a
// single JSON array under one key.
type Log struct {
	kv   store.KV
	key  string
	opts Opts

	mu      sync.Mutex
	entries []entry.Entry
}

// NewLog returns an empty log for key. Call Load to hydrate it.
func NewLog(kv store.KV, key string, opts ...Option) *Log {
	return &Log{kv: kv, key: key, opts: applyOpts(opts)}
}

// Key returns the store key of the log.
func (l *Log) Key() string { return l.key }

// Load replaces the in-memory log with the persisted one.
func (l *Log) Load() {
	entries := readBlob[entry.Entry](l.kv, l.key, l.opts.Logger)
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

// Append prepends e, filling in id, creation time and date key when they
// are unset, then writes the whole log. A write failure keeps e in memory
// and is returned as *store.WriteError.
func (l *Log) Append(e entry.Entry) (entry.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Created.IsZero() {
		e.Created = entry.At(l.opts.Now())
	}
	if e.DateKey == "" {
		e.DateKey = timeutil.DateKey(e.Created.Time, l.opts.Location)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]entry.Entry{e}, l.entries...)
	return e, writeBlob(l.kv, l.key, l.entries)
}

// DeleteByID removes the entry with id. Unknown ids are a no-op.
func (l *Log) DeleteByID(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return writeBlob(l.kv, l.key, l.entries)
		}
	}
	return nil
}

// Get returns the entry with id.
func (l *Log) Get(id string) (entry.Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// Entries returns a snapshot of the log, most recent first.
func (l *Log) Entries() []entry.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entry.Entry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// QueryByWeek returns the entries whose calendar day falls in the
// Sunday..Saturday week offset from the current one, most recent first.
func (l *Log) QueryByWeek(offset int) []entry.Entry {
	week := l.Week(offset)
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entry.Entry
	for _, e := range l.entries {
		key := e.DateKey
		if key == "" {
			key = timeutil.DateKey(e.Created.Time, l.opts.Location)
		}
		if week.Contains(key) {
			out = append(out, e)
		}
	}
	return out
}

// Week returns the calendar range QueryByWeek uses for offset.
func (l *Log) Week(offset int) timeutil.Week {
	return timeutil.WeekOf(l.opts.Now(), offset, l.opts.Location)
}
