package history

import (
	"fmt"
	"sort"
	"sync"

	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/timeutil"
)

// Daily holds at most one aggregate per calendar day, newest first, and
// silently evicts anything beyond its retention bound.
type Daily struct {
	kv   store.KV
	key  string
	opts Opts

	mu   sync.Mutex
	days []entry.DailyAggregate
}

// NewDaily returns an empty daily log for key. Call Load to hydrate it.
func NewDaily(kv store.KV, key string, opts ...Option) *Daily {
	return &Daily{kv: kv, key: key, opts: applyOpts(opts)}
}

// Key returns the store key of the log.
func (d *Daily) Key() string { return d.key }

// Retention returns the number of aggregates kept.
func (d *Daily) Retention() int { return d.opts.Retention }

// Load replaces the in-memory aggregates with the persisted ones. Duplicate
// days left by older writers are collapsed to the newest.
func (d *Daily) Load() {
	days := readBlob[entry.DailyAggregate](d.kv, d.key, d.opts.Logger)
	sortDaily(days)
	seen := make(map[string]bool, len(days))
	out := days[:0]
	for _, a := range days {
		if seen[a.DateKey] {
			continue
		}
		seen[a.DateKey] = true
		out = append(out, a)
	}
	if len(out) > d.opts.Retention {
		out = out[:d.opts.Retention]
	}
	d.mu.Lock()
	d.days = out
	d.mu.Unlock()
}

// Upsert replaces the aggregate for dateKey, or inserts one, then re-sorts
// newest first and truncates to the retention bound. A write failure keeps
// the change in memory and is returned as *store.WriteError.
func (d *Daily) Upsert(dateKey string, items []string) (entry.DailyAggregate, error) {
	if _, err := timeutil.ParseDateKey(dateKey, d.opts.Location); err != nil {
		return entry.DailyAggregate{}, fmt.Errorf("history: bad date key %q: %w", dateKey, err)
	}
	agg := entry.DailyAggregate{
		DateKey: dateKey,
		Items:   append([]string{}, items...),
		Created: entry.At(d.opts.Now()),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	replaced := false
	for i := range d.days {
		if d.days[i].DateKey == dateKey {
			d.days[i] = agg
			replaced = true
			break
		}
	}
	if !replaced {
		d.days = append(d.days, agg)
	}
	sortDaily(d.days)
	if len(d.days) > d.opts.Retention {
		d.days = d.days[:d.opts.Retention]
	}
	return agg, writeBlob(d.kv, d.key, d.days)
}

// Get returns the aggregate for dateKey.
func (d *Daily) Get(dateKey string) (entry.DailyAggregate, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.days {
		if a.DateKey == dateKey {
			return cloneAggregate(a), true
		}
	}
	return entry.DailyAggregate{}, false
}

// DeleteByDate removes the aggregate for dateKey. Unknown days are a no-op.
func (d *Daily) DeleteByDate(dateKey string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, a := range d.days {
		if a.DateKey == dateKey {
			d.days = append(d.days[:i:i], d.days[i+1:]...)
			return writeBlob(d.kv, d.key, d.days)
		}
	}
	return nil
}

// Aggregates returns a snapshot, newest first.
func (d *Daily) Aggregates() []entry.DailyAggregate {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]entry.DailyAggregate, len(d.days))
	for i, a := range d.days {
		out[i] = cloneAggregate(a)
	}
	return out
}

// QueryByWeek returns the aggregates whose day falls in the week offset from
// the current one, newest first.
func (d *Daily) QueryByWeek(offset int) []entry.DailyAggregate {
	week := timeutil.WeekOf(d.opts.Now(), offset, d.opts.Location)
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []entry.DailyAggregate
	for _, a := range d.days {
		if week.Contains(a.DateKey) {
			out = append(out, cloneAggregate(a))
		}
	}
	return out
}

// Today returns the date key of the current day.
func (d *Daily) Today() string {
	return timeutil.DateKey(d.opts.Now(), d.opts.Location)
}

func sortDaily(days []entry.DailyAggregate) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.Created.Equal(b.Created.Time) {
			return a.DateKey > b.DateKey
		}
		return a.Created.After(b.Created.Time)
	})
}

func cloneAggregate(a entry.DailyAggregate) entry.DailyAggregate {
	a.Items = append([]string(nil), a.Items...)
	return a
}
