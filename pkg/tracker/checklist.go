// Package tracker holds the page adapters that sit between form input and
// the history logs.
package tracker

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/debounce"
	"tableflip.dev/tend/pkg/history"
)

// DefaultSaveDelay is how long a checklist waits after the last change
// before writing.
const DefaultSaveDelay = 500 * time.Millisecond

// Checklist is the medicine-style tracker for one day. Every change is
// written as the day's aggregate once edits pause; only the final state is
// persisted.
type Checklist struct {
	daily *history.Daily
	save  *debounce.Debouncer
	log   *zap.Logger

	mu      sync.Mutex
	date    string
	follow  bool
	items   map[string]bool
	lastErr error
	onSaved func(error)
}

// ChecklistOption configures a Checklist.
type ChecklistOption func(*Checklist)

// WithSaveDelay overrides DefaultSaveDelay.
func WithSaveDelay(d time.Duration) ChecklistOption {
	return func(c *Checklist) { c.save = debounce.New(d) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ChecklistOption {
	return func(c *Checklist) {
		if l != nil {
			c.log = l
		}
	}
}

// OnSaved registers fn to run after each write attempt with its result.
// It runs on the debouncer's goroutine or inside Close.
func OnSaved(fn func(error)) ChecklistOption {
	return func(c *Checklist) { c.onSaved = fn }
}

// NewChecklist opens today's checklist, seeded from any aggregate already
// stored for the day.
func NewChecklist(daily *history.Daily, opts ...ChecklistOption) *Checklist {
	c := &Checklist{
		daily: daily,
		save:  debounce.New(DefaultSaveDelay),
		log:   zap.NewNop(),
		items: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Open(daily.Today())
	return c
}

// Open switches to dateKey, flushing pending edits of the previous day.
// Opening today keeps the checklist on the current day as the clock moves
// past midnight; any other day stays pinned.
func (c *Checklist) Open(dateKey string) {
	c.save.Flush()
	today := c.daily.Today()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = dateKey
	c.follow = dateKey == today
	c.seed()
}

// Reload reseeds the open day from the daily history, after pending edits
// are written. Call it once the history has been reloaded from the store.
func (c *Checklist) Reload() {
	c.save.Flush()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed()
}

// seed loads the stored items of c.date; c.mu must be held.
func (c *Checklist) seed() {
	c.items = make(map[string]bool)
	if agg, ok := c.daily.Get(c.date); ok {
		for _, it := range agg.Items {
			c.items[it] = true
		}
	}
}

// Date returns the day being edited.
func (c *Checklist) Date() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// Toggle flips item and schedules a save. It returns the new state.
func (c *Checklist) Toggle(item string) bool {
	c.rollover()
	c.mu.Lock()
	checked := !c.items[item]
	if checked {
		c.items[item] = true
	} else {
		delete(c.items, item)
	}
	c.mu.Unlock()
	c.schedule()
	return checked
}

// Set checks or unchecks item and schedules a save.
func (c *Checklist) Set(item string, checked bool) {
	c.rollover()
	c.mu.Lock()
	if checked {
		c.items[item] = true
	} else {
		delete(c.items, item)
	}
	c.mu.Unlock()
	c.schedule()
}

// Checked reports whether item is checked.
func (c *Checklist) Checked(item string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[item]
}

// Items returns the checked items in sorted order.
func (c *Checklist) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorted()
}

// Err returns the result of the last write attempt.
func (c *Checklist) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Close writes any pending change and returns its result.
func (c *Checklist) Close() error {
	c.save.Flush()
	c.save.Stop()
	return c.Err()
}

// rollover reopens on the current day when a checklist that follows today
// has been left open past midnight.
func (c *Checklist) rollover() {
	today := c.daily.Today()
	c.mu.Lock()
	stale := c.follow && c.date != today
	c.mu.Unlock()
	if stale {
		c.Open(today)
	}
}

func (c *Checklist) schedule() {
	c.save.Trigger(c.write)
}

func (c *Checklist) write() {
	c.mu.Lock()
	date, items := c.date, c.sorted()
	c.mu.Unlock()

	_, err := c.daily.Upsert(date, items)
	if err != nil {
		c.log.Warn("tracker: checklist not persisted", zap.String("date", date), zap.Error(err))
	}

	c.mu.Lock()
	c.lastErr = err
	onSaved := c.onSaved
	c.mu.Unlock()
	if onSaved != nil {
		onSaved(err)
	}
}

// sorted returns the checked items; c.mu must be held.
func (c *Checklist) sorted() []string {
	out := make([]string, 0, len(c.items))
	for it := range c.items {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
