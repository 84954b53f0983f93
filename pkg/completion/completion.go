// Package completion finishes a tracker page: it validates the page's
// payload, records an entry and sends the user back to the done page.
package completion

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/route"
	"tableflip.dev/tend/pkg/timeutil"
)

// Title and date fields are tried in order; the first present one wins.
var (
	titleFields = []string{"title", "name", "doctorName", "testName", "medicineName", "mood", "symptoms"}
	dateFields  = []string{"date", "appointmentDate", "testDate", "reminderDate", "wakeTime", "bedtime"}
)

// ErrUnknownPage is returned for ids missing from the catalog.
var ErrUnknownPage = errors.New("completion: unknown page")

// ValidationError lists the required fields a payload lacked. Nothing was
// recorded.
type ValidationError struct {
	Page    page.ID
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Page, strings.Join(e.Missing, ", "))
}

// Appender records an entry. *history.Log implements it.
type Appender interface {
	Append(e entry.Entry) (entry.Entry, error)
}

// Level grades a notice.
type Level int

const (
	Info Level = iota
	Warn
)

// Notice is a message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Scheduler runs fn after d. The UI supplies one that runs fn on its own
// event loop.
type Scheduler func(d time.Duration, fn func())

// Immediate runs fn inline, ignoring the delay.
func Immediate(_ time.Duration, fn func()) { fn() }

// Completer implements the completion contract for every page.
type Completer struct {
	catalog  *page.Catalog
	logs     map[page.ID]Appender
	router   route.Router
	notifier Notifier
	done     page.ID
	settle   time.Duration
	schedule Scheduler
	now      func() time.Time
	loc      *time.Location
	log      *zap.Logger
}

// Option configures a Completer.
type Option func(*Completer)

// WithSettle delays the confirmation and the return navigation.
func WithSettle(d time.Duration, s Scheduler) Option {
	return func(c *Completer) {
		c.settle = d
		if s != nil {
			c.schedule = s
		}
	}
}

// WithNotifier sets where notices go.
func WithNotifier(n Notifier) Option {
	return func(c *Completer) { c.notifier = n }
}

// WithClock overrides time.Now and the zone used for date keys.
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(c *Completer) {
		if now != nil {
			c.now = now
		}
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Completer) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a completer. logs maps each data-collecting page to the log
// its entries go to; done is where the user lands after completing.
func New(catalog *page.Catalog, logs map[page.ID]Appender, router route.Router, done page.ID, opts ...Option) *Completer {
	c := &Completer{
		catalog:  catalog,
		logs:     logs,
		router:   router,
		done:     done,
		schedule: Immediate,
		notifier: NotifierFunc(func(Notice) {}),
		now:      time.Now,
		loc:      time.Local,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Done returns the page the completer navigates to.
func (c *Completer) Done() page.ID { return c.done }

// Complete finishes page id. Simple pages only acknowledge. Data pages
// must carry every required field; otherwise a *ValidationError is returned
// and nothing is written. A failed write keeps the entry in memory, warns
// the user and is returned alongside the entry.
func (c *Completer) Complete(id page.ID, payload map[string]any) (entry.Entry, error) {
	p, ok := c.catalog.Lookup(id)
	if !ok {
		return entry.Entry{}, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}
	if !p.DataCollecting {
		c.finish(p.Label + " done")
		return entry.Entry{}, nil
	}

	if missing := Missing(p, payload); len(missing) > 0 {
		verr := &ValidationError{Page: id, Missing: missing}
		c.notifier.Notify(Notice{Level: Warn, Message: "Please fill in " + strings.Join(missing, ", ")})
		return entry.Entry{}, verr
	}

	log, ok := c.logs[id]
	if !ok || log == nil {
		return entry.Entry{}, fmt.Errorf("completion: no log for page %q", id)
	}

	e := c.build(p, payload)
	saved, err := log.Append(e)
	if err != nil {
		c.log.Warn("completion: entry not persisted", zap.String("page", string(id)), zap.Error(err))
		c.notifier.Notify(Notice{Level: Warn, Message: "Saved for this session only; it could not be written to disk"})
		c.finish(p.Label + " saved")
		return saved, err
	}
	c.log.Debug("completion: entry recorded", zap.String("page", string(id)), zap.String("id", saved.ID))
	c.finish(p.Label + " saved")
	return saved, nil
}

// Missing returns the required fields of p that payload lacks, in the
// page's declared order.
func Missing(p page.Page, payload map[string]any) []string {
	var missing []string
	for _, key := range p.Required {
		if !entry.Truthy(payload[key]) {
			missing = append(missing, key)
		}
	}
	return missing
}

func (c *Completer) build(p page.Page, payload map[string]any) entry.Entry {
	created := c.now()
	e := entry.Entry{
		Created: entry.At(created),
		Page:    p.ID,
		Title:   p.Label,
		Payload: copyPayload(payload),
	}
	for _, key := range titleFields {
		if v, ok := e.Field(key); ok && entry.Truthy(payload[key]) {
			e.Title = v
			break
		}
	}
	e.DateKey = timeutil.DateKey(created, c.loc)
	for _, key := range dateFields {
		raw, ok := payload[key].(string)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		// A value with its own offset names its day in that offset.
		if t, err := timeutil.ParseDate(raw, c.loc); err == nil {
			e.DateKey = t.Format(timeutil.LayoutDateKey)
			break
		}
	}
	return e
}

func (c *Completer) finish(message string) {
	c.schedule(c.settle, func() {
		c.notifier.Notify(Notice{Level: Info, Message: message})
		if c.router != nil && c.done != "" {
			c.router.Navigate(c.done, route.Options{ReplaceHistory: true})
		}
	})
}

func copyPayload(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
