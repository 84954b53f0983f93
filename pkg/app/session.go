// Package app wires the stores, stage, routing and completion of a tend
// session so the TUI and the CLI share the same behavior.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/completion"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/history"
	"tableflip.dev/tend/pkg/logging"
	"tableflip.dev/tend/pkg/navigator"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/route"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/tracker"
	"tableflip.dev/tend/pkg/visibility"
)

// Options tune a Session. Zero values pick the package defaults.
type Options struct {
	Catalog   *page.Catalog
	Policy    *visibility.Policy
	Stage     stage.Stage
	Retention int
	SaveDelay time.Duration
	Threshold float64
	Settle    time.Duration
	Done      page.ID

	// Scheduler runs the delayed completion confirmation. Immediate when nil.
	Scheduler completion.Scheduler
	Notifier  completion.Notifier
	// OnChecklistSaved observes each checklist write.
	OnChecklistSaved func(error)

	Now      func() time.Time
	Location *time.Location
	Logger   *zap.Logger
}

// Session is one user's view of tend: the stage, the visible pages, where
// the user is, and the logs behind each page.
type Session struct {
	kv      store.KV
	catalog *page.Catalog
	policy  *visibility.Policy
	log     *zap.Logger

	stages    *stage.Keeper
	router    *route.Memory
	nav       *navigator.Navigator
	logs      map[page.ID]*history.Log
	medicine  *history.Daily
	completer *completion.Completer
	checklist *tracker.Checklist

	closeOnce sync.Once
	cancels   []func()
}

// NewSession loads every log from kv and positions the navigator on the
// first page visible in the persisted stage.
func NewSession(kv store.KV, opts Options) (*Session, error) {
	if kv == nil {
		return nil, errors.New("app: no store configured")
	}
	if opts.Catalog == nil {
		opts.Catalog = page.Default()
	}
	if opts.Policy == nil {
		opts.Policy = visibility.Default()
	}
	if opts.Done == "" {
		opts.Done = page.Mood
	}
	if !opts.Catalog.Contains(opts.Done) {
		return nil, fmt.Errorf("app: done page %q is not in the catalog", opts.Done)
	}
	log := logging.OrNop(opts.Logger)

	s := &Session{
		kv:      kv,
		catalog: opts.Catalog,
		policy:  opts.Policy,
		log:     log,
		logs:    make(map[page.ID]*history.Log),
	}

	hopts := []history.Option{history.WithLogger(log)}
	if opts.Now != nil {
		hopts = append(hopts, history.WithClock(opts.Now))
	}
	if opts.Location != nil {
		hopts = append(hopts, history.WithLocation(opts.Location))
	}

	appenders := make(map[page.ID]completion.Appender)
	for _, p := range opts.Catalog.Pages() {
		if p.LogKey == "" {
			continue
		}
		if p.DataCollecting {
			l := history.NewLog(kv, p.LogKey, hopts...)
			l.Load()
			s.logs[p.ID] = l
			appenders[p.ID] = l
			continue
		}
		if p.ID == page.Medicine {
			retention := opts.Retention
			if retention <= 0 {
				retention = history.DefaultRetention
			}
			s.medicine = history.NewDaily(kv, p.LogKey, append(hopts, history.WithRetention(retention))...)
			s.medicine.Load()
		}
	}

	s.stages = stage.NewKeeper(kv, opts.Stage, log)
	current := s.stages.Load()
	visible := s.policy.VisiblePages(current)

	s.router = route.NewMemory(visible[0])
	navOpts := []navigator.Option{navigator.WithLogger(log)}
	if opts.Threshold > 0 {
		navOpts = append(navOpts, navigator.WithThreshold(opts.Threshold))
	}
	s.nav = navigator.New(visible, s.router.Current(), s.router, navOpts...)
	s.cancels = append(s.cancels,
		s.router.Subscribe(s.nav.Sync),
		s.stages.Subscribe(s.stageChanged),
	)

	copts := []completion.Option{
		completion.WithSettle(opts.Settle, opts.Scheduler),
		completion.WithClock(opts.Now, opts.Location),
		completion.WithLogger(log),
	}
	if opts.Notifier != nil {
		copts = append(copts, completion.WithNotifier(opts.Notifier))
	}
	s.completer = completion.New(opts.Catalog, appenders, s.router, opts.Done, copts...)

	if s.medicine != nil {
		topts := []tracker.ChecklistOption{tracker.WithLogger(log)}
		if opts.SaveDelay > 0 {
			topts = append(topts, tracker.WithSaveDelay(opts.SaveDelay))
		}
		if opts.OnChecklistSaved != nil {
			topts = append(topts, tracker.OnSaved(opts.OnChecklistSaved))
		}
		s.checklist = tracker.NewChecklist(s.medicine, topts...)
	}
	return s, nil
}

// Catalog returns the page catalog.
func (s *Session) Catalog() *page.Catalog { return s.catalog }

// Policy returns the stage visibility policy.
func (s *Session) Policy() *visibility.Policy { return s.policy }

// CurrentStage returns the active stage.
func (s *Session) CurrentStage() stage.Stage { return s.stages.Current() }

// SetStage changes the stage. The visible pages are recomputed right away;
// a persist failure is returned after the change has taken effect.
func (s *Session) SetStage(st stage.Stage) error {
	return s.stages.Set(st)
}

// VisiblePages returns the pages shown in the active stage.
func (s *Session) VisiblePages() []page.ID {
	return s.policy.VisiblePages(s.CurrentStage())
}

// IsPageVisible reports whether id is shown in the active stage.
func (s *Session) IsPageVisible(id page.ID) bool {
	return s.policy.IsPageVisible(s.CurrentStage(), id)
}

// ExtraPanel reports whether the active stage shows the extra panel.
func (s *Session) ExtraPanel() bool {
	return s.policy.ExtraPanel(s.CurrentStage())
}

// Navigator returns the gesture navigator.
func (s *Session) Navigator() *navigator.Navigator { return s.nav }

// Router returns the session router.
func (s *Session) Router() *route.Memory { return s.router }

// Log returns the history log behind a data-collecting page.
func (s *Session) Log(id page.ID) (*history.Log, bool) {
	l, ok := s.logs[id]
	return l, ok
}

// Medicine returns the daily medicine aggregate log.
func (s *Session) Medicine() *history.Daily { return s.medicine }

// Checklist returns today's medicine checklist.
func (s *Session) Checklist() *tracker.Checklist { return s.checklist }

// Complete finishes page id with payload.
func (s *Session) Complete(id page.ID, payload map[string]any) (entry.Entry, error) {
	return s.completer.Complete(id, payload)
}

// Delete removes entry id from the page's log.
func (s *Session) Delete(id page.ID, entryID string) error {
	if id == page.Medicine && s.medicine != nil {
		return s.medicine.DeleteByDate(entryID)
	}
	l, ok := s.logs[id]
	if !ok {
		return fmt.Errorf("%w: %q has no history", completion.ErrUnknownPage, id)
	}
	return l.DeleteByID(entryID)
}

// Reload rereads whatever lives under key, typically after another process
// wrote it. It reports whether key belongs to this session.
func (s *Session) Reload(key string) bool {
	if key == stage.Key {
		before := s.stages.Current()
		if after := s.stages.Load(); after != before {
			s.stageChanged(after)
		}
		return true
	}
	if s.medicine != nil && key == s.medicine.Key() {
		s.medicine.Load()
		if s.checklist != nil {
			s.checklist.Reload()
		}
		return true
	}
	for _, l := range s.logs {
		if l.Key() == key {
			l.Load()
			return true
		}
	}
	return false
}

// Close flushes pending checklist edits and closes the store.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, cancel := range s.cancels {
			cancel()
		}
		if s.checklist != nil {
			err = s.checklist.Close()
		}
		err = errors.Join(err, s.kv.Close())
	})
	return err
}

func (s *Session) stageChanged(st stage.Stage) {
	s.log.Debug("app: stage changed", zap.Stringer("stage", st))
	s.nav.SetPages(s.policy.VisiblePages(st), s.router.Current())
}
