package completion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/history"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/route"
	"tableflip.dev/tend/pkg/store"
)

var now = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

type fixture struct {
	kv       *store.Memory
	logs     map[page.ID]*history.Log
	router   *route.Recorder
	notices  []Notice
	complete *Completer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		kv:     store.NewMemory(),
		logs:   make(map[page.ID]*history.Log),
		router: &route.Recorder{},
	}
	catalog := page.Default()
	appenders := make(map[page.ID]Appender)
	for _, p := range catalog.Pages() {
		if !p.DataCollecting {
			continue
		}
		l := history.NewLog(f.kv, p.LogKey,
			history.WithClock(func() time.Time { return now }),
			history.WithLocation(time.UTC))
		f.logs[p.ID] = l
		appenders[p.ID] = l
	}
	opts = append([]Option{
		WithNotifier(NotifierFunc(func(n Notice) { f.notices = append(f.notices, n) })),
		WithClock(func() time.Time { return now }, time.UTC),
	}, opts...)
	f.complete = New(catalog, appenders, f.router, page.Mood, opts...)
	return f
}

func TestValidationBlocksWrite(t *testing.T) {
	f := newFixture(t)

	_, err := f.complete.Complete(page.Appointment, map[string]any{"doctorName": "Dr. Osei", "date": ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, page.Appointment, verr.Page)
	assert.Equal(t, []string{"date"}, verr.Missing)

	assert.Zero(t, f.logs[page.Appointment].Len())
	_, getErr := f.kv.Get("appointment-history")
	assert.ErrorIs(t, getErr, store.ErrNotFound, "no persistence side effect")
	assert.Empty(t, f.router.Requests)
	require.Len(t, f.notices, 1)
	assert.Equal(t, Warn, f.notices[0].Level)
}

func TestValidationReportsAllMissingInOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.complete.Complete(page.Sleep, map[string]any{"quality": 3})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"bedtime", "wakeTime"}, verr.Missing)
	assert.Contains(t, verr.Error(), "bedtime, wakeTime")
}

func TestCompleteRecordsOneEntry(t *testing.T) {
	f := newFixture(t)

	e, err := f.complete.Complete(page.Appointment, map[string]any{
		"doctorName": "Dr. Osei",
		"date":       "2024-03-20T10:30",
		"notes":      "bring results",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Osei", e.Title)
	assert.Equal(t, "2024-03-20", e.DateKey)
	assert.Equal(t, page.Appointment, e.Page)
	assert.NotEmpty(t, e.ID)

	entries := f.logs[page.Appointment].Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)

	last, ok := f.router.Last()
	require.True(t, ok)
	assert.Equal(t, page.Mood, last.ID)
	assert.True(t, last.Options.ReplaceHistory)
	require.NotEmpty(t, f.notices)
	assert.Equal(t, Info, f.notices[len(f.notices)-1].Level)
}

func TestTitleAndDateFallbacks(t *testing.T) {
	f := newFixture(t)

	e, err := f.complete.Complete(page.Symptoms, map[string]any{"symptoms": []any{"cramps", "fatigue"}})
	require.NoError(t, err)
	assert.Equal(t, "cramps, fatigue", e.Title)
	assert.Equal(t, "2024-03-13", e.DateKey, "no date field: day of creation")

	e, err = f.complete.Complete(page.MedicalTest, map[string]any{
		"testName": "Bloodwork",
		"testDate": "not a date",
		"date":     "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", e.DateKey)

	e, err = f.complete.Complete(page.Mood, map[string]any{"mood": "hopeful", "title": " "})
	require.NoError(t, err)
	assert.Equal(t, "hopeful", e.Title, "blank title is skipped")
}

func TestDateKeepsDeclaredOffset(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := newFixture(t, WithClock(func() time.Time { return now }, tokyo))

	e, err := f.complete.Complete(page.Appointment, map[string]any{
		"doctorName": "Dr. Osei",
		"date":       "2024-03-12T23:30:00-08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", e.DateKey)

	e, err = f.complete.Complete(page.Appointment, map[string]any{
		"doctorName": "Dr. Osei",
		"date":       "2024-03-12T23:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", e.DateKey, "local time stays in the session zone")
}

func TestSimplePageOnlyAcknowledges(t *testing.T) {
	f := newFixture(t)
	e, err := f.complete.Complete(page.Medicine, nil)
	require.NoError(t, err)
	assert.Empty(t, e.ID)
	assert.Len(t, f.router.Requests, 1)
	assert.Empty(t, f.kv.Keys())
}

func TestUnknownPage(t *testing.T) {
	f := newFixture(t)
	_, err := f.complete.Complete("yoga", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestWriteFailureKeepsEntryAndWarns(t *testing.T) {
	f := newFixture(t)
	f.kv.FailWrites = errors.New("disk full")

	e, err := f.complete.Complete(page.Mood, map[string]any{"mood": "low"})
	var werr *store.WriteError
	require.ErrorAs(t, err, &werr)
	_, ok := f.logs[page.Mood].Get(e.ID)
	assert.True(t, ok, "entry kept in memory")
	assert.Len(t, f.router.Requests, 1, "session carries on")

	var warned bool
	for _, n := range f.notices {
		warned = warned || n.Level == Warn
	}
	assert.True(t, warned)
}

func TestSettleDefersConfirmation(t *testing.T) {
	var (
		delays  []time.Duration
		pending []func()
	)
	sched := func(d time.Duration, fn func()) {
		delays = append(delays, d)
		pending = append(pending, fn)
	}
	f := newFixture(t, WithSettle(600*time.Millisecond, sched))

	_, err := f.complete.Complete(page.Mood, map[string]any{"mood": "ok"})
	require.NoError(t, err)
	assert.Empty(t, f.router.Requests, "navigation waits for the settle delay")
	assert.Len(t, f.logs[page.Mood].Entries(), 1, "the entry is written immediately")

	require.Len(t, pending, 1)
	assert.Equal(t, 600*time.Millisecond, delays[0])
	pending[0]()
	assert.Len(t, f.router.Requests, 1)
}
