package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/history"
	"tableflip.dev/tend/pkg/store"
)

var today = time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC)

func newDaily(kv store.KV) *history.Daily {
	return history.NewDaily(kv, "medicine-history",
		history.WithClock(func() time.Time { return today }),
		history.WithLocation(time.UTC))
}

func TestChecklistDebouncesWrites(t *testing.T) {
	kv := store.NewMemory()
	daily := newDaily(kv)
	saved := make(chan error, 8)
	c := NewChecklist(daily, WithSaveDelay(20*time.Millisecond), OnSaved(func(err error) { saved <- err }))
	defer c.Close()

	assert.Equal(t, "2024-03-13", c.Date())
	assert.True(t, c.Toggle("folic acid"))
	assert.True(t, c.Toggle("iron"))
	assert.False(t, c.Toggle("iron"))
	c.Set("vitamin d", true)

	select {
	case err := <-saved:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("checklist never saved")
	}
	select {
	case <-saved:
		t.Fatal("expected a single write for a burst of edits")
	case <-time.After(60 * time.Millisecond):
	}

	agg, ok := daily.Get("2024-03-13")
	require.True(t, ok)
	assert.Equal(t, []string{"folic acid", "vitamin d"}, agg.Items)
}

func TestChecklistCloseFlushes(t *testing.T) {
	kv := store.NewMemory()
	daily := newDaily(kv)
	c := NewChecklist(daily, WithSaveDelay(time.Hour))
	c.Toggle("aspirin")

	_, ok := daily.Get("2024-03-13")
	require.False(t, ok, "nothing written before the delay")
	require.NoError(t, c.Close())

	reloaded := newDaily(kv)
	reloaded.Load()
	agg, ok := reloaded.Get("2024-03-13")
	require.True(t, ok)
	assert.Equal(t, []string{"aspirin"}, agg.Items)
}

func TestChecklistSeedsFromStoredDay(t *testing.T) {
	daily := newDaily(store.NewMemory())
	_, err := daily.Upsert("2024-03-13", []string{"iron"})
	require.NoError(t, err)

	c := NewChecklist(daily, WithSaveDelay(time.Hour))
	defer c.Close()
	assert.True(t, c.Checked("iron"))
	assert.Equal(t, []string{"iron"}, c.Items())

	c.Open("2024-03-12")
	assert.Empty(t, c.Items())
}

func TestChecklistReportsWriteError(t *testing.T) {
	kv := store.NewMemory()
	kv.FailWrites = errors.New("eio")
	c := NewChecklist(newDaily(kv), WithSaveDelay(time.Hour))
	c.Toggle("iron")

	var werr *store.WriteError
	assert.ErrorAs(t, c.Close(), &werr)
	assert.True(t, c.Checked("iron"), "state survives the failed write")
}

func TestChecklistFollowsMidnight(t *testing.T) {
	kv := store.NewMemory()
	now := time.Date(2024, time.March, 13, 23, 59, 0, 0, time.UTC)
	daily := history.NewDaily(kv, "medicine-history",
		history.WithClock(func() time.Time { return now }),
		history.WithLocation(time.UTC))
	c := NewChecklist(daily, WithSaveDelay(time.Hour))
	c.Toggle("iron")

	now = now.Add(2 * time.Hour)
	c.Toggle("folic acid")
	assert.Equal(t, "2024-03-14", c.Date())
	require.NoError(t, c.Close())

	prev, ok := daily.Get("2024-03-13")
	require.True(t, ok)
	assert.Equal(t, []string{"iron"}, prev.Items)
	next, ok := daily.Get("2024-03-14")
	require.True(t, ok)
	assert.Equal(t, []string{"folic acid"}, next.Items)
}

func TestChecklistBackfillStaysPinned(t *testing.T) {
	kv := store.NewMemory()
	now := today
	daily := history.NewDaily(kv, "medicine-history",
		history.WithClock(func() time.Time { return now }),
		history.WithLocation(time.UTC))
	c := NewChecklist(daily, WithSaveDelay(time.Hour))
	c.Open("2024-03-10")

	now = now.Add(24 * time.Hour)
	c.Set("iron", true)
	assert.Equal(t, "2024-03-10", c.Date())
	require.NoError(t, c.Close())

	_, ok := daily.Get("2024-03-14")
	assert.False(t, ok)
	agg, ok := daily.Get("2024-03-10")
	require.True(t, ok)
	assert.Equal(t, []string{"iron"}, agg.Items)
}

func TestParsePayload(t *testing.T) {
	got, err := ParsePayload([]string{"mood=calm", "symptoms=nausea, fatigue,", "note="})
	require.NoError(t, err)
	assert.Equal(t, "calm", got["mood"])
	assert.Equal(t, []any{"nausea", "fatigue"}, got["symptoms"])
	assert.Equal(t, "", got["note"])

	_, err = ParsePayload([]string{"justtext"})
	assert.Error(t, err)
	_, err = ParsePayload([]string{"=x"})
	assert.Error(t, err)
}

func TestSplitPairs(t *testing.T) {
	tests := map[string]struct {
		line string
		want []string
	}{
		"empty":          {line: "  ", want: nil},
		"single":         {line: "mood=calm", want: []string{"mood=calm"}},
		"spaced value":   {line: "doctorName=Dr Smith  time=09:30", want: []string{"doctorName=Dr Smith", "time=09:30"}},
		"list value":     {line: "symptoms=nausea, sore throat", want: []string{"symptoms=nausea, sore throat"}},
		"leading text":   {line: "hello there mood=ok", want: []string{"hello there", "mood=ok"}},
		"equals in text": {line: "note=a =b", want: []string{"note=a =b"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitPairs(tc.line))
		})
	}

	got, err := ParsePayload(SplitPairs("doctorName=Dr Smith"))
	require.NoError(t, err)
	assert.Equal(t, "Dr Smith", got["doctorName"])
}
