package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/store"
)

func newTestDaily(kv store.KV, c *clock, opts ...Option) *Daily {
	opts = append([]Option{WithClock(c.tick), WithLocation(time.UTC)}, opts...)
	return NewDaily(kv, "medicine-history", opts...)
}

func TestUpsertRetainsMostRecent(t *testing.T) {
	kv := store.NewMemory()
	c := &clock{t: wednesday}
	d := newTestDaily(kv, c)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var keys []string
	for i := 0; i < 31; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		keys = append(keys, key)
		_, err := d.Upsert(key, []string{fmt.Sprintf("dose-%d", i)})
		require.NoError(t, err)
	}

	got := d.Aggregates()
	require.Len(t, got, 30)
	assert.Equal(t, keys[30], got[0].DateKey)
	assert.Equal(t, keys[1], got[29].DateKey)
	if _, ok := d.Get(keys[0]); ok {
		t.Fatalf("oldest aggregate %s should be evicted", keys[0])
	}
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Created.After(got[i].Created.Time), "sorted newest first")
	}

	reloaded := newTestDaily(kv, c)
	reloaded.Load()
	if diff := cmp.Diff(got, reloaded.Aggregates()); diff != "" {
		t.Fatalf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsertReplacesSameDay(t *testing.T) {
	d := newTestDaily(store.NewMemory(), &clock{t: wednesday})

	_, err := d.Upsert("2024-03-13", []string{"folic acid"})
	require.NoError(t, err)
	_, err = d.Upsert("2024-03-13", []string{"folic acid", "vitamin d"})
	require.NoError(t, err)

	got := d.Aggregates()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"folic acid", "vitamin d"}, got[0].Items)
}

func TestUpsertRetentionIsConfigurable(t *testing.T) {
	d := newTestDaily(store.NewMemory(), &clock{t: wednesday}, WithRetention(3))
	assert.Equal(t, 3, d.Retention())
	for _, key := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		_, err := d.Upsert(key, nil)
		require.NoError(t, err)
	}
	got := d.Aggregates()
	require.Len(t, got, 3)
	assert.Equal(t, "2024-03-04", got[0].DateKey)
	assert.Equal(t, "2024-03-02", got[2].DateKey)
}

func TestUpsertRejectsBadDateKey(t *testing.T) {
	d := newTestDaily(store.NewMemory(), &clock{t: wednesday})
	_, err := d.Upsert("yesterday", nil)
	assert.Error(t, err)
	assert.Empty(t, d.Aggregates())
}

func TestUpsertWriteFailureKeepsMemory(t *testing.T) {
	kv := store.NewMemory()
	kv.FailWrites = errors.New("read-only")
	d := newTestDaily(kv, &clock{t: wednesday})

	_, err := d.Upsert("2024-03-13", []string{"iron"})
	var werr *store.WriteError
	require.ErrorAs(t, err, &werr)
	got, ok := d.Get("2024-03-13")
	require.True(t, ok)
	assert.Equal(t, []string{"iron"}, got.Items)
}

func TestDailyLoadCollapsesDuplicates(t *testing.T) {
	kv := store.NewMemory()
	raw := `[
{"dateKey":"2024-03-12","items":["old"],"created":"2024-03-12T08:00:00Z"},
{"dateKey":"2024-03-12","items":["new"],"created":"2024-03-12T20:00:00Z"},
{"dateKey":"2024-03-11","items":["x"],"created":"2024-03-11T08:00:00Z"}
]`
	require.NoError(t, kv.Set("medicine-history", []byte(raw)))
	d := newTestDaily(kv, &clock{t: wednesday})
	d.Load()

	got := d.Aggregates()
	require.Len(t, got, 2)
	assert.Equal(t, []string{"new"}, got[0].Items)
}

func TestDailyQueryByWeekAndDelete(t *testing.T) {
	c := &clock{t: wednesday}
	d := newTestDaily(store.NewMemory(), c)
	for _, key := range []string{"2024-03-09", "2024-03-10", "2024-03-16"} {
		_, err := d.Upsert(key, []string{"x"})
		require.NoError(t, err)
	}
	assert.Len(t, d.QueryByWeek(0), 2)
	assert.Len(t, d.QueryByWeek(-1), 1)

	require.NoError(t, d.DeleteByDate("2024-03-10"))
	require.NoError(t, d.DeleteByDate("2024-03-10"))
	assert.Len(t, d.QueryByWeek(0), 1)
}
