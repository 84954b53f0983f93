package stage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/store"
)

func TestParse(t *testing.T) {
	for _, s := range All() {
		got, ok := Parse(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	got, ok := Parse(" Treatment ")
	assert.True(t, ok)
	assert.Equal(t, Treatment, got)

	got, ok = Parse("bogus")
	assert.False(t, ok)
	assert.Equal(t, Default, got)
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestKeeperLoadDefaults(t *testing.T) {
	kv := store.NewMemory()
	k := NewKeeper(kv, Aftercare, nil)
	assert.Equal(t, Aftercare, k.Load(), "absent value")

	require.NoError(t, kv.Set(Key, []byte("not-a-stage")))
	assert.Equal(t, Aftercare, k.Load(), "unrecognized value")

	require.NoError(t, kv.Set(Key, []byte("treatment")))
	assert.Equal(t, Treatment, k.Load())
}

func TestKeeperSetPersistsAndNotifies(t *testing.T) {
	kv := store.NewMemory()
	k := NewKeeper(kv, Default, nil)

	var seen []Stage
	cancel := k.Subscribe(func(s Stage) { seen = append(seen, s) })

	require.NoError(t, k.Set(Treatment))
	require.NoError(t, k.Set(Treatment))
	raw, err := kv.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, "treatment", string(raw))
	assert.Equal(t, []Stage{Treatment}, seen)

	cancel()
	require.NoError(t, k.Set(Aftercare))
	assert.Equal(t, []Stage{Treatment}, seen)

	reloaded := NewKeeper(kv, Default, nil)
	assert.Equal(t, Aftercare, reloaded.Load())
}

func TestKeeperSetWriteFailureKeepsStage(t *testing.T) {
	kv := store.NewMemory()
	kv.FailWrites = errors.New("quota")
	k := NewKeeper(kv, Default, nil)

	err := k.Set(Aftercare)
	var werr *store.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, Aftercare, k.Current())
}

func TestKeeperSetRejectsInvalid(t *testing.T) {
	k := NewKeeper(store.NewMemory(), Default, nil)
	assert.Error(t, k.Set(Stage(-1)))
	assert.Equal(t, Default, k.Current())
}
