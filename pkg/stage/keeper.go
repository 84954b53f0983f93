package stage

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/store"
)

// Key is the store key holding the current stage.
const Key = "stage"

// Keeper owns the current stage and its persisted copy.
type Keeper struct {
	kv       store.KV
	log      *zap.Logger
	fallback Stage

	mu        sync.Mutex
	current   Stage
	observers map[int]func(Stage)
	nextID    int
}

// NewKeeper returns a keeper whose stage is fallback until Load is called.
func NewKeeper(kv store.KV, fallback Stage, log *zap.Logger) *Keeper {
	if log == nil {
		log = zap.NewNop()
	}
	if !fallback.Valid() {
		fallback = Default
	}
	return &Keeper{
		kv:        kv,
		log:       log,
		fallback:  fallback,
		current:   fallback,
		observers: make(map[int]func(Stage)),
	}
}

// Load reads the persisted stage. Absent or unrecognized values fall back
// to the keeper's default without error.
func (k *Keeper) Load() Stage {
	k.mu.Lock()
	defer k.mu.Unlock()

	raw, err := k.kv.Get(Key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		k.current = k.fallback
	case err != nil:
		k.log.Warn("stage: read failed, using default", zap.Error(err), zap.Stringer("stage", k.fallback))
		k.current = k.fallback
	default:
		s, ok := Parse(string(raw))
		if !ok {
			k.log.Warn("stage: unrecognized persisted value", zap.ByteString("value", raw), zap.Stringer("stage", k.fallback))
			s = k.fallback
		}
		k.current = s
	}
	return k.current
}

// Current returns the active stage.
func (k *Keeper) Current() Stage {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current
}

// Set changes the stage and persists it. The in-memory stage changes and
// observers run even when the write fails; the write error is returned.
func (k *Keeper) Set(s Stage) error {
	if !s.Valid() {
		return &UnknownError{Value: s.String()}
	}
	k.mu.Lock()
	if k.current == s {
		k.mu.Unlock()
		return nil
	}
	k.current = s
	observers := make([]func(Stage), 0, len(k.observers))
	for _, fn := range k.observers {
		observers = append(observers, fn)
	}
	k.mu.Unlock()

	err := k.kv.Set(Key, []byte(s.String()))
	if err != nil {
		k.log.Warn("stage: persist failed", zap.Error(err))
	}
	for _, fn := range observers {
		fn(s)
	}
	return err
}

// Subscribe registers fn to run after each stage change.
func (k *Keeper) Subscribe(fn func(Stage)) (cancel func()) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := k.nextID
	k.nextID++
	k.observers[id] = fn
	return func() {
		k.mu.Lock()
		delete(k.observers, id)
		k.mu.Unlock()
	}
}
