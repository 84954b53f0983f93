package history

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/store"
)

// readBlob hydrates a JSON array stored under key. Missing or malformed
// data yields an empty slice; the failure is logged and never returned.
func readBlob[T any](kv store.KV, key string, log *zap.Logger) []T {
	raw, err := kv.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Warn("history: read failed, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn("history: malformed data, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return out
}

// writeBlob persists the whole slice under key. Failures come back as
// *store.WriteError.
func writeBlob[T any](kv store.KV, key string, v []T) error {
	if v == nil {
		v = []T{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return &store.WriteError{Key: key, Err: err}
	}
	if err := kv.Set(key, raw); err != nil {
		var werr *store.WriteError
		if errors.As(err, &werr) {
			return err
		}
		return &store.WriteError{Key: key, Err: err}
	}
	return nil
}
