package commands

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/config"
	"tableflip.dev/tend/pkg/logging"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/visibility"
)

// logFile is where the ui writes logs; the terminal belongs to the UI.
const logFile = ".tend.log"

type opened struct {
	session *app.Session
	kv      store.KV
	cfg     *config.Config
	log     *zap.Logger
}

// openSession loads config, opens the store and builds a session. The
// settle delay only matters to the ui, which passes its own scheduler.
func openSession(extra app.Options, toFile bool) (*opened, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	lo := logging.Options{Level: cfg.LogLevel}
	if toFile && !so.Ephemeral {
		lo.File = filepath.Join(cfg.Path, logFile)
	}
	log, err := logging.New(lo)
	if err != nil {
		return nil, err
	}

	var kv store.KV
	if so.Ephemeral {
		kv = store.NewMemory()
	} else if kv, err = store.Open(cfg); err != nil {
		return nil, err
	}

	catalog := page.Default()
	policy, err := visibility.LoadFile(cfg.Visibility, catalog)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("visibility: %w", err)
	}

	opts := extra
	opts.Catalog = catalog
	opts.Policy = policy
	opts.Stage = cfg.Stage
	opts.Retention = cfg.Retention
	opts.SaveDelay = cfg.Debounce
	opts.Threshold = cfg.Threshold
	opts.Done = cfg.Done
	opts.Logger = log
	if opts.Scheduler != nil {
		opts.Settle = cfg.Settle
	}

	s, err := app.NewSession(kv, opts)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &opened{session: s, kv: kv, cfg: cfg, log: log}, nil
}

func (o *opened) Close() error {
	_ = o.log.Sync()
	return o.session.Close()
}

func pageCompletions() []string {
	ids := page.Default().IDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
