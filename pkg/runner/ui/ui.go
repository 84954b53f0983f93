package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/tui/carousel"
)

// UI runs the carousel until the user quits.
type UI struct {
	Session *app.Session
	Bridge  *carousel.Bridge
	// Store is watched for writes by other tend processes when it supports it.
	Store  store.KV
	Logger *zap.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Session == nil || u.Bridge == nil {
		return errors.New("can not start ui, no session")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := carousel.Options{Logger: u.Logger}
	if w, ok := u.Store.(store.Watcher); ok {
		events, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		opts.Events = events
	}
	return carousel.Run(carousel.New(u.Session, u.Bridge, opts))
}
