// Package history keeps the persisted, time-windowed logs behind each
// tracker page.
package history

import (
	"time"

	"go.uber.org/zap"
)

// DefaultRetention is how many daily aggregates a Daily log keeps.
const DefaultRetention = 30

// Opts configures a log.
type Opts struct {
	Now       func() time.Time
	Location  *time.Location
	Logger    *zap.Logger
	Retention int
}

// Option mutates Opts.
type Option func(*Opts)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Opts) { o.Now = now }
}

// WithLocation sets the zone used to derive calendar days.
func WithLocation(loc *time.Location) Option {
	return func(o *Opts) { o.Location = loc }
}

// WithLogger sets the logger used for recovered read errors.
func WithLogger(l *zap.Logger) Option {
	return func(o *Opts) { o.Logger = l }
}

// WithRetention bounds a Daily log to the n most recent aggregates.
// Non-positive values keep the default.
func WithRetention(n int) Option {
	return func(o *Opts) { o.Retention = n }
}

func applyOpts(opts []Option) Opts {
	o := Opts{
		Now:       time.Now,
		Location:  time.Local,
		Logger:    zap.NewNop(),
		Retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Retention <= 0 {
		o.Retention = DefaultRetention
	}
	return o
}
