package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskflow/internal/metrics"
	"github.com/sandeepkv93/taskflow/internal/notify"
)

// Options carries the collaborators shared by both stores. Zero values are
// replaced with silent defaults.
type Options struct {
	Logger   *slog.Logger
	Notifier notify.Notifier
	Metrics  metrics.Recorder
	Now      func() time.Time
	NewID    func() (string, error)
	Sleep    func(time.Duration)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Notifier == nil {
		o.Notifier = notify.Noop{}
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Noop{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = newTaskID
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// newTaskID returns a random UUIDv4 so short prefixes stay distinct.
func newTaskID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
