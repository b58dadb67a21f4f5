// Package autosave writes the current character document a short while
// after the last change. Bursts of edits collapse into one write and failed
// writes are retried with backoff.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/cenkalti/backoff/v5"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// Defaults
const (
	DefaultDelay    = time.Second
	DefaultMaxTries = 5
)

// SnapshotFunc returns the full document to write. It is called when the
// timer fires, so the write always carries the latest state.
type SnapshotFunc func(ctx context.Context) ([]byte, error)

// WriteFunc persists a snapshot
type WriteFunc func(ctx context.Context, data []byte) error

// Config holds the saver dependencies
type Config struct {
	Bus      events.EventBus
	Snapshot SnapshotFunc
	Write    WriteFunc

	// Optional
	Delay    time.Duration
	MaxTries uint
	// Backoff between write attempts; an exponential backoff by default
	Backoff backoff.BackOff
	// OnError is told about a write that failed every attempt. Local state
	// is untouched, so the next change retries.
	OnError func(error)
	// OnSaved is told about every successful write
	OnSaved func()
}

// Validate ensures required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.Snapshot == nil {
		vb.RequiredField("Snapshot")
	}
	if c.Write == nil {
		vb.RequiredField("Write")
	}
	if c.Delay < 0 {
		vb.InvalidField("Delay", "cannot be negative")
	}
	return vb.Build()
}

// Saver debounces change events into snapshot writes
type Saver struct {
	bus      events.EventBus
	snapshot SnapshotFunc
	write    WriteFunc
	delay    time.Duration
	maxTries uint
	backoff  func() backoff.BackOff
	onError  func(error)
	onSaved  func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	subID   string
	saveMu  sync.Mutex
}

// New creates a saver and subscribes it to character change events
func New(cfg *Config) (*Saver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Saver{
		bus:      cfg.Bus,
		snapshot: cfg.Snapshot,
		write:    cfg.Write,
		delay:    cfg.Delay,
		maxTries: cfg.MaxTries,
		onError:  cfg.OnError,
		onSaved:  cfg.OnSaved,
	}
	if s.delay == 0 {
		s.delay = DefaultDelay
	}
	if s.maxTries == 0 {
		s.maxTries = DefaultMaxTries
	}
	if cfg.Backoff != nil {
		b := cfg.Backoff
		s.backoff = func() backoff.BackOff {
			b.Reset()
			return b
		}
	} else {
		s.backoff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		}
	}

	s.subID = s.bus.SubscribeFunc(mausritter.EventCharacterChanged, 0, func(context.Context, events.Event) error {
		s.Notify()
		return nil
	})
	return s, nil
}

// Notify (re)arms the debounce timer
func (s *Saver) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Flush(context.Background()); err != nil {
			slog.Warn("autosave failed", "error", err)
		}
	})
}

// Pending reports whether a change has not been written yet
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Flush writes now when a change is pending
func (s *Saver) Flush(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return nil
	}
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	data, err := s.snapshot(ctx)
	if err != nil {
		s.fail(err)
		return errors.Wrap(err, "failed to snapshot")
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, s.write(ctx, data)
	},
		backoff.WithBackOff(s.backoff()),
		backoff.WithMaxTries(s.maxTries),
	)
	if err != nil {
		s.fail(err)
		return errors.Wrap(err, "failed to write snapshot")
	}

	slog.DebugContext(ctx, "autosaved", "bytes", len(data))
	if s.onSaved != nil {
		s.onSaved()
	}
	return nil
}

func (s *Saver) fail(err error) {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()
	if s.onError != nil {
		s.onError(err)
	}
}

// Close unsubscribes and writes anything pending
func (s *Saver) Close(ctx context.Context) error {
	if err := s.bus.Unsubscribe(s.subID); err != nil {
		slog.WarnContext(ctx, "failed to unsubscribe autosave", "error", err)
	}
	return s.Flush(ctx)
}
