package autosave_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/autosave"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

type recorder struct {
	mu       sync.Mutex
	state    int
	written  []string
	failures int
	errs     []error
}

func (r *recorder) bump() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state++
}

func (r *recorder) snapshot(context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []byte(fmt.Sprintf("state-%d", r.state)), nil
}

func (r *recorder) write(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.Unavailable("disk busy")
	}
	r.written = append(r.written, string(data))
	return nil
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.written...)
}

type SaverTestSuite struct {
	suite.Suite
	bus   events.EventBus
	rec   *recorder
	saver *autosave.Saver
	ctx   context.Context
	ch    *mausritter.Character
}

func (s *SaverTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()
	s.rec = &recorder{}
	s.ch = mausritter.NewCharacter("char_1")

	saver, err := autosave.New(&autosave.Config{
		Bus:      s.bus,
		Snapshot: s.rec.snapshot,
		Write:    s.rec.write,
		Delay:    30 * time.Millisecond,
		MaxTries: 3,
		Backoff:  backoff.NewConstantBackOff(time.Millisecond),
		OnError:  s.rec.onError,
	})
	s.Require().NoError(err)
	s.saver = saver
}

func (s *SaverTestSuite) change() {
	s.rec.bump()
	s.Require().NoError(s.bus.Publish(s.ctx, mausritter.NewChangedEvent(s.ch, nil)))
}

func (s *SaverTestSuite) TestBurstCollapsesIntoOneWrite() {
	for i := 0; i < 5; i++ {
		s.change()
	}

	s.Eventually(func() bool { return len(s.rec.writes()) == 1 }, time.Second, 5*time.Millisecond)
	s.Equal([]string{"state-5"}, s.rec.writes(), "the write carries the latest state")
	s.False(s.saver.Pending())

	time.Sleep(60 * time.Millisecond)
	s.Len(s.rec.writes(), 1)
}

func (s *SaverTestSuite) TestFlushWritesImmediately() {
	s.change()
	s.True(s.saver.Pending())

	s.Require().NoError(s.saver.Flush(s.ctx))
	s.Equal([]string{"state-1"}, s.rec.writes())

	s.Require().NoError(s.saver.Flush(s.ctx), "nothing pending is a no-op")
	time.Sleep(60 * time.Millisecond)
	s.Len(s.rec.writes(), 1)
}

func (s *SaverTestSuite) TestRetriesFailedWrites() {
	s.rec.failures = 2
	s.change()

	s.Require().NoError(s.saver.Flush(s.ctx))
	s.Equal([]string{"state-1"}, s.rec.writes())
	s.Empty(s.rec.errs)
}

func (s *SaverTestSuite) TestReportsExhaustedRetries() {
	s.rec.failures = 10
	s.change()

	err := s.saver.Flush(s.ctx)
	s.Require().Error(err)
	s.Len(s.rec.errs, 1)
	s.True(s.saver.Pending(), "the change is kept for the next attempt")

	s.rec.failures = 0
	s.Require().NoError(s.saver.Flush(s.ctx))
	s.Equal([]string{"state-1"}, s.rec.writes())
}

func (s *SaverTestSuite) TestCloseFlushesAndUnsubscribes() {
	s.change()
	s.Require().NoError(s.saver.Close(s.ctx))
	s.Equal([]string{"state-1"}, s.rec.writes())

	s.change()
	time.Sleep(60 * time.Millisecond)
	s.False(s.saver.Pending())
	s.Len(s.rec.writes(), 1)
}

func TestSaverSuite(t *testing.T) {
	suite.Run(t, new(SaverTestSuite))
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := autosave.New(&autosave.Config{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
