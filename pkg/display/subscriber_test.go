package display

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/events"
	"github.com/rpichess/clockd/pkg/game"
)

type scriptedSink struct {
	errs   []error
	pushes int
}

func (s *scriptedSink) Push(*image.RGBA) error {
	s.pushes++
	if len(s.errs) == 0 {
		return nil
	}

	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedSink) Close() error { return nil }

func newTestSubscriber(t *testing.T, sink Sink) *Subscriber {
	t.Helper()

	r, err := NewRenderer()
	require.NoError(t, err)

	return NewSubscriber(r, sink, zap.NewNop())
}

func TestDrawPushesFrame(t *testing.T) {
	sink := &scriptedSink{}
	s := newTestSubscriber(t, sink)

	s.Draw(game.Snapshot{})
	assert.Equal(t, 1, sink.pushes)
}

func TestDisablesAfterRepeatedFailures(t *testing.T) {
	fault := errors.New("panel gone")
	sink := &scriptedSink{errs: []error{fault, fault, fault}}
	s := newTestSubscriber(t, sink)

	for i := 0; i < 5; i++ {
		s.Draw(game.Snapshot{})
	}

	// Three failures disable the sink; later draws stop pushing.
	assert.Equal(t, 3, sink.pushes)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	fault := errors.New("glitch")
	sink := &scriptedSink{errs: []error{fault, fault, nil, fault, fault}}
	s := newTestSubscriber(t, sink)

	for i := 0; i < 6; i++ {
		s.Draw(game.Snapshot{})
	}

	// Two failures, a success, two more failures: never three in a
	// row, so the display stays enabled.
	assert.Equal(t, 6, sink.pushes)
}

func TestAttachDrawsOnPublishedSnapshots(t *testing.T) {
	sink := &scriptedSink{}
	s := newTestSubscriber(t, sink)

	publisher := events.NewPublisher()
	s.Attach(publisher)

	publisher.Publish(events.Event{Type: events.EventClockTick, Payload: game.Snapshot{}})

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return sink.pushes == 1
	}, time.Second, 5*time.Millisecond)
}
