package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcherInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var seen []string
	d.Subscribe(EventTicketMoved, func(ctx context.Context, e Event) error {
		seen = append(seen, "first")
		return nil
	})
	d.Subscribe(EventTicketMoved, func(ctx context.Context, e Event) error {
		seen = append(seen, "second")
		return nil
	})
	d.Subscribe(EventBoardReloaded, func(ctx context.Context, e Event) error {
		seen = append(seen, "other")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketMoved}))
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestDispatcherFillsIDAndTimestamp(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got Event
	d.Subscribe(EventTicketMoved, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketMoved}))
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))
	var reached bool
	d.Subscribe(EventTicketMoved, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketMoved, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketMoved}))
	assert.True(t, reached)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(EventTicketMoved), entries[0].ContextMap()["event_type"])
}
