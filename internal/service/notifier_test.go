package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
)

func TestNotifierMapsEventsToToasts(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	notifier := NewNotifier(dispatcher, zap.NewNop())
	notifier.RegisterHandlers()

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketMoved,
		TicketID: "t1",
		Payload: events.TicketMovedPayload{
			Title:     "Login bug",
			OldStatus: domain.TicketStatusPending,
			NewStatus: domain.TicketStatusAssigned,
		},
	})
	_ = dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketMoveFailed,
		TicketID: "t1",
		Payload: events.TicketMoveFailedPayload{
			Title:  "Login bug",
			Reason: "permission denied",
		},
	})

	toast := <-notifier.Toasts()
	assert.Equal(t, ToastSuccess, toast.Level)
	assert.Contains(t, toast.Message, "Login bug")
	assert.Contains(t, toast.Message, "assigned")

	toast = <-notifier.Toasts()
	assert.Equal(t, ToastError, toast.Level)
	assert.Contains(t, toast.Message, "permission denied")
}

func TestNotifierDropsToastsWhenFull(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	notifier := NewNotifier(dispatcher, zap.NewNop())
	notifier.RegisterHandlers()

	for i := 0; i < 50; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type:    events.EventTicketMoved,
			Payload: events.TicketMovedPayload{Title: "spam"},
		}))
	}
	// Publishing never blocked; the buffer holds what it holds.
	assert.LessOrEqual(t, len(notifier.Toasts()), 16)
}
