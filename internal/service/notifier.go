package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/events"
)

// ToastLevel classifies a transient notification.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a lightweight user-visible notification. Never a blocking
// dialog: the UI shows it briefly and moves on.
type Toast struct {
	Level   ToastLevel
	Message string
}

// Notifier turns board events into toasts for the UI.
type Notifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	toasts     chan Toast
}

// NewNotifier creates the notifier.
func NewNotifier(dispatcher events.Dispatcher, logger *zap.Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		logger:     logger,
		toasts:     make(chan Toast, 16),
	}
}

// Toasts returns the channel the UI drains.
func (n *Notifier) Toasts() <-chan Toast {
	return n.toasts
}

// RegisterHandlers subscribes to events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketMoved, n.handleTicketMoved)
	n.dispatcher.Subscribe(events.EventTicketMoveFailed, n.handleTicketMoveFailed)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketAssignFailed, n.handleTicketAssignFailed)
	n.dispatcher.Subscribe(events.EventBoardReloaded, n.handleBoardReloaded)
}

func (n *Notifier) handleTicketMoved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMovedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketMoved", zap.String("ticket_id", event.TicketID), zap.Any("payload", payload))
	n.push(Toast{
		Level:   ToastSuccess,
		Message: fmt.Sprintf("%q moved to %s", payload.Title, payload.NewStatus),
	})
	return nil
}

func (n *Notifier) handleTicketMoveFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMoveFailedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketMoveFailed", zap.String("ticket_id", event.TicketID), zap.Any("payload", payload))
	n.push(Toast{
		Level:   ToastError,
		Message: fmt.Sprintf("could not move %q: %s", payload.Title, payload.Reason),
	})
	return nil
}

func (n *Notifier) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketAssigned", zap.String("ticket_id", event.TicketID), zap.Any("payload", payload))
	n.push(Toast{
		Level:   ToastSuccess,
		Message: fmt.Sprintf("%q assigned to %s", payload.Title, payload.AssigneeName),
	})
	return nil
}

func (n *Notifier) handleTicketAssignFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignFailedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketAssignFailed", zap.String("ticket_id", event.TicketID), zap.Any("payload", payload))
	n.push(Toast{
		Level:   ToastError,
		Message: fmt.Sprintf("could not assign %q: %s", payload.Title, payload.Reason),
	})
	return nil
}

func (n *Notifier) handleBoardReloaded(ctx context.Context, event events.Event) error {
	n.logger.Debug("BoardReloaded", zap.Any("payload", event.Payload))
	return nil
}

// push drops the toast when the UI is not draining; stale toasts are
// worthless.
func (n *Notifier) push(toast Toast) {
	select {
	case n.toasts <- toast:
	default:
	}
}
