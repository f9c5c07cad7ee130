package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/store"
)

// ErrMoveInFlight is returned by Begin while a previous move of the
// same ticket is still reconciling with the backend.
var ErrMoveInFlight = errors.New("ticket move already in flight")

// MoveOutcome classifies how a drop settled.
type MoveOutcome string

const (
	// MoveCommitted: backend confirmed, the optimistic value is final.
	MoveCommitted MoveOutcome = "committed"
	// MoveRolledBack: backend rejected, the original status was
	// restored (unless newer authoritative data arrived meanwhile).
	MoveRolledBack MoveOutcome = "rolled_back"
	// MoveNoChange: dropped onto the ticket's current column.
	MoveNoChange MoveOutcome = "no_change"
	// MoveRejected: the drop target is not a valid column.
	MoveRejected MoveOutcome = "rejected"
	// MoveMissing: the ticket vanished from the store between drag
	// start and drop.
	MoveMissing MoveOutcome = "missing"
	// MoveBusy: another move of the same ticket is still in flight.
	MoveBusy MoveOutcome = "busy"
)

// MoveResult reports how a drop settled.
type MoveResult struct {
	Outcome  MoveOutcome
	TicketID string
	From     domain.TicketStatus
	To       domain.TicketStatus
}

// DragCoordinator runs the optimistic status-change transaction behind
// a drag gesture: apply locally, confirm with the backend, roll back on
// failure. Failures never propagate; they settle into a MoveResult and
// a user-visible event.
type DragCoordinator struct {
	store      *store.TicketStore
	client     BackendClient
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu       sync.Mutex
	dragging map[string]struct{}
	inflight map[string]struct{}
}

// DragDependencies bundles collaborators for the coordinator.
type DragDependencies struct {
	Store      *store.TicketStore
	Client     BackendClient
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDragCoordinator constructs the coordinator.
func NewDragCoordinator(deps DragDependencies) *DragCoordinator {
	return &DragCoordinator{
		store:      deps.Store,
		client:     deps.Client,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		dragging:   make(map[string]struct{}),
		inflight:   make(map[string]struct{}),
	}
}

// Begin marks the ticket as actively dragged. No store mutation happens
// until the drop. A ticket mid-reconciliation cannot start a new drag.
func (c *DragCoordinator) Begin(ticketID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[ticketID]; busy {
		return ErrMoveInFlight
	}
	c.dragging[ticketID] = struct{}{}
	return nil
}

// Cancel ends a drag without a transaction (drop outside any target).
func (c *DragCoordinator) Cancel(ticketID string) {
	c.mu.Lock()
	delete(c.dragging, ticketID)
	c.mu.Unlock()
}

// Dragging reports whether the ticket is currently dragged.
func (c *DragCoordinator) Dragging(ticketID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.dragging[ticketID]
	return ok
}

// Drop settles a drag onto the column identified by target. The
// optimistic store write happens before the backend call is issued;
// rollback is guarded so a reload that arrived mid-flight wins over
// both confirm and rollback. Drop blocks until the transaction settles
// and never returns an error.
func (c *DragCoordinator) Drop(ctx context.Context, ticketID, target string) MoveResult {
	c.Cancel(ticketID)

	newStatus, ok := domain.ParseTicketStatus(target)
	if !ok {
		// A gesture artifact, not a user mistake: log and ignore.
		c.logger.Debug("drop on unknown column",
			zap.String("ticket_id", ticketID),
			zap.String("target", target))
		return MoveResult{Outcome: MoveRejected, TicketID: ticketID}
	}

	c.mu.Lock()
	if _, busy := c.inflight[ticketID]; busy {
		c.mu.Unlock()
		return MoveResult{Outcome: MoveBusy, TicketID: ticketID, To: newStatus}
	}

	ticket, found := c.store.Get(ticketID)
	if !found {
		// Vanished between drag start and drop; nothing to roll back.
		c.mu.Unlock()
		return MoveResult{Outcome: MoveMissing, TicketID: ticketID, To: newStatus}
	}
	if ticket.Status == newStatus {
		c.mu.Unlock()
		return MoveResult{Outcome: MoveNoChange, TicketID: ticketID, From: ticket.Status, To: newStatus}
	}

	originalStatus := ticket.Status
	if !c.store.SetStatus(ticketID, newStatus) {
		c.mu.Unlock()
		return MoveResult{Outcome: MoveMissing, TicketID: ticketID, To: newStatus}
	}
	c.inflight[ticketID] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, ticketID)
		c.mu.Unlock()
	}()

	if _, err := c.client.UpdateTicketStatus(ctx, ticketID, newStatus); err != nil {
		// Roll back only if the optimistic value is still in place;
		// a reload that landed meanwhile is newer truth and stands.
		reverted := c.store.CompareAndSwapStatus(ticketID, newStatus, originalStatus)
		c.logger.Warn("ticket move rejected by backend",
			zap.String("ticket_id", ticketID),
			zap.String("from", string(originalStatus)),
			zap.String("to", string(newStatus)),
			zap.Bool("reverted", reverted),
			zap.Error(err))
		c.publish(ctx, events.Event{
			Type:     events.EventTicketMoveFailed,
			TicketID: ticketID,
			Payload: events.TicketMoveFailedPayload{
				Title:     ticket.Title,
				OldStatus: originalStatus,
				NewStatus: newStatus,
				Reason:    err.Error(),
			},
		})
		return MoveResult{Outcome: MoveRolledBack, TicketID: ticketID, From: originalStatus, To: newStatus}
	}

	// Success confirms the optimistic write already in the store; no
	// further write, so a mid-flight reload keeps the last word.
	c.publish(ctx, events.Event{
		Type:     events.EventTicketMoved,
		TicketID: ticketID,
		Payload: events.TicketMovedPayload{
			Title:     ticket.Title,
			OldStatus: originalStatus,
			NewStatus: newStatus,
		},
	})
	return MoveResult{Outcome: MoveCommitted, TicketID: ticketID, From: originalStatus, To: newStatus}
}

func (c *DragCoordinator) publish(ctx context.Context, event events.Event) {
	if c.dispatcher == nil {
		return
	}
	_ = c.dispatcher.Publish(ctx, event)
}
