package events

import (
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBoardReloaded      EventType = "board_reloaded"
	EventTicketMoved        EventType = "ticket_moved"
	EventTicketMoveFailed   EventType = "ticket_move_failed"
	EventTicketAssigned     EventType = "ticket_assigned"
	EventTicketAssignFailed EventType = "ticket_assign_failed"
)

// Event represents a board event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BoardReloadedPayload payload.
type BoardReloadedPayload struct {
	TicketCount int `json:"ticket_count"`
}

// TicketMovedPayload payload.
type TicketMovedPayload struct {
	Title     string              `json:"title"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketMoveFailedPayload payload.
type TicketMoveFailedPayload struct {
	Title     string              `json:"title"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Reason    string              `json:"reason"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Title        string `json:"title"`
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
}

// TicketAssignFailedPayload payload.
type TicketAssignFailedPayload struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}
