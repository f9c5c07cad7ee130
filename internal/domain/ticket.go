package domain

import "time"

// TicketStatus enumerates the four board columns a ticket can occupy.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusAssigned TicketStatus = "assigned"
	TicketStatusAwaiting TicketStatus = "awaiting"
	TicketStatusClosed   TicketStatus = "closed"
)

// AllTicketStatuses lists statuses in canonical column order.
var AllTicketStatuses = []TicketStatus{
	TicketStatusPending,
	TicketStatusAssigned,
	TicketStatusAwaiting,
	TicketStatusClosed,
}

// Valid reports whether the status is one of the enumerated values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusAssigned, TicketStatusAwaiting, TicketStatusClosed:
		return true
	}
	return false
}

// ParseTicketStatus converts a raw column identifier to a TicketStatus.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	s := TicketStatus(raw)
	return s, s.Valid()
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Valid reports whether the priority is one of the enumerated values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for a single support request as the backend
// reports it. AssignedToID is empty for unassigned tickets.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Status         TicketStatus
	Priority       TicketPriority
	ProjectID      string
	ProjectName    string
	AuthorID       string
	AuthorName     string
	AssignedToID   string
	AssignedToName string
	Labels         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Deadline       *time.Time
}

// Assigned reports whether the ticket has an assignee.
func (t Ticket) Assigned() bool {
	return t.AssignedToID != ""
}
