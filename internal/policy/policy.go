// Package policy maps dashboard roles to visible columns and permitted
// actions. Everything here is a pure function so permission logic stays
// unit-testable without rendering anything.
package policy

import "github.com/spec-kit/ticket-board/internal/domain"

// VisibleColumns returns the status columns the role may see, in board
// order. Developers do not get the awaiting column at all: it is absent
// from both headers and drop targets, not merely hidden.
func VisibleColumns(role domain.Role) []domain.TicketStatus {
	if role == domain.RoleDeveloper {
		return []domain.TicketStatus{
			domain.TicketStatusPending,
			domain.TicketStatusAssigned,
			domain.TicketStatusClosed,
		}
	}
	cols := make([]domain.TicketStatus, len(domain.AllTicketStatuses))
	copy(cols, domain.AllTicketStatuses)
	return cols
}

// ColumnVisible reports whether the role may see the given column.
func ColumnVisible(role domain.Role, status domain.TicketStatus) bool {
	for _, s := range VisibleColumns(role) {
		if s == status {
			return true
		}
	}
	return false
}

// ColumnTitle returns the display title for a column. Developers see the
// pending column as a pick-up queue.
func ColumnTitle(role domain.Role, status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusPending:
		if role == domain.RoleDeveloper {
			return "Available Tickets"
		}
		return "Pending"
	case domain.TicketStatusAssigned:
		return "Assigned"
	case domain.TicketStatusAwaiting:
		return "Awaiting Response"
	case domain.TicketStatusClosed:
		return "Closed"
	}
	return string(status)
}

// CanSelfAssign reports whether the role may pick up a ticket from the
// given column. Only developers self-assign, and only from pending.
func CanSelfAssign(role domain.Role, status domain.TicketStatus) bool {
	return role == domain.RoleDeveloper && status == domain.TicketStatusPending
}

// CanCreateTickets reports whether the role may create tickets.
func CanCreateTickets(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleQA
}

// CanManageProjects reports whether the role may create or edit projects.
func CanManageProjects(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleQA
}

// CanMoveTicket reports whether the user is expected to be allowed to
// change the ticket's status. Admin and QA move anything; developers only
// tickets assigned to them. This is a UI hint: the drag flow does not
// pre-validate, the backend stays authoritative.
func CanMoveTicket(user domain.User, ticket domain.Ticket) bool {
	switch user.Role {
	case domain.RoleAdmin, domain.RoleQA:
		return true
	case domain.RoleDeveloper:
		return ticket.AssignedToID == user.ID
	}
	return false
}
