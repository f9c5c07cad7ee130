// Package dto mirrors the ticket backend's JSON wire format. Field
// names follow the backend contract (camelCase), conversion to the
// domain model happens here and nowhere else.
package dto

import (
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// TicketResponse is one ticket as the backend serializes it.
type TicketResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ProjectID      string     `json:"projectId"`
	ProjectName    string     `json:"projectName"`
	AuthorID       string     `json:"authorId"`
	AuthorName     string     `json:"authorName"`
	AssignedToID   string     `json:"assignedToId,omitempty"`
	AssignedToName string     `json:"assignedToName,omitempty"`
	Labels         []string   `json:"labels"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ToDomain converts the wire ticket to the domain model.
func (r TicketResponse) ToDomain() domain.Ticket {
	return domain.Ticket{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Status:         domain.TicketStatus(r.Status),
		Priority:       domain.TicketPriority(r.Priority),
		ProjectID:      r.ProjectID,
		ProjectName:    r.ProjectName,
		AuthorID:       r.AuthorID,
		AuthorName:     r.AuthorName,
		AssignedToID:   r.AssignedToID,
		AssignedToName: r.AssignedToName,
		Labels:         r.Labels,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Deadline:       r.Deadline,
	}
}

// TicketListResponse is the paginated ticket listing envelope.
type TicketListResponse struct {
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	Tickets    []TicketResponse `json:"tickets"`
}

// ToDomain converts the listed tickets to the domain model.
func (r TicketListResponse) ToDomain() []domain.Ticket {
	out := make([]domain.Ticket, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		out = append(out, t.ToDomain())
	}
	return out
}

// UpdateStatusRequest payload for PATCH /api/tickets/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusChangeResponse is the backend's acknowledgement of a status
// update. It is partial: only the changed fields come back.
type StatusChangeResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// AssignRequest payload for PATCH /api/tickets/{id}/assign.
type AssignRequest struct {
	AssignedToID   string `json:"assignedToId"`
	AssignedToName string `json:"assignedToName"`
}

// AssignResponse acknowledges an assignment.
type AssignResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	AssignedToID   string `json:"assignedToId"`
	AssignedToName string `json:"assignedToName"`
}
