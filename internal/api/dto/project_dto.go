package dto

import (
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// TeamMemberResponse is one project team member on the wire.
type TeamMemberResponse struct {
	UserID     string     `json:"userId"`
	UserName   string     `json:"userName"`
	Role       string     `json:"role"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
}

// ProjectResponse is one project as the backend serializes it.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	CreatedBy   string               `json:"createdBy"`
	TeamMembers []TeamMemberResponse `json:"teamMembers"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     *time.Time           `json:"endDate,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToDomain converts the wire project to the domain model.
func (r ProjectResponse) ToDomain() domain.Project {
	members := make([]domain.TeamMember, 0, len(r.TeamMembers))
	for _, m := range r.TeamMembers {
		members = append(members, domain.TeamMember{
			UserID:     m.UserID,
			UserName:   m.UserName,
			Role:       domain.Role(m.Role),
			AssignedAt: m.AssignedAt,
		})
	}
	return domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.ProjectStatus(r.Status),
		CreatedBy:   r.CreatedBy,
		TeamMembers: members,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ProjectListResponse is the paginated project listing envelope.
type ProjectListResponse struct {
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Projects   []ProjectResponse `json:"projects"`
}

// ToDomain converts the listed projects to the domain model.
func (r ProjectListResponse) ToDomain() []domain.Project {
	out := make([]domain.Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		out = append(out, p.ToDomain())
	}
	return out
}
