package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// ProjectFilterAll is the sentinel project id that disables project
// filtering on the board.
const ProjectFilterAll = "all"

// TeamMember links a user to a project with the role they hold on it.
type TeamMember struct {
	UserID     string
	UserName   string
	Role       Role
	AssignedAt *time.Time
}

// Project groups tickets. Tickets reference projects by id only.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	CreatedBy   string
	TeamMembers []TeamMember
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
