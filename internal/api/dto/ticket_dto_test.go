package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/domain"
)

const ticketWire = `{
	"id": "t42",
	"title": "Login bug",
	"description": "500 on submit",
	"status": "pending",
	"priority": "high",
	"projectId": "web",
	"projectName": "Web App",
	"authorId": "u1",
	"authorName": "Ann",
	"labels": ["UI", "auth"],
	"createdAt": "2024-03-01T10:00:00Z",
	"updatedAt": "2024-03-02T08:30:00Z",
	"deadline": "2024-04-01T00:00:00Z"
}`

func TestTicketResponseToDomain(t *testing.T) {
	var resp TicketResponse
	require.NoError(t, json.Unmarshal([]byte(ticketWire), &resp))

	ticket := resp.ToDomain()
	assert.Equal(t, "t42", ticket.ID)
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)
	assert.Equal(t, "Web App", ticket.ProjectName)
	assert.Equal(t, []string{"UI", "auth"}, ticket.Labels)
	assert.False(t, ticket.Assigned())
	require.NotNil(t, ticket.Deadline)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *ticket.Deadline)
}

func TestTicketListResponseToDomain(t *testing.T) {
	wire := `{"total": 2, "page": 1, "limit": 10, "totalPages": 1, "tickets": [` +
		ticketWire + `,{"id": "t43", "status": "closed", "assignedToId": "u7", "assignedToName": "Dana"}]}`

	var list TicketListResponse
	require.NoError(t, json.Unmarshal([]byte(wire), &list))

	tickets := list.ToDomain()
	require.Len(t, tickets, 2)
	assert.Equal(t, "t42", tickets[0].ID)
	assert.True(t, tickets[1].Assigned())
	assert.Equal(t, "Dana", tickets[1].AssignedToName)
}

func TestProjectResponseToDomain(t *testing.T) {
	wire := `{
		"id": "web",
		"name": "Web App",
		"status": "active",
		"createdBy": "u1",
		"teamMembers": [{"userId": "u7", "userName": "Dana", "role": "developer"}],
		"startDate": "2024-01-01T00:00:00Z",
		"createdAt": "2024-01-01T00:00:00Z",
		"updatedAt": "2024-02-01T00:00:00Z"
	}`

	var resp ProjectResponse
	require.NoError(t, json.Unmarshal([]byte(wire), &resp))

	project := resp.ToDomain()
	assert.Equal(t, domain.ProjectStatusActive, project.Status)
	require.Len(t, project.TeamMembers, 1)
	assert.Equal(t, domain.RoleDeveloper, project.TeamMembers[0].Role)
	assert.Nil(t, project.EndDate)
}
