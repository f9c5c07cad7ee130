package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/domain"
)

func boardTickets() []domain.Ticket {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Ticket{
		{ID: "t1", Title: "Login bug", AuthorName: "Ann", Labels: []string{"UI"}, Status: domain.TicketStatusPending, ProjectID: "web", CreatedAt: base},
		{ID: "t2", Title: "Export times out", AuthorName: "Bob", Labels: []string{"backend"}, Status: domain.TicketStatusPending, ProjectID: "api", CreatedAt: base.Add(time.Hour)},
		{ID: "t3", Title: "Broken layout", AuthorName: "Cleo", Labels: []string{"UI", "mobile"}, Status: domain.TicketStatusAssigned, ProjectID: "web", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "t4", Title: "Question about SLA", AuthorName: "Ann", Labels: nil, Status: domain.TicketStatusAwaiting, ProjectID: "api", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "t5", Title: "Old incident", AuthorName: "Bob", Labels: []string{"ops"}, Status: domain.TicketStatusClosed, ProjectID: "web", CreatedAt: base.Add(4 * time.Hour)},
	}
}

func TestSearchMatchesTitleAuthorOrLabel(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "t1", Title: "Login bug", AuthorName: "Ann", Labels: []string{"UI"}, Status: domain.TicketStatusPending},
	}

	cases := []struct {
		query string
		want  bool
	}{
		{"ann", true},   // author, case-insensitive
		{"ui", true},    // label
		{"login", true}, // title
		{"zzz", false},
	}
	for _, tc := range cases {
		board := Project(tickets, Filter{Search: tc.query, Role: domain.RoleAdmin})
		col, ok := board.Column(domain.TicketStatusPending)
		require.True(t, ok)
		if tc.want {
			assert.Len(t, col.Tickets, 1, "query %q", tc.query)
		} else {
			assert.Empty(t, col.Tickets, "query %q", tc.query)
		}
	}
}

func TestDeveloperBoardExcludesAwaitingEntirely(t *testing.T) {
	board := Project(boardTickets(), Filter{Role: domain.RoleDeveloper})

	require.Len(t, board.Columns, 3)
	for _, col := range board.Columns {
		assert.NotEqual(t, domain.TicketStatusAwaiting, col.Status)
	}
	_, ok := board.Column(domain.TicketStatusAwaiting)
	assert.False(t, ok)

	// The pending column reads as a pick-up queue for developers.
	col, _ := board.Column(domain.TicketStatusPending)
	assert.Equal(t, "Available Tickets", col.Title)
}

func TestAdminAndQASeeAllFourColumns(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleQA} {
		board := Project(boardTickets(), Filter{Role: role})
		require.Len(t, board.Columns, 4)
		assert.Equal(t, domain.AllTicketStatuses[0], board.Columns[0].Status)
		assert.Equal(t, domain.AllTicketStatuses[3], board.Columns[3].Status)
	}
}

func TestProjectFilter(t *testing.T) {
	board := Project(boardTickets(), Filter{Role: domain.RoleAdmin, ProjectID: "web"})
	col, _ := board.Column(domain.TicketStatusPending)
	require.Len(t, col.Tickets, 1)
	assert.Equal(t, "t1", col.Tickets[0].ID)

	// Sentinel passes everything through.
	board = Project(boardTickets(), Filter{Role: domain.RoleAdmin, ProjectID: domain.ProjectFilterAll})
	col, _ = board.Column(domain.TicketStatusPending)
	assert.Len(t, col.Tickets, 2)
}

func TestProjectionIsDeterministic(t *testing.T) {
	tickets := boardTickets()
	filter := Filter{Role: domain.RoleQA, Search: "b"}

	first := Project(tickets, filter)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Project(tickets, filter))
	}
}

func TestColumnOrderNewestFirst(t *testing.T) {
	board := Project(boardTickets(), Filter{Role: domain.RoleAdmin})
	col, _ := board.Column(domain.TicketStatusPending)
	require.Len(t, col.Tickets, 2)
	assert.Equal(t, "t2", col.Tickets[0].ID)
	assert.Equal(t, "t1", col.Tickets[1].ID)
}

func TestColumnLimitKeepsTotal(t *testing.T) {
	board := Project(boardTickets(), Filter{Role: domain.RoleAdmin, ColumnLimit: 1})
	col, _ := board.Column(domain.TicketStatusPending)
	assert.Len(t, col.Tickets, 1)
	assert.Equal(t, 2, col.Total)
}
