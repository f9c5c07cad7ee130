// Package view derives the kanban board from a ticket snapshot. The
// projection is pure: identical inputs always yield identical output,
// so it can be recomputed on every keystroke or filter change.
package view

import (
	"sort"
	"strings"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/policy"
)

// Filter describes the active board filters.
type Filter struct {
	// ProjectID restricts to one project; domain.ProjectFilterAll (or
	// empty) passes every ticket through.
	ProjectID string
	// Search is matched case-insensitively as a substring of the
	// ticket title, author name, or any label.
	Search string
	// Role decides which columns exist at all.
	Role domain.Role
	// ColumnLimit truncates each column to at most this many tickets;
	// 0 shows everything. Column.Total always reports the pre-limit
	// count.
	ColumnLimit int
}

// Column is one status bucket of the board.
type Column struct {
	Status  domain.TicketStatus
	Title   string
	Total   int
	Tickets []domain.Ticket
}

// Board is the fully derived, role-adjusted view.
type Board struct {
	Columns []Column
}

// Column returns the column for status, if the board has it.
func (b Board) Column(status domain.TicketStatus) (Column, bool) {
	for _, c := range b.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return Column{}, false
}

// Project groups, filters, and orders tickets into the board for the
// given filter.
func Project(tickets []domain.Ticket, f Filter) Board {
	statuses := policy.VisibleColumns(f.Role)
	buckets := make(map[domain.TicketStatus][]domain.Ticket, len(statuses))

	for _, t := range tickets {
		if !matchesProject(t, f.ProjectID) || !matchesSearch(t, f.Search) {
			continue
		}
		buckets[t.Status] = append(buckets[t.Status], t)
	}

	board := Board{Columns: make([]Column, 0, len(statuses))}
	for _, status := range statuses {
		col := buckets[status]
		sort.Slice(col, func(i, j int) bool {
			if !col[i].CreatedAt.Equal(col[j].CreatedAt) {
				return col[i].CreatedAt.After(col[j].CreatedAt)
			}
			return col[i].ID < col[j].ID
		})
		total := len(col)
		if f.ColumnLimit > 0 && total > f.ColumnLimit {
			col = col[:f.ColumnLimit]
		}
		board.Columns = append(board.Columns, Column{
			Status:  status,
			Title:   policy.ColumnTitle(f.Role, status),
			Total:   total,
			Tickets: col,
		})
	}
	return board
}

func matchesProject(t domain.Ticket, projectID string) bool {
	if projectID == "" || projectID == domain.ProjectFilterAll {
		return true
	}
	return t.ProjectID == projectID
}

func matchesSearch(t domain.Ticket, search string) bool {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.AuthorName), query) {
		return true
	}
	for _, label := range t.Labels {
		if strings.Contains(strings.ToLower(label), query) {
			return true
		}
	}
	return false
}
