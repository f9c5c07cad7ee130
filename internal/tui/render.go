package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/service"
	"github.com/spec-kit/ticket-board/internal/view"
)

const columnWidth = 34

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(columnWidth)

	columnTitleStyle = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("238"))

	selectedCardStyle = cardStyle.Copy().
				Foreground(lipgloss.Color("229")).
				Bold(true)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	priorityColors = map[domain.TicketPriority]lipgloss.Color{
		domain.TicketPriorityLow:      lipgloss.Color("72"),
		domain.TicketPriorityMedium:   lipgloss.Color("220"),
		domain.TicketPriorityHigh:     lipgloss.Color("208"),
		domain.TicketPriorityCritical: lipgloss.Color("196"),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(mutedStyle.Render("loading tickets..."))
		b.WriteString("\n")
	}

	columns := make([]string, 0, len(m.projection.Columns))
	for i, col := range m.projection.Columns {
		columns = append(columns, m.renderColumn(col, i == m.cursorCol))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	b.WriteString(m.renderToast())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	left := headerStyle.Render("Ticket Board")
	actor := fmt.Sprintf("%s (%s)", m.user.Name, m.user.Role)
	filter := "project: " + m.selectedProjectName()
	if m.searching || m.search.Value() != "" {
		filter += "  " + m.search.View()
	}
	return left + "  " + mutedStyle.Render(actor) + "  " + mutedStyle.Render(filter)
}

func (m Model) renderColumn(col view.Column, active bool) string {
	title := columnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, col.Total))

	rows := []string{title}
	for i, ticket := range col.Tickets {
		style := cardStyle
		if active && i == m.cursorRow {
			style = selectedCardStyle
		}
		rows = append(rows, style.Render(renderCard(ticket)))
	}
	if hidden := col.Total - len(col.Tickets); hidden > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("+%d more", hidden)))
	}

	style := columnStyle
	if active {
		style = style.Copy().BorderForeground(lipgloss.Color("214"))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCard(t domain.Ticket) string {
	title := truncate(t.Title, columnWidth-4)
	priority := lipgloss.NewStyle().
		Foreground(priorityColors[t.Priority]).
		Render(string(t.Priority))
	meta := mutedStyle.Render(t.AuthorName)
	if t.Assigned() {
		meta = mutedStyle.Render("→ " + t.AssignedToName)
	}
	line := priority + " " + meta
	if len(t.Labels) > 0 {
		line += " " + mutedStyle.Render("["+strings.Join(t.Labels, ", ")+"]")
	}
	return title + "\n" + line
}

// truncate shortens s to at most max runes, never splitting a
// multibyte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.Level == service.ToastError {
		return toastErrorStyle.Render("✗ " + m.toast.Message)
	}
	return toastSuccessStyle.Render("✓ " + m.toast.Message)
}

func (m Model) renderFooter() string {
	parts := []string{
		m.keys.Left.Help().Key + "/" + m.keys.Right.Help().Key + " columns",
		m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " tickets",
		m.keys.MoveLeft.Help().Key + m.keys.MoveRight.Help().Key + " move",
	}
	if m.user.Role == domain.RoleDeveloper {
		parts = append(parts, m.keys.SelfAssign.Help().Key+" "+m.keys.SelfAssign.Help().Desc)
	}
	parts = append(parts,
		m.keys.Search.Help().Key+" "+m.keys.Search.Help().Desc,
		m.keys.CycleProject.Help().Key+" "+m.keys.CycleProject.Help().Desc,
		m.keys.Reload.Help().Key+" "+m.keys.Reload.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc,
	)
	return mutedStyle.Render(strings.Join(parts, "  ·  "))
}
