// Package tui renders the kanban board in the terminal and drives the
// board core from keyboard input.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/policy"
	"github.com/spec-kit/ticket-board/internal/service"
	"github.com/spec-kit/ticket-board/internal/store"
	"github.com/spec-kit/ticket-board/internal/view"
	"github.com/spec-kit/ticket-board/internal/worker"
)

const toastLifetime = 4 * time.Second

// toastMsg wraps a Notifier toast for delivery through the bubbletea
// message loop.
type toastMsg service.Toast

// reloadedMsg signals that the refresh worker replaced the snapshot.
type reloadedMsg int

// boardLoadedMsg reports the initial or manual load result.
type boardLoadedMsg struct {
	count int
	err   error
}

// projectsMsg carries the project filter options.
type projectsMsg struct {
	projects []domain.Project
	err      error
}

// moveSettledMsg reports how a drag transaction settled.
type moveSettledMsg service.MoveResult

// assignSettledMsg reports a finished self-assign call.
type assignSettledMsg struct{ err error }

// toastExpiredMsg clears the toast line.
type toastExpiredMsg struct{}

// Model is the bubbletea model for the board.
type Model struct {
	board    *service.BoardService
	drag     *service.DragCoordinator
	notifier *service.Notifier
	refresh  *worker.RefreshWorker
	tickets  *store.TicketStore

	user       domain.User
	keys       KeyMap
	columnSize int

	projects   []domain.Project
	projectIdx int // index into projectOptions; 0 is "all"

	search    textinput.Model
	searching bool

	projection view.Board
	cursorCol  int
	cursorRow  int

	toast    *service.Toast
	loading  bool
	width    int
	height   int
	quitting bool
}

// New creates the board model.
func New(board *service.BoardService, drag *service.DragCoordinator, notifier *service.Notifier, refresh *worker.RefreshWorker, tickets *store.TicketStore, columnSize int) Model {
	search := textinput.New()
	search.Placeholder = "search tickets"
	search.Prompt = "/ "
	search.CharLimit = 80

	m := Model{
		board:      board,
		drag:       drag,
		notifier:   notifier,
		refresh:    refresh,
		tickets:    tickets,
		user:       board.User(),
		keys:       DefaultKeyMap,
		columnSize: columnSize,
		search:     search,
		loading:    true,
	}
	m.reproject()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadBoardCmd(),
		m.loadProjectsCmd(),
		m.waitToastCmd(),
		m.waitReloadCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err == nil {
			m.reproject()
		}
		return m, nil

	case reloadedMsg:
		m.reproject()
		return m, m.waitReloadCmd()

	case projectsMsg:
		if msg.err == nil {
			m.projects = msg.projects
		}
		return m, nil

	case moveSettledMsg:
		m.reproject()
		return m, nil

	case assignSettledMsg:
		// Toast feedback arrives separately via the notifier.
		m.reproject()
		return m, nil

	case toastMsg:
		toast := service.Toast(msg)
		m.toast = &toast
		return m, tea.Batch(m.waitToastCmd(), expireToastCmd())

	case toastExpiredMsg:
		m.toast = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.reproject()
			return m, cmd
		}
		m.reproject()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.CycleProject):
		m.projectIdx = (m.projectIdx + 1) % (len(m.projects) + 1)
		m.cursorCol, m.cursorRow = 0, 0
		m.reproject()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadBoardCmd()

	case key.Matches(msg, m.keys.MoveLeft):
		return m.startMove(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m.startMove(1)

	case key.Matches(msg, m.keys.SelfAssign):
		ticket, ok := m.selectedTicket()
		if ok && policy.CanSelfAssign(m.user.Role, ticket.Status) {
			return m, m.selfAssignCmd(ticket.ID)
		}
	}
	return m, nil
}

// startMove runs the drag transaction moving the selected ticket one
// visible column in the given direction. The optimistic store write
// happens inside Drop; the settled message triggers re-projection.
func (m Model) startMove(direction int) (tea.Model, tea.Cmd) {
	ticket, ok := m.selectedTicket()
	if !ok {
		return m, nil
	}
	targetCol := m.cursorCol + direction
	if targetCol < 0 || targetCol >= len(m.projection.Columns) {
		// Dropped outside any valid target: drag ends, no transaction.
		return m, nil
	}
	target := m.projection.Columns[targetCol].Status
	if err := m.drag.Begin(ticket.ID); err != nil {
		return m, nil
	}
	drag := m.drag
	id := ticket.ID
	return m, func() tea.Msg {
		return moveSettledMsg(drag.Drop(context.Background(), id, string(target)))
	}
}

func (m *Model) moveCursor(dCol, dRow int) {
	cols := len(m.projection.Columns)
	if cols == 0 {
		return
	}
	m.cursorCol += dCol
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= cols {
		m.cursorCol = cols - 1
	}
	rows := len(m.projection.Columns[m.cursorCol].Tickets)
	m.cursorRow += dRow
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorRow >= rows {
		m.cursorRow = rows - 1
	}
	if rows == 0 {
		m.cursorRow = 0
	}
}

func (m Model) selectedTicket() (domain.Ticket, bool) {
	if m.cursorCol >= len(m.projection.Columns) {
		return domain.Ticket{}, false
	}
	col := m.projection.Columns[m.cursorCol]
	if m.cursorRow >= len(col.Tickets) {
		return domain.Ticket{}, false
	}
	return col.Tickets[m.cursorRow], true
}

// selectedProjectID returns the active project filter.
func (m Model) selectedProjectID() string {
	if m.projectIdx == 0 || m.projectIdx > len(m.projects) {
		return domain.ProjectFilterAll
	}
	return m.projects[m.projectIdx-1].ID
}

func (m Model) selectedProjectName() string {
	if m.projectIdx == 0 || m.projectIdx > len(m.projects) {
		return "All Projects"
	}
	return m.projects[m.projectIdx-1].Name
}

// reproject recomputes the board view from the current snapshot and
// filters, clamping the cursor to the new shape.
func (m *Model) reproject() {
	m.projection = view.Project(m.tickets.Snapshot(), view.Filter{
		ProjectID:   m.selectedProjectID(),
		Search:      m.search.Value(),
		Role:        m.user.Role,
		ColumnLimit: m.columnSize,
	})
	m.moveCursor(0, 0)
}

func (m Model) loadBoardCmd() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		count, err := board.LoadBoard(context.Background())
		return boardLoadedMsg{count: count, err: err}
	}
}

func (m Model) loadProjectsCmd() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		projects, err := board.Projects(context.Background())
		return projectsMsg{projects: projects, err: err}
	}
}

func (m Model) selfAssignCmd(ticketID string) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		return assignSettledMsg{err: board.SelfAssign(context.Background(), ticketID)}
	}
}

func (m Model) waitToastCmd() tea.Cmd {
	toasts := m.notifier.Toasts()
	return func() tea.Msg {
		toast, ok := <-toasts
		if !ok {
			return nil
		}
		return toastMsg(toast)
	}
}

func (m Model) waitReloadCmd() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	reloads := m.refresh.Reloaded()
	return func() tea.Msg {
		count, ok := <-reloads
		if !ok {
			return nil
		}
		return reloadedMsg(count)
	}
}

func expireToastCmd() tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}
