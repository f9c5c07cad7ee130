package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/store"
	apperrors "github.com/spec-kit/ticket-board/pkg/util"
)

func newBoardFixture(t *testing.T, backend *fakeBackend, user domain.User) (*BoardService, *store.TicketStore, *capturedEvents) {
	t.Helper()
	tickets := store.NewTicketStore()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	captured := &capturedEvents{}
	for _, et := range []events.EventType{events.EventBoardReloaded, events.EventTicketAssigned, events.EventTicketAssignFailed} {
		dispatcher.Subscribe(et, captured.record)
	}

	board := NewBoardService(BoardDependencies{
		Client:     backend,
		Store:      tickets,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		User:       user,
	})
	return board, tickets, captured
}

func TestLoadBoardReplacesStore(t *testing.T) {
	backend := &fakeBackend{tickets: []domain.Ticket{
		{ID: "t1", Status: domain.TicketStatusPending},
		{ID: "t2", Status: domain.TicketStatusClosed},
	}}
	board, tickets, captured := newBoardFixture(t, backend, domain.User{ID: "u1", Role: domain.RoleAdmin})

	count, err := board.LoadBoard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, tickets.Len())
	assert.Equal(t, []events.EventType{events.EventBoardReloaded}, captured.types())
}

func TestLoadBoardPropagatesFetchError(t *testing.T) {
	backend := &fakeBackend{fetchErr: apperrors.NewUnavailable("down", nil)}
	board, tickets, captured := newBoardFixture(t, backend, domain.User{ID: "u1", Role: domain.RoleAdmin})

	_, err := board.LoadBoard(context.Background())
	assert.Error(t, err)
	assert.Zero(t, tickets.Len())
	assert.Empty(t, captured.types())
}

func TestSelfAssignHappyPath(t *testing.T) {
	backend := &fakeBackend{}
	dev := domain.User{ID: "u7", Name: "Dana Dev", Role: domain.RoleDeveloper}
	board, tickets, captured := newBoardFixture(t, backend, dev)
	tickets.Load([]domain.Ticket{{ID: "t1", Title: "Login bug", Status: domain.TicketStatusPending}})

	require.NoError(t, board.SelfAssign(context.Background(), "t1"))

	ticket, _ := tickets.Get("t1")
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
	assert.Equal(t, "u7", ticket.AssignedToID)
	assert.Equal(t, "Dana Dev", ticket.AssignedToName)
	assert.Equal(t, []events.EventType{events.EventTicketAssigned}, captured.types())
	assert.Equal(t, []assignCall{{id: "t1", userID: "u7", userName: "Dana Dev"}}, backend.assignCalls)
}

func TestSelfAssignRejectedByPolicy(t *testing.T) {
	backend := &fakeBackend{}
	qa := domain.User{ID: "u2", Role: domain.RoleQA}
	board, tickets, _ := newBoardFixture(t, backend, qa)
	tickets.Load([]domain.Ticket{{ID: "t1", Status: domain.TicketStatusPending}})

	err := board.SelfAssign(context.Background(), "t1")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	assert.Empty(t, backend.assignCalls)
}

func TestSelfAssignBackendFailureLeavesStoreUntouched(t *testing.T) {
	backend := &fakeBackend{assignErr: apperrors.NewForbidden("nope")}
	dev := domain.User{ID: "u7", Name: "Dana Dev", Role: domain.RoleDeveloper}
	board, tickets, captured := newBoardFixture(t, backend, dev)
	tickets.Load([]domain.Ticket{{ID: "t1", Title: "Login bug", Status: domain.TicketStatusPending}})

	err := board.SelfAssign(context.Background(), "t1")
	assert.Error(t, err)

	ticket, _ := tickets.Get("t1")
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Empty(t, ticket.AssignedToID)
	assert.Equal(t, []events.EventType{events.EventTicketAssignFailed}, captured.types())
}

func TestSelfAssignUnknownTicket(t *testing.T) {
	backend := &fakeBackend{}
	dev := domain.User{ID: "u7", Role: domain.RoleDeveloper}
	board, _, _ := newBoardFixture(t, backend, dev)

	err := board.SelfAssign(context.Background(), "ghost")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
