package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/api"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/realtime"
	"github.com/spec-kit/ticket-board/internal/service"
	"github.com/spec-kit/ticket-board/internal/store"
)

type countingBackend struct {
	fetches atomic.Int64
}

func (b *countingBackend) FetchTickets(ctx context.Context, filter api.TicketFilter) ([]domain.Ticket, error) {
	b.fetches.Add(1)
	return []domain.Ticket{{ID: "t1", Status: domain.TicketStatusPending}}, nil
}

func (b *countingBackend) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	return domain.Ticket{}, nil
}

func (b *countingBackend) AssignTicket(ctx context.Context, id, userID, userName string) (domain.Ticket, error) {
	return domain.Ticket{}, nil
}

func (b *countingBackend) FetchProjects(ctx context.Context, filter api.ProjectFilter) ([]domain.Project, error) {
	return nil, nil
}

func TestRefreshWorkerReloadsOnSignal(t *testing.T) {
	backend := &countingBackend{}
	tickets := store.NewTicketStore()
	board := service.NewBoardService(service.BoardDependencies{
		Client:     backend,
		Store:      tickets,
		Dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
		Logger:     zap.NewNop(),
		User:       domain.User{ID: "u1", Role: domain.RoleAdmin},
	})

	listener := realtime.NewChanListener()
	w := NewRefreshWorker(board, listener, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	listener.Notify()

	select {
	case count := <-w.Reloaded():
		assert.Equal(t, 1, count)
	case <-time.After(time.Second):
		t.Fatal("reload did not happen")
	}
	assert.Equal(t, 1, tickets.Len())
	require.GreaterOrEqual(t, backend.fetches.Load(), int64(1))
}

func TestRefreshWorkerDebouncesBursts(t *testing.T) {
	backend := &countingBackend{}
	board := service.NewBoardService(service.BoardDependencies{
		Client:     backend,
		Store:      store.NewTicketStore(),
		Dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
		Logger:     zap.NewNop(),
		User:       domain.User{ID: "u1", Role: domain.RoleAdmin},
	})

	listener := realtime.NewChanListener()
	w := NewRefreshWorker(board, listener, 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	for i := 0; i < 10; i++ {
		listener.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-w.Reloaded():
	case <-time.After(time.Second):
		t.Fatal("reload did not happen")
	}
	// The burst collapsed into far fewer fetches than signals.
	assert.LessOrEqual(t, backend.fetches.Load(), int64(3))
}

func TestRefreshWorkerStopsOnCancel(t *testing.T) {
	backend := &countingBackend{}
	board := service.NewBoardService(service.BoardDependencies{
		Client:     backend,
		Store:      store.NewTicketStore(),
		Dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
		Logger:     zap.NewNop(),
		User:       domain.User{ID: "u1", Role: domain.RoleAdmin},
	})

	listener := realtime.NewChanListener()
	w := NewRefreshWorker(board, listener, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
