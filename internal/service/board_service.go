package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/api"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/policy"
	"github.com/spec-kit/ticket-board/internal/store"
	apperrors "github.com/spec-kit/ticket-board/pkg/util"
)

// BackendClient is the slice of the ticket backend contract the board
// consumes.
type BackendClient interface {
	FetchTickets(ctx context.Context, filter api.TicketFilter) ([]domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error)
	AssignTicket(ctx context.Context, id, userID, userName string) (domain.Ticket, error)
	FetchProjects(ctx context.Context, filter api.ProjectFilter) ([]domain.Project, error)
}

// BoardService orchestrates board loading and assignment workflows on
// top of the ticket store.
type BoardService struct {
	client     BackendClient
	store      *store.TicketStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	user       domain.User
}

// BoardDependencies bundles collaborators for the board service.
type BoardDependencies struct {
	Client     BackendClient
	Store      *store.TicketStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	User       domain.User
}

// NewBoardService constructs the service.
func NewBoardService(deps BoardDependencies) *BoardService {
	return &BoardService{
		client:     deps.Client,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		user:       deps.User,
	}
}

// User returns the current actor.
func (s *BoardService) User() domain.User {
	return s.user
}

// LoadBoard fetches the full ticket list and replaces the local
// snapshot with it. Any optimistic local state is discarded in favor of
// the fetched truth. Returns the number of tickets loaded.
func (s *BoardService) LoadBoard(ctx context.Context) (int, error) {
	tickets, err := s.client.FetchTickets(ctx, api.TicketFilter{})
	if err != nil {
		s.logger.Warn("board load failed", zap.Error(err))
		return 0, err
	}
	s.store.Load(tickets)
	s.publish(ctx, events.Event{
		Type:    events.EventBoardReloaded,
		Payload: events.BoardReloadedPayload{TicketCount: len(tickets)},
	})
	return len(tickets), nil
}

// SelfAssign assigns a pending ticket to the current user. The ticket
// moves to the assigned column only once the backend confirms; the
// optimistic path is reserved for drag gestures.
func (s *BoardService) SelfAssign(ctx context.Context, ticketID string) error {
	ticket, ok := s.store.Get(ticketID)
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if !policy.CanSelfAssign(s.user.Role, ticket.Status) {
		return apperrors.NewForbidden("self-assign not permitted for this ticket")
	}

	confirmed, err := s.client.AssignTicket(ctx, ticketID, s.user.ID, s.user.Name)
	if err != nil {
		s.logger.Warn("self-assign failed",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
		s.publish(ctx, events.Event{
			Type:     events.EventTicketAssignFailed,
			TicketID: ticketID,
			Payload: events.TicketAssignFailedPayload{
				Title:  ticket.Title,
				Reason: err.Error(),
			},
		})
		return err
	}

	s.store.Assign(ticketID, confirmed.AssignedToID, confirmed.AssignedToName)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticketID,
		Payload: events.TicketAssignedPayload{
			Title:        ticket.Title,
			AssigneeID:   confirmed.AssignedToID,
			AssigneeName: confirmed.AssignedToName,
		},
	})
	return nil
}

// Projects lists projects for the board's project filter.
func (s *BoardService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.client.FetchProjects(ctx, api.ProjectFilter{})
	if err != nil {
		s.logger.Warn("project load failed", zap.Error(err))
		return nil, err
	}
	return projects, nil
}

func (s *BoardService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
