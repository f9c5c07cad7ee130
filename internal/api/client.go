// Package api implements the client side of the ticket backend's REST
// contract. The backend itself is an external collaborator; only the
// endpoints the board consumes are covered.
package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/pkg/util"
)

// TicketFilter narrows a ticket listing request.
type TicketFilter struct {
	Status       domain.TicketStatus
	Priority     domain.TicketPriority
	ProjectID    string
	AssignedToID string
	Search       string
	Page         int
	Limit        int
}

// ProjectFilter narrows a project listing request.
type ProjectFilter struct {
	Status domain.ProjectStatus
	Search string
	Page   int
	Limit  int
}

// Client talks to the ticket backend over HTTP with a bearer token.
type Client struct {
	cfg    config.APIConfig
	logger *zap.Logger
}

// NewClient constructs a backend client.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// FetchTickets lists tickets matching the filter.
func (c *Client) FetchTickets(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Priority != "" {
		query.Set("priority", string(filter.Priority))
	}
	if filter.ProjectID != "" && filter.ProjectID != domain.ProjectFilterAll {
		query.Set("projectId", filter.ProjectID)
	}
	if filter.AssignedToID != "" {
		query.Set("assignedToId", filter.AssignedToID)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var list dto.TicketListResponse
	if err := c.do(ctx, fiber.MethodGet, "/api/tickets", query, nil, &list, "tickets"); err != nil {
		return nil, err
	}
	return list.ToDomain(), nil
}

// UpdateTicketStatus asks the backend to move a ticket to status. The
// backend is authoritative: it rejects unknown ids, forbidden roles and
// invalid statuses.
func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	if !status.Valid() {
		return domain.Ticket{}, util.NewValidationError("invalid ticket status", map[string]any{"status": string(status)})
	}
	var resp dto.StatusChangeResponse
	payload := dto.UpdateStatusRequest{Status: string(status)}
	if err := c.do(ctx, fiber.MethodPatch, "/api/tickets/"+id+"/status", nil, payload, &resp, "ticket"); err != nil {
		return domain.Ticket{}, err
	}
	return domain.Ticket{
		ID:     resp.ID,
		Title:  resp.Title,
		Status: domain.TicketStatus(resp.Status),
	}, nil
}

// AssignTicket assigns a ticket to the given user.
func (c *Client) AssignTicket(ctx context.Context, id, userID, userName string) (domain.Ticket, error) {
	var resp dto.AssignResponse
	payload := dto.AssignRequest{AssignedToID: userID, AssignedToName: userName}
	if err := c.do(ctx, fiber.MethodPatch, "/api/tickets/"+id+"/assign", nil, payload, &resp, "ticket"); err != nil {
		return domain.Ticket{}, err
	}
	return domain.Ticket{
		ID:             resp.ID,
		Title:          resp.Title,
		Status:         domain.TicketStatus(resp.Status),
		AssignedToID:   resp.AssignedToID,
		AssignedToName: resp.AssignedToName,
	}, nil
}

// FetchProjects lists projects matching the filter.
func (c *Client) FetchProjects(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var list dto.ProjectListResponse
	if err := c.do(ctx, fiber.MethodGet, "/api/projects", query, nil, &list, "projects"); err != nil {
		return nil, err
	}
	return list.ToDomain(), nil
}

type agentResult struct {
	status int
	body   []byte
	err    error
}

// do issues one request and decodes the JSON response into out. The
// fasthttp agent has no context support, so the call runs in its own
// goroutine and the result is abandoned if ctx ends first.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any, resource string) error {
	if err := ctx.Err(); err != nil {
		return util.NewUnavailable("request cancelled", err)
	}

	uri := c.cfg.BaseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if c.cfg.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.Token)
	}
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if timeout := c.cfg.RequestTimeout(); timeout > 0 {
		agent.Timeout(timeout)
	}
	if payload != nil {
		agent.JSON(payload)
	}
	if err := agent.Parse(); err != nil {
		return util.NewInternalError(err)
	}

	resultCh := make(chan agentResult, 1)
	go func() {
		status, body, errs := agent.Bytes()
		var err error
		if len(errs) > 0 {
			err = errs[0]
		}
		resultCh <- agentResult{status: status, body: body, err: err}
	}()

	var res agentResult
	select {
	case <-ctx.Done():
		return util.NewUnavailable("request cancelled", ctx.Err())
	case res = <-resultCh:
	}

	if res.err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(res.err))
		return util.NewUnavailable("ticket backend unreachable", res.err)
	}
	if err := util.FromStatusCode(res.status, resource); err != nil {
		c.logger.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.status))
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return util.NewInternalError(err)
	}
	return nil
}
