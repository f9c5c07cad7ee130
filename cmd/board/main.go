package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/api"
	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/identity"
	"github.com/spec-kit/ticket-board/internal/observability"
	"github.com/spec-kit/ticket-board/internal/realtime"
	"github.com/spec-kit/ticket-board/internal/service"
	"github.com/spec-kit/ticket-board/internal/store"
	"github.com/spec-kit/ticket-board/internal/tui"
	"github.com/spec-kit/ticket-board/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.API.Token == "" {
		logger.Fatal("API_TOKEN is required")
	}
	user, err := identity.FromToken(cfg.API.Token)
	if err != nil {
		logger.Fatal("unable to read identity from token", zap.Error(err))
	}
	logger.Info("board starting",
		zap.String("user", user.Name),
		zap.String("role", string(user.Role)),
		zap.String("backend", cfg.API.BaseURL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.NewClient(cfg.API, logger)
	tickets := store.NewTicketStore()
	dispatcher := events.NewInMemoryDispatcher(logger)

	board := service.NewBoardService(service.BoardDependencies{
		Client:     client,
		Store:      tickets,
		Dispatcher: dispatcher,
		Logger:     logger,
		User:       user,
	})
	drag := service.NewDragCoordinator(service.DragDependencies{
		Store:      tickets,
		Client:     client,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	notifier := service.NewNotifier(dispatcher, logger)
	notifier.RegisterHandlers()

	listener := realtime.NewRedisListener(cfg.Realtime, logger)
	defer listener.Close() //nolint:errcheck

	refresh := worker.NewRefreshWorker(board, listener, cfg.Realtime.Debounce(), logger)
	go func() {
		if err := refresh.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("refresh worker stopped", zap.Error(err))
		}
	}()

	model := tui.New(board, drag, notifier, refresh, tickets, cfg.Board.ColumnPageSize)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("board ui failed", zap.Error(err))
		os.Exit(1)
	}
}
