// Package worker runs background loops supporting the board.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/realtime"
	"github.com/spec-kit/ticket-board/internal/service"
)

// RefreshWorker reloads the board whenever the realtime channel signals
// a change. Signals within the debounce window collapse into a single
// reload; a failed reload is logged and the loop keeps running, the
// next signal retries naturally.
type RefreshWorker struct {
	board    *service.BoardService
	listener realtime.Listener
	debounce time.Duration
	logger   *zap.Logger

	// Reloaded is signalled after every successful reload so the UI
	// can re-project. Buffered; slow consumers miss coalesced repeats,
	// never the fact that a reload happened.
	reloaded chan int
}

// NewRefreshWorker constructs the worker.
func NewRefreshWorker(board *service.BoardService, listener realtime.Listener, debounce time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		board:    board,
		listener: listener,
		debounce: debounce,
		logger:   logger,
		reloaded: make(chan int, 4),
	}
}

// Reloaded returns the channel carrying ticket counts of completed
// reloads.
func (w *RefreshWorker) Reloaded() <-chan int {
	return w.reloaded
}

// Run blocks until ctx ends, consuming change signals.
func (w *RefreshWorker) Run(ctx context.Context) error {
	signals, err := w.listener.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			w.waitQuiet(ctx, signals)
			count, err := w.board.LoadBoard(ctx)
			if err != nil {
				w.logger.Warn("refresh reload failed", zap.Error(err))
				continue
			}
			w.logger.Debug("board refreshed", zap.Int("tickets", count))
			select {
			case w.reloaded <- count:
			default:
			}
		}
	}
}

// waitQuiet drains further signals until the debounce window passes
// without one.
func (w *RefreshWorker) waitQuiet(ctx context.Context, signals <-chan struct{}) {
	if w.debounce <= 0 {
		return
	}
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
		}
	}
}
