package realtime

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/config"
)

// Backoff parameters for re-subscribing after a dropped connection.
const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// RedisListener subscribes to a redis pub/sub channel carrying ticket
// change signals. Message payloads are discarded.
type RedisListener struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisListener connects to redis using the provided configuration.
func NewRedisListener(cfg config.RealtimeConfig, logger *zap.Logger) *RedisListener {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("channel", cfg.Channel))
	}

	return &RedisListener{client: client, channel: cfg.Channel, logger: logger}
}

// Subscribe implements Listener. The subscription loop reconnects with
// exponential backoff until ctx ends.
func (l *RedisListener) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 8)
	go l.subscribeLoop(ctx, out)
	return out, nil
}

func (l *RedisListener) subscribeLoop(ctx context.Context, out chan<- struct{}) {
	defer close(out)
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		sub := l.client.Subscribe(ctx, l.channel)
		msgs := sub.Channel()

	receive:
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-msgs:
				if !ok {
					break receive
				}
				backoff = initialBackoff
				l.logger.Debug("ticket change signal", zap.String("channel", msg.Channel))
				// Coalesce: one pending signal is enough, the
				// reload fetches full truth regardless.
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}

		_ = sub.Close()
		l.logger.Warn("realtime subscription dropped, reconnecting",
			zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// Close implements Listener.
func (l *RedisListener) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}
