package redistools

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/feedback_board/internal/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewClient builds a client for cfg and waits until redis answers.
func NewClient(ctx context.Context, cfg config.Sessions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := Connect(ctx, rdb); err != nil {
		rdb.Close()

		return nil, fmt.Errorf("connect error: %w", err)
	}

	return rdb, nil
}

const maxPingDelay = time.Second * 10

// Connect pings redis with a growing delay until it answers or ctx is done.
func Connect(ctx context.Context, rdb *redis.Client) error {
	delay := time.Second

	for {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		if delay > maxPingDelay {
			return fmt.Errorf("cannot ping redis db error: %w", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context error: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay += time.Second
	}
}
