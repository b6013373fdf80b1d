package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/sessionstore"
	"github.com/redis/go-redis/v9"
)

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) SessionStore {
	return SessionStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func key(id string) string {
	return "session:" + id
}

// userKey holds the ids of every session saved for username.
func userKey(username string) string {
	return "user_sessions:" + username
}

func (ss SessionStore) Get(ctx context.Context, id string) (models.Session, error) {
	sessionJSON, err := ss.rdb.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, sessionstore.ErrNotFound
	} else if err != nil {
		return models.Session{}, fmt.Errorf("get error: %w", err)
	}

	var s models.Session

	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return models.Session{}, fmt.Errorf("unmarshal error: %w", err)
	}

	return s, nil
}

// Save stores s under id and restarts its expiry. Sessions of a logged in
// user are also indexed by username.
func (ss SessionStore) Save(ctx context.Context, id string, s models.Session) error {
	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = ss.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(id), sessionJSON, ss.ttl)

		if s.Username != "" {
			pipe.SAdd(ctx, userKey(s.Username), id)
			pipe.Expire(ctx, userKey(s.Username), ss.ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

// Delete is a no-op for unknown ids.
func (ss SessionStore) Delete(ctx context.Context, id string) error {
	if err := ss.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	return nil
}

// DeleteUserSessions ends every session saved for username.
func (ss SessionStore) DeleteUserSessions(ctx context.Context, username string) error {
	ids, err := ss.rdb.SMembers(ctx, userKey(username)).Result()
	if err != nil {
		return fmt.Errorf("smembers error: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, key(id))
	}

	keys = append(keys, userKey(username))

	if err := ss.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	return nil
}
