package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore — сессии в Redis с TTL. Истёкший ключ — это и есть
// уборка простаивающих сессий: оператор просто начнёт с главного меню.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("dialog:session:%d", userID)
}

func (r *RedisStore) GetOrCreate(ctx context.Context, userID int64) (*Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return newSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get %d: %w", userID, err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// Битая запись — начинаем диалог заново
		return newSession(userID), nil
	}
	if s.Scratch == nil {
		s.Scratch = map[string]string{}
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session marshal %d: %w", s.UserID, err)
	}
	if err := r.rdb.Set(ctx, sessionKey(s.UserID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("session save %d: %w", s.UserID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := r.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("session delete %d: %w", userID, err)
	}
	return nil
}
