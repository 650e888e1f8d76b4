package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("会话不存在或已过期")

// SessionStore 服务端会话存储：token -> username
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "kb:session:" + token
}

func (s *redisSessionStore) Create(ctx context.Context, username string) (string, error) {
	token := uuid.New().String()
	if err := s.rdb.Set(ctx, sessionKey(token), username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	// 命中即续期，和浏览器端的活跃会话保持一致
	s.rdb.Expire(ctx, sessionKey(token), s.ttl)
	return username, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
