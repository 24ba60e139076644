// Package cache 在未配置 Redis 时提供进程内的令牌存储
package cache

import (
	"context"
	"sync"
	"time"

	"Community_Portal/internal/repository"

	gocache "github.com/patrickmn/go-cache"
)

const (
	sessionPrefix = "session:"
	resetPrefix   = "reset:"
)

// TokenStore 同时实现 SessionStore 与 ResetTokenStore，重启后数据丢失
type TokenStore struct {
	mu    sync.Mutex
	items *gocache.Cache
}

func NewTokenStore() *TokenStore {
	return &TokenStore{items: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (s *TokenStore) AddUserToken(_ context.Context, userID, token string, ttl time.Duration) error {
	s.items.Set(sessionPrefix+userID, token, ttl)
	return nil
}

func (s *TokenStore) GetUserToken(_ context.Context, userID string) (string, error) {
	v, ok := s.items.Get(sessionPrefix + userID)
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	return v.(string), nil
}

func (s *TokenStore) DeleteUserToken(_ context.Context, userID string) error {
	s.items.Delete(sessionPrefix + userID)
	return nil
}

func (s *TokenStore) SaveResetToken(_ context.Context, token, userID string, ttl time.Duration) error {
	s.items.Set(resetPrefix+token, userID, ttl)
	return nil
}

func (s *TokenStore) TakeResetToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.Get(resetPrefix + token)
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	s.items.Delete(resetPrefix + token)
	return v.(string), nil
}
