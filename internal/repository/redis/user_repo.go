package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Community_Portal/internal/repository"

	"github.com/redis/go-redis/v9"
)

const UserTokenPrefix = "login:user:token"

// SessionRepository 每个用户一个登录令牌，新登录覆盖旧令牌
type SessionRepository struct {
	Client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{Client: client}
}

func userTokenKey(userID string) string {
	return fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
}

func (r *SessionRepository) AddUserToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, userTokenKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SessionRepository) GetUserToken(ctx context.Context, userID string) (string, error) {
	token, err := r.Client.Get(ctx, userTokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return token, nil
}

func (r *SessionRepository) DeleteUserToken(ctx context.Context, userID string) error {
	if err := r.Client.Del(ctx, userTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}
