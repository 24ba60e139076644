package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Community_Portal/internal/repository"

	"github.com/redis/go-redis/v9"
)

const ResetTokenPrefix = "password:reset"

// ResetRepository 密码重置令牌，读取即删除
type ResetRepository struct {
	Client *redis.Client
}

func NewResetRepository(client *redis.Client) *ResetRepository {
	return &ResetRepository{Client: client}
}

func resetKey(token string) string {
	return fmt.Sprintf("%s:%s", ResetTokenPrefix, token)
}

func (r *ResetRepository) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, resetKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}

// TakeResetToken 原子地取出并删除，保证令牌只能使用一次
func (r *ResetRepository) TakeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := r.Client.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return userID, nil
}
