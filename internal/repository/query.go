// Package repository 定义存储层的通用查询描述与接口，具体实现见 mongo 与 mysql 子包
package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Range 半开区间 [From, Before)，任一端为空表示不限
type Range struct {
	Field  string
	From   *time.Time
	Before *time.Time
}

type SortField struct {
	Field string
	Desc  bool
}

// Query 字段名统一使用 JSON 名（如 startTime），由实现自行映射
type Query struct {
	Equals       map[string]any
	Ranges       []Range
	Search       string
	SearchFields []string
	Sort         []SortField
	Skip         int
	Limit        int
}

// Store 单个资源集合的持久化操作
type Store[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, equals map[string]any) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
	Replace(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

// SessionStore 每个用户仅保留一个有效令牌
type SessionStore interface {
	AddUserToken(ctx context.Context, userID, token string, ttl time.Duration) error
	GetUserToken(ctx context.Context, userID string) (string, error)
	DeleteUserToken(ctx context.Context, userID string) error
}

// ResetTokenStore 一次性的密码重置令牌
type ResetTokenStore interface {
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	TakeResetToken(ctx context.Context, token string) (string, error)
}

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrStoreUnavailable = errors.New("token store unavailable")
)

// Sort 便捷构造排序
func Sort(fields ...string) []SortField {
	out := make([]SortField, 0, len(fields))
	for _, f := range fields {
		if len(f) > 0 && f[0] == '-' {
			out = append(out, SortField{Field: f[1:], Desc: true})
			continue
		}
		out = append(out, SortField{Field: f})
	}
	return out
}
