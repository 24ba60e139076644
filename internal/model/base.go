package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base 所有资源共有的标识与时间戳
type Base struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:24"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime:false"`
}

// Document 通用 CRUD 需要的最小接口，由资源指针实现
type Document interface {
	GetID() string
	SetID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	Stamp(now time.Time)
	Normalize()
}

func (b *Base) GetID() string { return b.ID }

func (b *Base) SetID(id string) { b.ID = id }

func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }

func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// Stamp 刷新 updatedAt，首次写入时同时设置 createdAt
func (b *Base) Stamp(now time.Time) {
	now = utc(now)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// NewID 生成 24 位十六进制标识
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func trim(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	// BSON datetime 与 mysql datetime(3) 只保留到毫秒
	return t.UTC().Truncate(time.Millisecond)
}
