package service

import (
	"context"
	"time"

	"Community_Portal/internal/logger"
	"Community_Portal/internal/pkg"

	"github.com/goccy/go-json"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	notifyTimeout = 5 * time.Second
)

type ChangeEvent struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Data     any       `json:"data,omitempty"`
}

// ChangeNotifier 写操作成功后发送变更事件，发送失败只记录日志
type ChangeNotifier struct {
	publisher pkg.Publisher
}

func NewChangeNotifier(publisher pkg.Publisher) *ChangeNotifier {
	return &ChangeNotifier{publisher: publisher}
}

func (n *ChangeNotifier) Notify(ctx context.Context, resource, action, id string, data any) {
	if n == nil || n.publisher == nil {
		return
	}
	payload, err := json.Marshal(ChangeEvent{
		Resource: resource,
		Action:   action,
		ID:       id,
		At:       time.Now().UTC(),
		Data:     data,
	})
	if err != nil {
		logger.Warningf("encode %s %s event: %v", resource, action, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := n.publisher.Send(ctx, id, payload); err != nil {
		logger.Warningf("publish %s %s event for %s: %v", resource, action, id, err)
	}
}
