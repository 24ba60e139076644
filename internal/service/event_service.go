package service

import (
	"context"
	"time"

	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
	DateLayout          = "2006-01-02"
)

type EventFilter struct {
	Type     string
	Upcoming bool
}

type EventService struct {
	*ResourceService[model.Event, *model.Event]
}

func NewEventService(store repository.Store[model.Event], notifier *ChangeNotifier) *EventService {
	return &EventService{
		ResourceService: NewResourceService[model.Event, *model.Event](store, notifier,
			"events", "Event", "Event name already exists"),
	}
}

// List 最近的活动在前
func (s *EventService) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	q := repository.Query{Equals: map[string]any{}, Sort: repository.Sort("date", "startTime")}
	if f.Type != "" {
		q.Equals["type"] = f.Type
	}
	if f.Upcoming {
		now := s.now().UTC()
		q.Ranges = []repository.Range{{Field: "date", From: &now}}
	}
	return s.Find(ctx, q)
}

// History 已经过去的活动，最近的在前
func (s *EventService) History(ctx context.Context, limit int) ([]model.Event, error) {
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, pkg.BadRequest("Limit must be between 1 and 100")
	}
	now := s.now().UTC()
	return s.Find(ctx, repository.Query{
		Ranges: []repository.Range{{Field: "date", Before: &now}},
		Sort:   repository.Sort("-date"),
		Limit:  limit,
	})
}

// ByDate 某一天（UTC）内的活动，按开始时间排序
func (s *EventService) ByDate(ctx context.Context, day string) ([]model.Event, error) {
	start, err := time.Parse(DateLayout, day)
	if err != nil {
		return nil, pkg.BadRequest("Invalid date format. Use YYYY-MM-DD")
	}
	end := start.AddDate(0, 0, 1)
	return s.Find(ctx, repository.Query{
		Ranges: []repository.Range{{Field: "date", From: &start, Before: &end}},
		Sort:   repository.Sort("startTime"),
	})
}
